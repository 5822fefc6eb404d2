package orm

import (
	"encoding/binary"

	"github.com/iov-one/nftescrow/errors"
)

// EncodeSequence returns the 8 byte big endian representation of given
// value. Encoded values sort the same way the numbers do.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}

// DecodeSequence is the inverse of EncodeSequence.
func DecodeSequence(bz []byte) (uint64, error) {
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "sequence must be 8 bytes, got %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}
