package weavetest

import (
	"encoding/binary"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/crypto"
)

// NewKey returns a freshly generated ed25519 signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a random key.
func NewCondition() nftescrow.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns the 8 byte big endian encoding of n, as used by
// sequence generated keys.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
