package nftescrow

import (
	"github.com/iov-one/nftescrow/errors"
	amino "github.com/tendermint/go-amino"
)

// cdc serializes models and messages that carry no interface fields.
// Types containing interfaces must use a codec with their concrete types
// registered.
var cdc = amino.NewCodec()

// MarshalBinary returns the amino binary representation of given object.
func MarshalBinary(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return bz, nil
}

// UnmarshalBinary decodes the amino binary representation into given
// destination, which must be a pointer.
func UnmarshalBinary(bz []byte, dest interface{}) error {
	if err := cdc.UnmarshalBinaryBare(bz, dest); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}
