package sigs

import (
	"github.com/iov-one/nftescrow/weavetest"
)

// StdTx is a signed transaction carrying opaque bytes as its message.
type StdTx struct {
	weavetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

// NewStdTx creates a Tx with the given payload
func NewStdTx(payload []byte) *StdTx {
	return &StdTx{
		Tx: weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/sigs", Serialized: payload}},
	}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
