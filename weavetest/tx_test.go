package weavetest

import (
	"bytes"
	"testing"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/weavetest/assert"
)

func TestSequenceID(t *testing.T) {
	numToEnc := map[uint64][]byte{
		0:      {0, 0, 0, 0, 0, 0, 0, 0},
		1:      {0, 0, 0, 0, 0, 0, 0, 1},
		123:    {0, 0, 0, 0, 0, 0, 0, 123},
		123123: {0, 0, 0, 0, 0, 1, 224, 243},
	}
	for id, want := range numToEnc {
		got := SequenceID(id)
		if !bytes.Equal(want, got) {
			t.Fatalf("id=%d, want %d got %d", id, want, got)
		}
	}
}

func TestLoadMsgThroughTx(t *testing.T) {
	msg := &Msg{RoutePath: "test/msg", Serialized: []byte("x")}
	tx := &Tx{Msg: msg}

	assert.Equal(t, "test/msg", nftescrow.GetPath(tx))

	var got Msg
	assert.Nil(t, nftescrow.LoadMsg(tx, &got))
	assert.Equal(t, *msg, got)

	msg.ValidErr = errors.ErrInvalidMsg
	assert.IsErr(t, errors.ErrInvalidMsg, nftescrow.LoadMsg(tx, &got))

	tx.Err = errors.ErrInvalidInput
	assert.IsErr(t, errors.ErrInvalidInput, nftescrow.LoadMsg(tx, &got))
	assert.Equal(t, "(missing)", nftescrow.GetPath(tx))
}
