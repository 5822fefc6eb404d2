package nftescrow

import (
	"fmt"
	"testing"

	"github.com/iov-one/nftescrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func TestDeliverOrError(t *testing.T) {
	res := &DeliverResult{
		Data: []byte{1, 2},
		Log:  "created",
		Tags: []common.KVPair{Tag("action", "create")},
	}
	got := DeliverOrError(res, nil, false)
	assert.Equal(t, uint32(0), got.Code)
	assert.Equal(t, []byte{1, 2}, got.Data)
	assert.Equal(t, "created", got.Log)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, []byte("action"), got.Tags[0].Key)

	got = DeliverOrError(nil, errors.Wrap(errors.ErrNotFound, "escrow"), false)
	assert.Equal(t, errors.ErrNotFound.ABCICode(), got.Code)
	assert.Equal(t, "cannot deliver tx: escrow: not found", got.Log)

	// internal errors are redacted outside of debug mode
	got = DeliverOrError(nil, fmt.Errorf("disk on fire"), false)
	assert.Equal(t, uint32(1), got.Code)
	assert.Equal(t, "cannot deliver tx: internal error", got.Log)
}

func TestCheckOrError(t *testing.T) {
	got := CheckOrError(&CheckResult{GasAllocated: 42}, nil, false)
	assert.Equal(t, uint32(0), got.Code)
	assert.Equal(t, int64(42), got.GasWanted)

	got = CheckOrError(nil, errors.ErrUnauthorized, false)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), got.Code)
}

func TestParseDeliverOrError(t *testing.T) {
	res, err := ParseDeliverOrError(DeliverOrError(&DeliverResult{Data: []byte("x")}, nil, false))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), res.Data)

	_, err = ParseDeliverOrError(DeliverTxError(errors.ErrInsufficientAmount, false))
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
}
