package escrowd

import (
	"testing"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/crypto"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/weavetest"
	"github.com/iov-one/nftescrow/x/escrow"
	"github.com/iov-one/nftescrow/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxGetMsg(t *testing.T) {
	cancel := &escrow.CancelEscrowMsg{Metadata: &nftescrow.Metadata{Schema: 1}, EscrowID: 3}
	enable := &escrow.SetEnabledMsg{Metadata: &nftescrow.Metadata{Schema: 1}, Enabled: true}

	cases := map[string]struct {
		Tx      Tx
		WantMsg nftescrow.Msg
		WantErr *errors.Error
	}{
		"single message": {
			Tx:      Tx{CancelEscrowMsg: cancel},
			WantMsg: cancel,
		},
		"no message": {
			Tx:      Tx{},
			WantErr: errors.ErrInvalidMsg,
		},
		"two messages": {
			Tx:      Tx{CancelEscrowMsg: cancel, SetEnabledMsg: enable},
			WantErr: errors.ErrInvalidMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg, err := tc.Tx.GetMsg()
			if tc.WantErr != nil {
				assert.True(t, tc.WantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.WantMsg, msg)
		})
	}
}

func TestNewTx(t *testing.T) {
	msgs := []nftescrow.Msg{
		&escrow.ReceiveNftMsg{},
		&escrow.CancelEscrowMsg{},
		&escrow.SendFundsMsg{},
		&escrow.UpdateOwnerMsg{},
		&escrow.SetEnabledMsg{},
	}
	for _, msg := range msgs {
		tx, err := NewTx(msg)
		require.NoError(t, err)
		got, err := tx.GetMsg()
		require.NoError(t, err)
		assert.Equal(t, msg.Path(), got.Path())
	}

	_, err := NewTx(&weavetest.Msg{RoutePath: "test/unknown"})
	assert.True(t, errors.ErrInvalidMsg.Is(err))
}

func TestTxEncoding(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	tx, err := NewTx(&escrow.CancelEscrowMsg{Metadata: &nftescrow.Metadata{Schema: 1}, EscrowID: 7})
	require.NoError(t, err)

	unsigned, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig, err := sigs.SignTx(key, tx, "escrow-test-chain", 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	// signatures never contribute to the signed bytes
	signed, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signed)
	assert.Len(t, tx.Signatures, 1)

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(raw)
	require.NoError(t, err)
	msg, err := decoded.GetMsg()
	require.NoError(t, err)
	cancel, ok := msg.(*escrow.CancelEscrowMsg)
	require.True(t, ok)
	assert.Equal(t, uint64(7), cancel.EscrowID)
	assert.Len(t, decoded.(*Tx).GetSignatures(), 1)
}
