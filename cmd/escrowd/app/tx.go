package escrowd

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/migration"
	"github.com/iov-one/nftescrow/x/escrow"
	"github.com/iov-one/nftescrow/x/sigs"
)

// Tx is the transaction accepted by the escrow chain. Exactly one of the
// message fields must be set.
type Tx struct {
	Signatures []*sigs.StdSignature `json:"signatures"`

	ReceiveNftMsg   *escrow.ReceiveNftMsg   `json:"receive_nft_msg,omitempty"`
	CancelEscrowMsg *escrow.CancelEscrowMsg `json:"cancel_escrow_msg,omitempty"`
	SendFundsMsg    *escrow.SendFundsMsg    `json:"send_funds_msg,omitempty"`
	UpdateOwnerMsg  *escrow.UpdateOwnerMsg  `json:"update_owner_msg,omitempty"`
	SetEnabledMsg   *escrow.SetEnabledMsg   `json:"set_enabled_msg,omitempty"`

	UpgradeSchemaMsg *migration.UpgradeSchemaMsg `json:"upgrade_schema_msg,omitempty"`
}

// make sure tx fulfills all interfaces
var _ nftescrow.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (nftescrow.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// NewTx returns a transaction carrying given message.
func NewTx(msg nftescrow.Msg) (*Tx, error) {
	var tx Tx
	switch m := msg.(type) {
	case *escrow.ReceiveNftMsg:
		tx.ReceiveNftMsg = m
	case *escrow.CancelEscrowMsg:
		tx.CancelEscrowMsg = m
	case *escrow.SendFundsMsg:
		tx.SendFundsMsg = m
	case *escrow.UpdateOwnerMsg:
		tx.UpdateOwnerMsg = m
	case *escrow.SetEnabledMsg:
		tx.SetEnabledMsg = m
	case *migration.UpgradeSchemaMsg:
		tx.UpgradeSchemaMsg = m
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "unsupported message %T", msg)
	}
	return &tx, nil
}

// GetMsg returns the single message carried by this transaction.
func (tx *Tx) GetMsg() (nftescrow.Msg, error) {
	var msgs []nftescrow.Msg
	if tx.ReceiveNftMsg != nil {
		msgs = append(msgs, tx.ReceiveNftMsg)
	}
	if tx.CancelEscrowMsg != nil {
		msgs = append(msgs, tx.CancelEscrowMsg)
	}
	if tx.SendFundsMsg != nil {
		msgs = append(msgs, tx.SendFundsMsg)
	}
	if tx.UpdateOwnerMsg != nil {
		msgs = append(msgs, tx.UpdateOwnerMsg)
	}
	if tx.SetEnabledMsg != nil {
		msgs = append(msgs, tx.SetEnabledMsg)
	}
	if tx.UpgradeSchemaMsg != nil {
		msgs = append(msgs, tx.UpgradeSchemaMsg)
	}
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "%d messages", len(msgs))
	}
}

// GetSignatures returns the signatures of the transaction signers.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// AddSignature appends a signature to the transaction.
func (tx *Tx) AddSignature(sig *sigs.StdSignature) {
	tx.Signatures = append(tx.Signatures, sig)
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

func (tx *Tx) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, tx)
}
