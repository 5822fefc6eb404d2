package escrow

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/coin"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/migration"
)

func init() {
	migration.MustRegister(1, &ReceiveNftMsg{}, migration.NoModification)
	migration.MustRegister(1, &CancelEscrowMsg{}, migration.NoModification)
	migration.MustRegister(1, &SendFundsMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateOwnerMsg{}, migration.NoModification)
	migration.MustRegister(1, &SetEnabledMsg{}, migration.NoModification)
}

const (
	pathReceiveNftMsg    = "escrow/receive_nft"
	pathCancelEscrowMsg  = "escrow/cancel"
	pathSendFundsMsg     = "escrow/send_funds"
	pathUpdateOwnerMsg   = "escrow/update_owner"
	pathSetEnabledMsg    = "escrow/set_enabled"
	maxTokenIDLength     = 256
	maxDirectiveByteSize = 4096
)

// ReceiveNftMsg is the notification sent by an asset collection after it
// transferred a token to this module. The notification must be signed by
// the collection.
type ReceiveNftMsg struct {
	Metadata *nftescrow.Metadata `json:"metadata"`
	// Sender is the previous owner of the token, the seller.
	Sender  nftescrow.Address `json:"sender"`
	TokenID string            `json:"token_id"`
	// Payload is a JSON encoded Directive.
	Payload []byte `json:"payload"`
}

var _ nftescrow.Msg = (*ReceiveNftMsg)(nil)

func (m *ReceiveNftMsg) GetMetadata() *nftescrow.Metadata {
	return m.Metadata
}

func (ReceiveNftMsg) Path() string {
	return pathReceiveNftMsg
}

func (m *ReceiveNftMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Sender", m.Sender.Validate())
	errs = errors.AppendField(errs, "TokenID", validateTokenID(m.TokenID))
	switch n := len(m.Payload); {
	case n == 0:
		errs = errors.AppendField(errs, "Payload", errors.ErrEmpty)
	case n > maxDirectiveByteSize:
		errs = errors.AppendField(errs, "Payload", errors.Wrapf(errors.ErrInvalidInput, "longer than %d bytes", maxDirectiveByteSize))
	}
	return errs
}

func (m *ReceiveNftMsg) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(m)
}

func (m *ReceiveNftMsg) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, m)
}

// CancelEscrowMsg is sent by the seller to take back the asset of an
// escrow that was not paid for.
type CancelEscrowMsg struct {
	Metadata *nftescrow.Metadata `json:"metadata"`
	EscrowID uint64              `json:"escrow_id"`
}

var _ nftescrow.Msg = (*CancelEscrowMsg)(nil)

func (m *CancelEscrowMsg) GetMetadata() *nftescrow.Metadata {
	return m.Metadata
}

func (CancelEscrowMsg) Path() string {
	return pathCancelEscrowMsg
}

func (m *CancelEscrowMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

func (m *CancelEscrowMsg) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(m)
}

func (m *CancelEscrowMsg) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, m)
}

// SendFundsMsg is sent by the buyer to pay for the escrowed asset. Only the
// configured denomination counts towards the price.
type SendFundsMsg struct {
	Metadata *nftescrow.Metadata `json:"metadata"`
	EscrowID uint64              `json:"escrow_id"`
	Funds    coin.Coins          `json:"funds"`
}

var _ nftescrow.Msg = (*SendFundsMsg)(nil)

func (m *SendFundsMsg) GetMetadata() *nftescrow.Metadata {
	return m.Metadata
}

func (SendFundsMsg) Path() string {
	return pathSendFundsMsg
}

func (m *SendFundsMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Funds", m.Funds.Validate())
	if !m.Funds.IsNonNegative() {
		errs = errors.AppendField(errs, "Funds", errors.Wrap(errors.ErrInvalidAmount, "negative funds"))
	}
	return errs
}

func (m *SendFundsMsg) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(m)
}

func (m *SendFundsMsg) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, m)
}

// UpdateOwnerMsg replaces the configuration owner. It must be signed by the
// current owner.
type UpdateOwnerMsg struct {
	Metadata *nftescrow.Metadata `json:"metadata"`
	Owner    nftescrow.Address   `json:"owner"`
}

var _ nftescrow.Msg = (*UpdateOwnerMsg)(nil)

func (m *UpdateOwnerMsg) GetMetadata() *nftescrow.Metadata {
	return m.Metadata
}

func (UpdateOwnerMsg) Path() string {
	return pathUpdateOwnerMsg
}

func (m *UpdateOwnerMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

func (m *UpdateOwnerMsg) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(m)
}

func (m *UpdateOwnerMsg) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, m)
}

// SetEnabledMsg switches the module on or off. It must be signed by the
// configuration owner.
type SetEnabledMsg struct {
	Metadata *nftescrow.Metadata `json:"metadata"`
	Enabled  bool                `json:"enabled"`
}

var _ nftescrow.Msg = (*SetEnabledMsg)(nil)

func (m *SetEnabledMsg) GetMetadata() *nftescrow.Metadata {
	return m.Metadata
}

func (SetEnabledMsg) Path() string {
	return pathSetEnabledMsg
}

func (m *SetEnabledMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

func (m *SetEnabledMsg) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(m)
}

func (m *SetEnabledMsg) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, m)
}

func validateTokenID(id string) error {
	switch n := len(id); {
	case n == 0:
		return errors.ErrEmpty
	case n > maxTokenIDLength:
		return errors.Wrapf(errors.ErrInvalidInput, "longer than %d characters", maxTokenIDLength)
	}
	return nil
}
