package escrow

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// TransferNftMsg asks an asset collection to transfer a token to a
// recipient. Escrow handlers return it, they never execute it.
type TransferNftMsg struct {
	Metadata   *nftescrow.Metadata `json:"metadata"`
	Collection nftescrow.Address   `json:"collection"`
	TokenID    string              `json:"token_id"`
	Recipient  nftescrow.Address   `json:"recipient"`
}

var _ nftescrow.Msg = (*TransferNftMsg)(nil)

// Path returns the route of the asset transfer message.
func (TransferNftMsg) Path() string {
	return "nft/transfer"
}

func (m *TransferNftMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Collection", m.Collection.Validate())
	errs = errors.AppendField(errs, "TokenID", validateTokenID(m.TokenID))
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	return errs
}

func (m *TransferNftMsg) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(m)
}

func (m *TransferNftMsg) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, m)
}

// AssetTransferer builds the instruction releasing an asset held by the
// escrow.
type AssetTransferer interface {
	Transfer(collection nftescrow.Address, tokenID string, recipient nftescrow.Address) (*TransferNftMsg, error)
}

// NftTransferer is the default AssetTransferer.
type NftTransferer struct{}

var _ AssetTransferer = NftTransferer{}

func (NftTransferer) Transfer(collection nftescrow.Address, tokenID string, recipient nftescrow.Address) (*TransferNftMsg, error) {
	msg := &TransferNftMsg{
		Metadata:   &nftescrow.Metadata{Schema: 1},
		Collection: collection,
		TokenID:    tokenID,
		Recipient:  recipient,
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "transfer")
	}
	return msg, nil
}

// ParseTransfer decodes the transfer instruction returned in the result
// data of cancellation and settlement.
func ParseTransfer(data []byte) (*TransferNftMsg, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "transfer")
	}
	var msg TransferNftMsg
	if err := msg.Unmarshal(data); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "transfer")
	}
	return &msg, nil
}

// transferTags returns tags describing a transfer instruction so that an
// executor can subscribe to them.
func transferTags(msg *TransferNftMsg) []common.KVPair {
	return []common.KVPair{
		nftescrow.Tag("transfer.collection", msg.Collection.String()),
		nftescrow.Tag("transfer.recipient", msg.Recipient.String()),
	}
}
