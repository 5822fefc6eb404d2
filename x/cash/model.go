package cash

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/coin"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the content of a single wallet.
type Set struct {
	Metadata *nftescrow.Metadata `json:"metadata"`
	Coins    coin.Coins          `json:"coins"`
}

var _ orm.Model = (*Set)(nil)

// Validate requires that all coins are in alphabetical
// order and positive.
func (s *Set) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "Coins", s.Coins.Validate())
	if !s.Coins.IsNonNegative() {
		errs = errors.AppendField(errs, "Coins", errors.Wrap(errors.ErrInvalidAmount, "negative balance"))
	}
	return errs
}

func (s *Set) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(s)
}

func (s *Set) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, s)
}

// NewBucket returns a bucket of wallets keyed by the owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Set{})
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr nftescrow.QueryRouter) {
	NewBucket().Register("wallets", qr)
}
