package gconf

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/x"
)

// OwnedConfig is a configuration that declares an owner. Changes to such
// configuration must be signed by the owner.
type OwnedConfig interface {
	Configuration
	GetOwner() nftescrow.Address
}

// RequireOwner returns ErrUnauthorized unless the owner of given
// configuration signed the transaction.
func RequireOwner(ctx nftescrow.Context, auth x.Authenticator, conf OwnedConfig) error {
	owner := conf.GetOwner()
	if owner == nil {
		return errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	if !auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
	}
	return nil
}
