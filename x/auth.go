package x

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// Authenticator tells which parties signed the transaction being
// processed. Escrow handlers receive it in their constructor so that the
// signature scheme can be replaced without touching them.
type Authenticator interface {
	// GetConditions returns the signers in the order they signed. The
	// first one is the main signer.
	GetConditions(nftescrow.Context) []nftescrow.Condition
	// HasAddress reports whether any of the signers has given address.
	HasAddress(nftescrow.Context, nftescrow.Address) bool
}

// ChainAuth returns an Authenticator that sees the signers of all given
// authenticators, in the order the authenticators are given.
func ChainAuth(impls ...Authenticator) Authenticator {
	return authChain(impls)
}

type authChain []Authenticator

func (c authChain) GetConditions(ctx nftescrow.Context) []nftescrow.Condition {
	var conds []nftescrow.Condition
	for _, a := range c {
		conds = append(conds, a.GetConditions(ctx)...)
	}
	return conds
}

func (c authChain) HasAddress(ctx nftescrow.Context, addr nftescrow.Address) bool {
	for _, a := range c {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the party that created the transaction, or nil for an
// unsigned one. The escrow creator is the main signer of CreateEscrowMsg.
func MainSigner(ctx nftescrow.Context, auth Authenticator) nftescrow.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// RequireMainSigner fails with ErrUnauthorized unless addr belongs to the
// main signer. Being a co-signer is not enough, so a buyer cannot act as the
// seller by merely adding the seller signature.
func RequireMainSigner(ctx nftescrow.Context, auth Authenticator, addr nftescrow.Address) error {
	signer := MainSigner(ctx, auth)
	switch {
	case signer == nil:
		return errors.Wrap(errors.ErrUnauthorized, "no signer")
	case !signer.Address().Equals(addr):
		return errors.Wrapf(errors.ErrUnauthorized, "main signer %s", signer.Address())
	}
	return nil
}
