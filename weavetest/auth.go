package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/nftescrow"
)

// Auth authenticates a fixed set of signers. Signers come first and Signer,
// when set, last. With only Signer set it is also the main signer, which is
// what most escrow handler tests need.
type Auth struct {
	Signer  nftescrow.Condition
	Signers []nftescrow.Condition
}

func (a *Auth) GetConditions(nftescrow.Context) []nftescrow.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append(a.Signers, a.Signer)
}

func (a *Auth) HasAddress(ctx nftescrow.Context, addr nftescrow.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the signers stored in the context under Key. It
// lets a single handler instance serve transactions of different parties.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context in which given parties signed.
func (a *CtxAuth) SetConditions(ctx nftescrow.Context, signers ...nftescrow.Condition) nftescrow.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetConditions(ctx nftescrow.Context) []nftescrow.Condition {
	switch signers := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []nftescrow.Condition:
		return signers
	default:
		panic(fmt.Sprintf("signers stored as %T", signers))
	}
}

func (a *CtxAuth) HasAddress(ctx nftescrow.Context, addr nftescrow.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(signers []nftescrow.Condition, addr nftescrow.Address) bool {
	for _, s := range signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
