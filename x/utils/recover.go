package utils

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// Recovery turns a panic of any inner handler into ErrPanic, so that a bug
// in one escrow transaction fails that transaction instead of halting the
// node. Every recovered panic is logged together with the message path.
type Recovery struct{}

var _ nftescrow.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx, next nftescrow.Checker) (_ *nftescrow.CheckResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx, next nftescrow.Deliverer) (_ *nftescrow.DeliverResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Deliver(ctx, db, tx)
}

// recoverTx must be deferred directly, otherwise recover returns nil.
func recoverTx(ctx nftescrow.Context, tx nftescrow.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	path := nftescrow.GetPath(tx)
	*err = errors.Wrapf(errors.ErrPanic, "%s: %v", path, r)
	nftescrow.GetLogger(ctx).Error("transaction panicked", "path", path, "panic", r)
}
