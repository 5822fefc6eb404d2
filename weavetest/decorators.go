package weavetest

import "github.com/iov-one/nftescrow"

// Decorator is a mock of a middleware. It passes the call to the next
// handler unless an error is configured for that method, in which case the
// error is returned and the next handler is never reached. Calls are
// counted.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ nftescrow.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx, next nftescrow.Checker) (*nftescrow.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx, next nftescrow.Deliverer) (*nftescrow.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns a handler that runs h behind d. Use it to test a single
// decorator without building the whole escrowd chain.
func Decorate(h nftescrow.Handler, d nftescrow.Decorator) nftescrow.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   nftescrow.Handler
	decorator nftescrow.Decorator
}

func (d decorated) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
