package app

import (
	"reflect"

	"github.com/iov-one/nftescrow"
)

// Decorators is a decorator stack waiting for the handler it wraps.
type Decorators struct {
	chain []nftescrow.Decorator
}

// ChainDecorators starts a stack. The first decorator is the outermost one,
// so it sees the transaction first. Nil decorators are skipped, which lets
// the escrowd stack leave out optional parts such as metrics:
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		metrics, // may be nil
//		utils.NewSavepoint().OnDeliver(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
func ChainDecorators(chain ...nftescrow.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a stack with the given decorators appended as the
// innermost ones.
func (d Decorators) Chain(chain ...nftescrow.Decorator) Decorators {
	stack := make([]nftescrow.Decorator, 0, len(d.chain)+len(chain))
	stack = append(stack, d.chain...)
	return Decorators{chain: append(stack, cutoffNil(chain)...)}
}

// cutoffNil removes nil values, including typed nil pointers, from given
// slice in place.
func cutoffNil(ds []nftescrow.Decorator) []nftescrow.Decorator {
	kept := ds[:0]
	for _, d := range ds {
		if isNil(d) {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

func isNil(d nftescrow.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack around h.
func (d Decorators) WithHandler(h nftescrow.Handler) nftescrow.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{decorator: d.chain[i], next: h}
	}
	return h
}

// step is one decorator bound to the handler it calls next.
type step struct {
	decorator nftescrow.Decorator
	next      nftescrow.Handler
}

var _ nftescrow.Handler = step{}

func (s step) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.CheckResult, error) {
	return s.decorator.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	return s.decorator.Deliver(ctx, db, tx, s.next)
}
