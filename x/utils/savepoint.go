package utils

import (
	"github.com/iov-one/nftescrow"
)

// Savepoint runs the rest of the chain on a cache of the store and writes
// the cache back only if the call succeeded. A failed escrow transaction,
// such as a settlement that moved funds and then failed, leaves no trace.
//
// Savepoint is inactive until enabled with OnCheck or OnDeliver. It is also
// inactive for stores that cannot be cached.
type Savepoint struct {
	check   bool
	deliver bool
}

var _ nftescrow.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a copy that is also active for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

// OnDeliver returns a copy that is also active for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx, next nftescrow.Checker) (*nftescrow.CheckResult, error) {
	var res *nftescrow.CheckResult
	err := isolate(s.check, db, func(db nftescrow.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx, next nftescrow.Deliverer) (*nftescrow.DeliverResult, error) {
	var res *nftescrow.DeliverResult
	err := isolate(s.deliver, db, func(db nftescrow.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn with a cache of db when active, and writes the cache
// only when fn returns no error.
func isolate(active bool, db nftescrow.KVStore, fn func(nftescrow.KVStore) error) error {
	cacheable, ok := db.(nftescrow.CacheableKVStore)
	if !active || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}
