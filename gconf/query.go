package gconf

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// QueryHandler returns the raw configuration of a package. The query data is
// the package name.
type QueryHandler struct{}

var _ nftescrow.QueryHandler = QueryHandler{}

// RegisterQuery registers the configuration query handler under /gconf.
func RegisterQuery(qr nftescrow.QueryRouter) {
	qr.Register("/gconf", QueryHandler{})
}

func (QueryHandler) Query(db nftescrow.ReadOnlyKVStore, mod string, data []byte) ([]nftescrow.Model, error) {
	if mod != nftescrow.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod %q", mod)
	}
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "package name")
	}
	key := Key(string(data))
	raw := db.Get(key)
	if raw == nil {
		return nil, nil
	}
	return []nftescrow.Model{nftescrow.Pair(key, raw)}, nil
}
