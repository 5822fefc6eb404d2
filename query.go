package nftescrow

import "fmt"

// Query modifiers. A key query returns at most one model, a prefix query
// returns every model whose key starts with the given data, for example all
// escrows of one creator.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair returns a model of given key and value.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries sent to a single path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister registers the query handlers of one package.
type QueryRegister func(QueryRouter)

// QueryRouter maps a query path, such as "/escrows", to its handler.
type QueryRouter map[string]QueryHandler

func NewQueryRouter() QueryRouter {
	return make(QueryRouter)
}

// RegisterAll calls every register function with this router.
func (r QueryRouter) RegisterAll(regs ...QueryRegister) {
	for _, register := range regs {
		register(r)
	}
}

// Register panics if path already has a handler, because two packages
// sharing a path is a wiring bug.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r[path]; ok {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r[path] = h
}

// Handler returns nil when nothing is registered under path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r[path]
}
