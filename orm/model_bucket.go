package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,16}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	nftescrow.Persistent
	Validate() error
}

// ModelBucket stores models of a single type under a common key prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity,
	// ErrInvalidType is returned.
	One(db nftescrow.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key value exists. It
	// returns ErrNotFound if no entity can be found.
	Has(db nftescrow.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated first.
	Put(db nftescrow.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db nftescrow.KVStore, key []byte) error

	// Register registers this bucket's query handler under given path.
	Register(path string, r nftescrow.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as the given prototype.
func NewModelBucket(name string, proto Model) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	tp := reflect.TypeOf(proto)
	if tp.Kind() != reflect.Ptr {
		panic("model prototype must be a pointer")
	}
	return &modelBucket{
		prefix: []byte(name + ":"),
		model:  tp,
	}
}

type modelBucket struct {
	prefix []byte
	model  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db nftescrow.ReadOnlyKVStore, key []byte, dest Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw := db.Get(mb.dbKey(key))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model.Elem().Name())
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %s", mb.model.Elem().Name())
	}
	return nil
}

func (mb *modelBucket) Has(db nftescrow.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if !db.Has(mb.dbKey(key)) {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model.Elem().Name())
	}
	return nil
}

func (mb *modelBucket) Put(db nftescrow.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrInvalidType, "cannot store %T in %s bucket", m, mb.model)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	db.Set(mb.dbKey(key), raw)
	return nil
}

func (mb *modelBucket) Delete(db nftescrow.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	db.Delete(mb.dbKey(key))
	return nil
}

func (mb *modelBucket) Register(path string, r nftescrow.QueryRouter) {
	r.Register("/"+path, mb)
}

// Query implements nftescrow.QueryHandler. Returned keys include the bucket
// prefix.
func (mb *modelBucket) Query(db nftescrow.ReadOnlyKVStore, mod string, data []byte) ([]nftescrow.Model, error) {
	switch mod {
	case nftescrow.KeyQueryMod:
		key := mb.dbKey(data)
		value := db.Get(key)
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []nftescrow.Model{nftescrow.Pair(key, value)}, nil
	case nftescrow.PrefixQueryMod:
		return queryPrefix(db, mb.dbKey(data)), nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod %q", mod)
	}
}

// dbKey is the full key we store in the db, including prefix.
// A new array is allocated so that consecutive calls never share memory.
func (mb *modelBucket) dbKey(key []byte) []byte {
	l := len(mb.prefix)
	out := make([]byte, l+len(key))
	copy(out, mb.prefix)
	copy(out[l:], key)
	return out
}
