package migration

import (
	"reflect"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// Migratable is implemented by messages and models that carry a schema
// version in their metadata.
type Migratable interface {
	GetMetadata() *nftescrow.Metadata
	Validate() error
}

// Migrator brings an entity from schema version v-1 to version v. The
// entity is modified in place.
type Migrator func(db nftescrow.ReadOnlyKVStore, m Migratable) error

// NoModification is a migrator for a schema change that does not affect
// given entity.
func NoModification(nftescrow.ReadOnlyKVStore, Migratable) error {
	return nil
}

type register struct {
	handlers map[payloadVersion]Migrator
}

func newRegister() *register {
	return &register{
		handlers: make(map[payloadVersion]Migrator),
	}
}

// payloadVersion references an entity type at a given schema version.
type payloadVersion struct {
	payload reflect.Type
	version uint32
}

func (r *register) MustRegister(migrationTo uint32, m Migratable, fn Migrator) {
	if err := r.Register(migrationTo, m, fn); err != nil {
		panic(err)
	}
}

// Register adds a migrator that upgrades given entity type to the
// migrationTo version. Versions of a single type must be registered in
// order, starting with 1.
func (r *register) Register(migrationTo uint32, m Migratable, fn Migrator) error {
	if migrationTo < 1 {
		return errors.Wrap(errors.ErrInvalidInput, "version must be greater than zero")
	}
	tp, err := payloadType(m)
	if err != nil {
		return err
	}
	pv := payloadVersion{payload: tp, version: migrationTo}
	if _, ok := r.handlers[pv]; ok {
		return errors.Wrapf(errors.ErrDuplicate, "already registered: %s.%s:%d", tp.PkgPath(), tp.Name(), migrationTo)
	}
	if migrationTo > 1 {
		prev := payloadVersion{payload: tp, version: migrationTo - 1}
		if _, ok := r.handlers[prev]; !ok {
			return errors.Wrapf(errors.ErrInvalidInput, "missing migration to version %d", migrationTo-1)
		}
	}
	r.handlers[pv] = fn
	return nil
}

// Apply upgrades given entity to the migrateTo schema version, running
// every missing migration in order. The entity is validated once all
// migrations are applied.
func (r *register) Apply(db nftescrow.ReadOnlyKVStore, m Migratable, migrateTo uint32) error {
	if migrateTo < 1 {
		return errors.Wrap(errors.ErrInvalidInput, "version must be greater than zero")
	}
	tp, err := payloadType(m)
	if err != nil {
		return err
	}
	meta := m.GetMetadata()
	if meta == nil {
		return errors.Wrapf(errors.ErrInvalidModel, "%T metadata is nil", m)
	}
	for v := meta.Schema + 1; v <= migrateTo; v++ {
		migrate, ok := r.handlers[payloadVersion{payload: tp, version: v}]
		if !ok {
			return errors.Wrapf(errors.ErrSchema, "%s migration to version %d missing", tp.Name(), v)
		}
		if err := migrate(db, m); err != nil {
			return errors.Wrapf(err, "migration to version %d", v)
		}
		meta.Schema = v
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "validation")
	}
	return nil
}

func payloadType(m Migratable) (reflect.Type, error) {
	tp := reflect.TypeOf(m)
	for tp != nil && tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	if tp == nil || tp.Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "only struct can be migrated, got %T", m)
	}
	return tp, nil
}

// reg is the register used during the runtime. Packages add their
// migrations to it from their init functions.
var reg = newRegister()

// MustRegister adds a migrator to the global register. It panics on
// duplicated or out of order registration.
func MustRegister(migrationTo uint32, m Migratable, fn Migrator) {
	reg.MustRegister(migrationTo, m, fn)
}

// Apply upgrades given entity to the requested schema version using the
// global register. Changes are applied in place, so a failed call may
// leave the entity partially migrated.
func Apply(db nftescrow.ReadOnlyKVStore, m Migratable, migrateTo uint32) error {
	return reg.Apply(db, m, migrateTo)
}
