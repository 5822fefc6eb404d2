package migration

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
)

// ModelBucket is an orm.ModelBucket that keeps models at the current
// schema version of a package. Loaded models are migrated before they are
// returned and models are migrated before they are stored.
//
// Query results are not migrated. They are returned as stored.
type ModelBucket struct {
	orm.ModelBucket
	packageName string
	schema      *SchemaBucket
	migrations  *register
}

var _ orm.ModelBucket = (*ModelBucket)(nil)

// NewModelBucket returns a schema aware wrapper of given bucket. The schema
// version of the packageName package is used.
func NewModelBucket(packageName string, b orm.ModelBucket) *ModelBucket {
	return &ModelBucket{
		ModelBucket: b,
		packageName: packageName,
		schema:      NewSchemaBucket(),
		migrations:  reg,
	}
}

func (m *ModelBucket) One(db nftescrow.ReadOnlyKVStore, key []byte, dest orm.Model) error {
	if err := m.ModelBucket.One(db, key, dest); err != nil {
		return err
	}
	if err := m.migrate(db, dest); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return nil
}

func (m *ModelBucket) Put(db nftescrow.KVStore, key []byte, model orm.Model) error {
	if err := m.migrate(db, model); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return m.ModelBucket.Put(db, key, model)
}

func (m *ModelBucket) migrate(db nftescrow.ReadOnlyKVStore, model orm.Model) error {
	return migrate(m.migrations, m.schema, m.packageName, db, model)
}

func migrate(
	migrations *register,
	schema *SchemaBucket,
	packageName string,
	db nftescrow.ReadOnlyKVStore,
	value interface{},
) error {
	m, ok := value.(Migratable)
	if !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "%T cannot be migrated", value)
	}
	current, err := schema.CurrentSchema(db, packageName)
	if err != nil {
		return errors.Wrapf(err, "current schema version of package %q", packageName)
	}
	meta := m.GetMetadata()
	if meta == nil {
		return errors.Wrapf(errors.ErrInvalidModel, "%T metadata is nil", m)
	}
	// Entities created without a schema are in the current format.
	if meta.Schema == 0 {
		meta.Schema = current
		return nil
	}
	if meta.Schema > current {
		return errors.Wrapf(errors.ErrSchema, "schema %d higher than %d", meta.Schema, current)
	}
	return migrations.Apply(db, m, current)
}

// Migrate upgrades given value to the current schema version of the
// package. It fails if the value is not migratable, if the package is not
// initialized or if the value declares a schema newer than the current
// one.
func Migrate(db nftescrow.ReadOnlyKVStore, packageName string, value interface{}) error {
	return migrate(reg, NewSchemaBucket(), packageName, db, value)
}
