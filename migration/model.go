package migration

import (
	"encoding/binary"
	"regexp"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
)

// maxSchemaVersion bounds the version lookup of a single package.
const maxSchemaVersion = 10000

var isPackageName = regexp.MustCompile(`^[a-z][a-z0-9_]{1,31}$`).MatchString

func init() {
	MustRegister(1, &Schema{}, NoModification)
}

// Schema declares that a package uses a given schema version. Each upgrade
// of a package is a separate entry, so the highest stored version is the
// current one.
type Schema struct {
	Metadata *nftescrow.Metadata `json:"metadata"`
	Pkg      string              `json:"pkg"`
	Version  uint32              `json:"version"`
}

var (
	_ orm.Model  = (*Schema)(nil)
	_ Migratable = (*Schema)(nil)
)

func (s *Schema) GetMetadata() *nftescrow.Metadata {
	return s.Metadata
}

func (s *Schema) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	if s.Version < 1 {
		errs = errors.AppendField(errs, "Version", errors.Wrap(errors.ErrInvalidModel, "must be greater than zero"))
	}
	if !isPackageName(s.Pkg) {
		errs = errors.AppendField(errs, "Pkg", errors.Wrapf(errors.ErrInvalidModel, "invalid package name %q", s.Pkg))
	}
	return errs
}

func (s *Schema) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(s)
}

func (s *Schema) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, s)
}

// schemaID returns the key of a schema entry. Keys of a single package
// sort from the lowest to the highest version.
func schemaID(pkg string, version uint32) []byte {
	raw := make([]byte, len(pkg)+4)
	copy(raw, pkg)
	binary.BigEndian.PutUint32(raw[len(pkg):], version)
	return raw
}

// SchemaBucket keeps the schema version history of all packages.
type SchemaBucket struct {
	// The schema bucket itself is not versioned, otherwise reading the
	// version would require the version.
	b orm.ModelBucket
}

// NewSchemaBucket returns a bucket of package schema versions.
func NewSchemaBucket() *SchemaBucket {
	return &SchemaBucket{b: orm.NewModelBucket("schema", &Schema{})}
}

// CurrentSchema returns the current schema version of given package. It
// returns ErrNotFound if the package was never initialized.
func (b *SchemaBucket) CurrentSchema(db nftescrow.ReadOnlyKVStore, pkg string) (uint32, error) {
	for ver := uint32(1); ver < maxSchemaVersion; ver++ {
		switch err := b.b.Has(db, schemaID(pkg, ver)); {
		case err == nil:
			continue
		case !errors.ErrNotFound.Is(err):
			return 0, errors.Wrap(err, "schema")
		case ver == 1:
			return 0, errors.Wrapf(errors.ErrNotFound, "package %q not initialized", pkg)
		default:
			return ver - 1, nil
		}
	}
	return 0, errors.Wrap(errors.ErrInvalidState, "version too high")
}

// Create stores given schema entry. Only the version that directly follows
// the current one can be created.
func (b *SchemaBucket) Create(db nftescrow.KVStore, s *Schema) ([]byte, error) {
	ver, err := b.CurrentSchema(db, s.Pkg)
	switch {
	case errors.ErrNotFound.Is(err):
		if s.Version != 1 {
			return nil, errors.Wrap(errors.ErrInvalidInput, "schema not initialized with version 1")
		}
	case err != nil:
		return nil, errors.Wrap(err, "current schema")
	case ver+1 != s.Version:
		return nil, errors.Wrapf(errors.ErrDuplicate, "previous schema is %d", ver)
	}
	key := schemaID(s.Pkg, s.Version)
	if err := b.b.Put(db, key, s); err != nil {
		return nil, errors.Wrap(err, "cannot store schema")
	}
	return key, nil
}

// InitPkg declares schema version 1 for each given package. Packages that
// are already initialized are left untouched.
func InitPkg(db nftescrow.KVStore, packageNames ...string) error {
	bucket := NewSchemaBucket()
	for _, name := range packageNames {
		_, err := bucket.Create(db, &Schema{
			Metadata: &nftescrow.Metadata{Schema: 1},
			Pkg:      name,
			Version:  1,
		})
		if err != nil && !errors.ErrDuplicate.Is(err) {
			return errors.Wrap(err, name)
		}
	}
	return nil
}

// MustInitPkg is InitPkg that panics on failure.
func MustInitPkg(db nftescrow.KVStore, packageNames ...string) {
	if err := InitPkg(db, packageNames...); err != nil {
		panic(err)
	}
}

// RegisterQuery registers the schema history under "/schemas".
func RegisterQuery(qr nftescrow.QueryRouter) {
	NewSchemaBucket().b.Register("schemas", qr)
}
