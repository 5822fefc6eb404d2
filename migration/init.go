package migration

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/gconf"
)

// Initializer fulfils the Initializer interface to load the migration
// configuration and initial package schemas from the genesis file.
type Initializer struct{}

var _ nftescrow.Initializer = Initializer{}

// FromGenesis reads the "migration" configuration and declares schema
// version 1 for every package listed in "initialize_schema". The migration
// package itself is always initialized.
func (Initializer) FromGenesis(opts nftescrow.Options, db nftescrow.KVStore) error {
	var conf *struct {
		Admin nftescrow.Address `json:"admin"`
	}
	if err := opts.ReadOptions(packageName, &conf); err != nil {
		return err
	}
	if conf != nil {
		c := Configuration{
			Metadata: &nftescrow.Metadata{Schema: 1},
			Admin:    conf.Admin,
		}
		if err := gconf.Save(db, packageName, &c); err != nil {
			return errors.Wrap(err, "migration genesis")
		}
	}

	var packages []string
	if err := opts.ReadOptions("initialize_schema", &packages); err != nil {
		return err
	}
	seen := make(map[string]bool, len(packages))
	for _, name := range packages {
		if !isPackageName(name) {
			return errors.Wrapf(errors.ErrInvalidInput, "invalid package name %q", name)
		}
		if seen[name] {
			return errors.Wrapf(errors.ErrDuplicate, "package %q listed twice", name)
		}
		seen[name] = true
	}
	if err := InitPkg(db, append(packages, packageName)...); err != nil {
		return errors.Wrap(err, "initialize schema")
	}
	return nil
}
