package migration

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/gconf"
)

const packageName = "migration"

// Configuration of the migration package. Admin is the only one allowed to
// upgrade a package schema.
type Configuration struct {
	Metadata *nftescrow.Metadata `json:"metadata"`
	Admin    nftescrow.Address   `json:"admin"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	return errs
}

func (c *Configuration) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, c)
}

func (c *Configuration) GetOwner() nftescrow.Address {
	return c.Admin
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "migration configuration")
	}
	return &conf, nil
}
