package escrow

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/coin"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/gconf"
	"github.com/iov-one/nftescrow/migration"
)

const packageName = "escrow"

func init() {
	migration.MustRegister(1, &Configuration{}, migration.NoModification)
}

// Configuration is the singleton holding the module settings and the
// escrow identifier counter.
type Configuration struct {
	Metadata *nftescrow.Metadata `json:"metadata"`
	// Owner is allowed to change the owner and to switch the module on
	// and off.
	Owner nftescrow.Address `json:"owner"`
	// Denom is the only denomination accepted as a payment.
	Denom string `json:"denom"`
	// Enabled gates creation, cancellation and settlement.
	Enabled bool `json:"enabled"`
	// EscrowID is the identifier that the next created escrow gets.
	EscrowID uint64 `json:"escrow_id"`
}

var (
	_ gconf.OwnedConfig    = (*Configuration)(nil)
	_ migration.Migratable = (*Configuration)(nil)
)

func (c *Configuration) GetMetadata() *nftescrow.Metadata {
	return c.Metadata
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if !coin.IsDenom(c.Denom) {
		errs = errors.AppendField(errs, "Denom", errors.Wrapf(errors.ErrInvalidInput, "invalid denomination %q", c.Denom))
	}
	return errs
}

func (c *Configuration) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, c)
}

// GetOwner returns the configuration administrator.
func (c *Configuration) GetOwner() nftescrow.Address {
	return c.Owner
}

// InitConfiguration creates the module configuration and declares schema
// version 1 of the package. The module starts enabled and the first escrow
// gets identifier zero. It fails with ErrDuplicate if the configuration
// already exists.
func InitConfiguration(db nftescrow.KVStore, owner nftescrow.Address, denom string) error {
	if gconf.Exists(db, packageName) {
		return errors.Wrap(errors.ErrDuplicate, "escrow configuration")
	}
	conf := Configuration{
		Metadata: &nftescrow.Metadata{Schema: 1},
		Owner:    owner,
		Denom:    denom,
		Enabled:  true,
		EscrowID: 0,
	}
	if err := conf.Validate(); err != nil {
		return errors.Wrap(err, "escrow configuration")
	}
	if err := migration.InitPkg(db, packageName); err != nil {
		return errors.Wrap(err, "escrow schema")
	}
	return SaveConfiguration(db, &conf)
}

// LoadConfiguration returns the module configuration at the current schema
// version. It fails with ErrNotFound if the module was never initialized.
func LoadConfiguration(db nftescrow.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "escrow configuration")
	}
	if err := migration.Migrate(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "escrow configuration")
	}
	return &conf, nil
}

// SaveConfiguration validates and persists the module configuration.
func SaveConfiguration(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, packageName, conf)
}

// loadEnabled returns the configuration if the module accepts state
// changing operations.
func loadEnabled(db nftescrow.ReadOnlyKVStore) (*Configuration, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if !conf.Enabled {
		return nil, errors.Wrap(ErrDisabled, "module switched off")
	}
	return conf, nil
}
