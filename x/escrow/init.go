package escrow

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// Initializer fulfils the Initializer interface to load the module
// configuration from the genesis file.
type Initializer struct{}

var _ nftescrow.Initializer = Initializer{}

// FromGenesis initializes the configuration from the "escrow" section of
// the genesis. A missing section leaves the module uninitialized.
func (Initializer) FromGenesis(opts nftescrow.Options, db nftescrow.KVStore) error {
	var genesis *struct {
		Owner nftescrow.Address `json:"owner"`
		Denom string            `json:"denom"`
	}
	if err := opts.ReadOptions(packageName, &genesis); err != nil {
		return err
	}
	if genesis == nil {
		return nil
	}
	if err := InitConfiguration(db, genesis.Owner, genesis.Denom); err != nil {
		return errors.Wrap(err, "escrow genesis")
	}
	return nil
}
