package cash

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/coin"
	"github.com/iov-one/nftescrow/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use nftescrow.Address, so address in hex, not base64
type GenesisAccount struct {
	Address nftescrow.Address `json:"address"`
	Coins   coin.Coins        `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ nftescrow.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts nftescrow.Options, kv nftescrow.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		coins, err := coin.NormalizeCoins(acct.Coins)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		w := Set{
			Metadata: &nftescrow.Metadata{Schema: 1},
			Coins:    coins,
		}
		if err := bucket.Put(kv, acct.Address, &w); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
