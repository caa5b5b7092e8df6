package cash

import (
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/coin"
	"github.com/iov-one/bequest/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use bequest.Address, so address in hex, not base64
type GenesisAccount struct {
	Address bequest.Address `json:"address"`
	Coins   []*coin.Coin    `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ bequest.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts bequest.Options, kv bequest.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		wallet, err := NewWallet(acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := bucket.Save(kv, acct.Address, wallet); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
