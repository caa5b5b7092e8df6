package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
)

// Genesis file format. Each extension reads its own key of the app state.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState bequest.Options `json:"app_state"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return ParseGenesis(raw)
}

// ParseGenesis decodes genesis file content.
func ParseGenesis(raw []byte) (*Genesis, error) {
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode genesis: %s", err)
	}
	if !bequest.IsValidChainID(gen.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	return &gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...bequest.Initializer) bequest.Initializer {
	return chainInitializer(inits)
}

type chainInitializer []bequest.Initializer

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts bequest.Options, db bequest.KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}

// _bq: is a prefix for internal data
const chainIDKey = "_bq:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(db bequest.ReadOnlyKVStore) (string, error) {
	v, err := db.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(db bequest.KVStore, chainID string) error {
	if !bequest.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := db.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := db.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
