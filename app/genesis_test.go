package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/bequesttest/assert"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/store"
)

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "genesis.json")
	content := `{"chain_id": "test-chain", "app_state": {"cash": [], "will": []}}`
	assert.Nil(t, ioutil.WriteFile(path, []byte(content), 0600))

	gen, err := LoadGenesis(path)
	assert.Nil(t, err)
	assert.Equal(t, "test-chain", gen.ChainID)
	assert.Equal(t, 2, len(gen.AppState))

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.IsErr(t, errors.ErrInput, err)

	_, err = ParseGenesis([]byte(`{"chain_id": "x"}`))
	assert.IsErr(t, errors.ErrInput, err)
	_, err = ParseGenesis([]byte(`[]`))
	assert.IsErr(t, errors.ErrInput, err)
}

type recordingInit struct {
	called []string
	name   string
	err    error
}

func (r *recordingInit) FromGenesis(opts bequest.Options, db bequest.KVStore) error {
	r.called = append(r.called, r.name)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	a := &recordingInit{name: "a"}
	b := &recordingInit{name: "b", err: errors.ErrState}
	c := &recordingInit{name: "c"}

	err := ChainInitializers(a, b, c).FromGenesis(bequest.Options{}, store.MemStore())
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, []string{"a"}, a.called)
	assert.Equal(t, []string{"b"}, b.called)
	assert.Equal(t, 0, len(c.called))
}

func TestChainID(t *testing.T) {
	db := store.MemStore()
	id, err := loadChainID(db)
	assert.Nil(t, err)
	assert.Equal(t, "", id)

	assert.IsErr(t, errors.ErrInput, saveChainID(db, "no"))
	assert.Nil(t, saveChainID(db, "my-chain"))
	assert.IsErr(t, errors.ErrUnauthorized, saveChainID(db, "other-chain"))

	id, err = loadChainID(db)
	assert.Nil(t, err)
	assert.Equal(t, "my-chain", id)
}
