package app

import (
	"testing"
	"time"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/bequesttest"
	"github.com/iov-one/bequest/bequesttest/assert"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/store/iavl"
)

// blockInfo records the context values of the last call.
type blockInfo struct {
	bequesttest.Handler
	height  int64
	chainID string
	time    time.Time
}

func (b *blockInfo) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	b.height, _ = bequest.GetHeight(ctx)
	b.chainID = bequest.GetChainID(ctx)
	b.time, _ = bequest.BlockTime(ctx)
	return b.Handler.Deliver(ctx, db, tx)
}

func TestRunner(t *testing.T) {
	db := iavl.NewMemCommitStore()
	h := &blockInfo{}
	r, err := NewRunner(db, h, nil)
	assert.Nil(t, err)

	now := time.Unix(1000, 0).UTC()
	tx := &bequesttest.Tx{Msg: &bequesttest.Msg{RoutePath: "test/path"}}

	_, _, err = r.Deliver(now, tx)
	assert.IsErr(t, errors.ErrState, err)

	gen := &Genesis{ChainID: "runner-chain", AppState: bequest.Options{}}
	id, err := r.InitChain(gen, ChainInitializers())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.Equal(t, "runner-chain", r.ChainID())

	_, err = r.InitChain(gen, ChainInitializers())
	assert.IsErr(t, errors.ErrUnauthorized, err)

	h.Key = []byte("key")
	h.Write = []byte("first")
	_, id, err = r.Deliver(now, tx)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id.Version)
	assert.Equal(t, int64(2), h.height)
	assert.Equal(t, "runner-chain", h.chainID)
	assert.Equal(t, now, h.time.UTC())

	// Failed call is not stored.
	h.Write = []byte("second")
	h.DeliverErr = errors.ErrState
	_, _, err = r.Deliver(now, tx)
	assert.IsErr(t, errors.ErrState, err)

	// Check is never stored.
	h.Write = []byte("third")
	_, err = r.Check(now, tx)
	assert.Nil(t, err)

	err = r.Query(func(db bequest.ReadOnlyKVStore) error {
		v, err := db.Get([]byte("key"))
		assert.Nil(t, err)
		assert.Equal(t, []byte("first"), v)
		return nil
	})
	assert.Nil(t, err)

	last, err := r.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), last.Version)

	// The chain id survives a reload.
	reloaded, err := NewRunner(db, h, nil)
	assert.Nil(t, err)
	assert.Equal(t, "runner-chain", reloaded.ChainID())
}
