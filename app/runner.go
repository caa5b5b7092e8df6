package app

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Runner executes calls one at a time against a committed store. Every
// call runs over its own cache wrap. A successful delivery is written and
// committed as a new version, a failed one leaves no trace.
type Runner struct {
	mu      sync.Mutex
	store   bequest.CommitKVStore
	handler bequest.Handler
	logger  log.Logger
	chainID string
}

// NewRunner loads the latest version of the store.
func NewRunner(store bequest.CommitKVStore, h bequest.Handler, logger log.Logger) (*Runner, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	chainID, err := loadChainID(store.CacheWrap())
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Runner{
		store:   store,
		handler: h,
		logger:  logger,
		chainID: chainID,
	}, nil
}

// ChainID returns the chain id set by the genesis. It is empty if the
// chain was not initialized yet.
func (r *Runner) ChainID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chainID
}

// InitChain stores the chain id and runs initializers over the genesis
// application state. It can be called only once for a store.
func (r *Runner) InitChain(gen *Genesis, init bequest.Initializer) (bequest.CommitID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cache := r.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return bequest.CommitID{}, err
	}
	if err := init.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return bequest.CommitID{}, errors.Wrap(err, "genesis")
	}
	id, err := r.commit(cache)
	if err != nil {
		return id, err
	}
	r.chainID = gen.ChainID
	r.logger.Info("chain initialized", "chain_id", gen.ChainID, "height", id.Version)
	return id, nil
}

// Check runs the check phase of the call. Nothing is stored.
func (r *Runner) Check(now time.Time, tx bequest.Tx) (*bequest.CheckResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, err := r.callContext(now)
	if err != nil {
		return nil, err
	}
	cache := r.store.CacheWrap()
	defer cache.Discard()
	return r.handler.Check(ctx, cache, tx)
}

// Deliver executes the call and commits its changes.
func (r *Runner) Deliver(now time.Time, tx bequest.Tx) (*bequest.DeliverResult, bequest.CommitID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, err := r.callContext(now)
	if err != nil {
		return nil, bequest.CommitID{}, err
	}
	cache := r.store.CacheWrap()
	res, err := r.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, bequest.CommitID{}, err
	}
	id, err := r.commit(cache)
	if err != nil {
		return nil, id, err
	}
	return res, id, nil
}

// Query gives a read only view of the latest committed state.
func (r *Runner) Query(fn func(bequest.ReadOnlyKVStore) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cache := r.store.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}

// LatestVersion returns the height and hash of the last commit.
func (r *Runner) LatestVersion() (bequest.CommitID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.LatestVersion()
}

func (r *Runner) callContext(now time.Time) (bequest.Context, error) {
	if r.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	last, err := r.store.LatestVersion()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	height := last.Version + 1

	ctx := bequest.WithHeight(context.Background(), height)
	ctx = bequest.WithChainID(ctx, r.chainID)
	ctx = bequest.WithBlockTime(ctx, now)
	ctx = bequest.WithLogger(ctx, r.logger.With("height", height))
	return ctx, nil
}

func (r *Runner) commit(cache bequest.KVCacheWrap) (bequest.CommitID, error) {
	if err := cache.Write(); err != nil {
		return bequest.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	id, err := r.store.Commit()
	if err != nil {
		return id, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	r.logger.Debug("commit", "height", id.Version, "hash", id.Hash)
	return id, nil
}
