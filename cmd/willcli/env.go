package main

import (
	"path/filepath"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/app"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/store/iavl"
	"github.com/iov-one/bequest/x/cash"
	"github.com/iov-one/bequest/x/sigs"
	"github.com/iov-one/bequest/x/utils"
	"github.com/iov-one/bequest/x/will"
)

// stack returns the handler every call is executed by.
func (c *cli) stack() (bequest.Handler, error) {
	if c.callMetrics == nil {
		m, err := utils.NewMetrics(c.metrics)
		if err != nil {
			return nil, err
		}
		c.callMetrics = m
	}

	ctrl := cash.NewController(cash.NewBucket())
	auth := sigs.Authenticate{}
	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, ctrl)
	will.RegisterRoutes(r, auth, ctrl)

	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		c.callMetrics,
		utils.NewActionTagger(),
		// Distribution can be triggered without a signature.
		sigs.NewDecorator().AllowMissingSigs(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r), nil
}

func initializers() bequest.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		&will.Initializer{},
	)
}

// withRunner opens the state database for the duration of fn.
func (c *cli) withRunner(fn func(*app.Runner) error) error {
	handler, err := c.stack()
	if err != nil {
		return err
	}
	db, err := iavl.NewCommitStore(filepath.Join(c.cfg.Home, "data"), "state")
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := app.NewRunner(db, handler, c.logger.With("module", "state"))
	if err != nil {
		return err
	}
	return fn(r)
}

// deliver signs the message with the configured key, if any, and executes
// it.
func (c *cli) deliver(msg bequest.Msg) (*bequest.DeliverResult, error) {
	var res *bequest.DeliverResult
	err := c.withRunner(func(r *app.Runner) error {
		chainID := r.ChainID()
		if chainID == "" {
			return errors.Wrap(errors.ErrState, "state not initialized, run genesis first")
		}

		tx := &Tx{Msg: msg}
		if c.keyName != "" {
			key, err := loadKey(c.cfg.Home, c.keyName)
			if err != nil {
				return err
			}
			var nonce int64
			err = r.Query(func(db bequest.ReadOnlyKVStore) error {
				var err error
				nonce, err = sigs.NextNonce(db, key.PublicKey().Address())
				return err
			})
			if err != nil {
				return err
			}
			sig, err := sigs.SignTx(key, tx, chainID, nonce)
			if err != nil {
				return errors.Wrap(err, "cannot sign")
			}
			tx.Signatures = []*sigs.Signature{sig}
		}

		if _, err := r.Check(c.now(), tx); err != nil {
			return err
		}
		out, id, err := r.Deliver(c.now(), tx)
		if err != nil {
			return err
		}
		res = out
		c.logger.Debug("committed", "height", id.Version)
		return nil
	})
	return res, err
}
