package sigs

import (
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
)

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ bequest.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator, which requires
// at least one signature to be present.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Checker) (*bequest.CheckResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Deliverer) (*bequest.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) authenticate(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (bequest.Context, error) {
	var signers []bequest.Condition
	if stx, ok := tx.(SignedTx); ok {
		var err error
		signers, err = VerifyTxSignatures(db, stx, bequest.GetChainID(ctx))
		if err != nil {
			return nil, errors.Wrap(err, "cannot verify signatures")
		}
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
