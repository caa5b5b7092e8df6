package utils

import (
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
)

// Recovery turns a panic of the wrapped handler into an ErrPanic error and
// logs it. A panicking call is rolled back like any failed call.
type Recovery struct{}

var _ bequest.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Checker) (_ *bequest.CheckResult, err error) {
	defer reportPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Deliverer) (_ *bequest.DeliverResult, err error) {
	defer reportPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

func reportPanic(ctx bequest.Context, tx bequest.Tx, errp *error) {
	if *errp == nil || !errors.ErrPanic.Is(*errp) {
		return
	}
	path := "unknown"
	if tx != nil {
		if msg, err := tx.GetMsg(); err == nil && msg != nil {
			path = msg.Path()
		}
	}
	bequest.GetLogger(ctx).Error("call panicked", "path", path, "err", *errp)
}
