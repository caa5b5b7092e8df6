package utils

import (
	"time"

	"github.com/iov-one/bequest"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ bequest.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (Logging) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Checker) (*bequest.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Deliverer) (*bequest.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx bequest.Context, tx bequest.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := bequest.GetLogger(ctx).With(
		"path", bequest.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
