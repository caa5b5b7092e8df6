package bequest

import (
	"context"
	"regexp"
	"time"

	"github.com/iov-one/bequest/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is the request context passed between the runner, decorators and
// handlers.
//
// There should exist two functions for every XYZ of type T that we want to
// support in Context:
//
//   WithXYZ(Context, T) Context
//   GetXYZ(Context) (val T, ok bool)
//
// WithXYZ panics if the value was previously set to avoid lower-level modules
// overwriting the value.
type Context = context.Context

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyLogger
	contextKeyBlockTime
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight sets the height of the current call. Every call executed by the
// runner gets the next height.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the height of the current call.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithChainID sets the chain id for the Context.
// panics if called with chain id already set
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic(errors.Wrapf(errors.ErrInput, "chain id %q", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id
// panics if chain id not already set (should never happen)
func GetChainID(ctx Context) string {
	if x := ctx.Value(contextKeyChainID); x == nil {
		panic("Chain ID not present")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithBlockTime sets the time of the current call. This is the "now" used by
// every time dependent check.
func WithBlockTime(ctx Context, t time.Time) Context {
	if ctx.Value(contextKeyBlockTime) != nil {
		panic("Block time already set")
	}
	return context.WithValue(ctx, contextKeyBlockTime, t)
}

// BlockTime returns the time of the current call. An error is returned if the
// time was not set.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	if !ok {
		return t, errors.Wrap(errors.ErrState, "block time not present in the context")
	}
	return t, nil
}

// IsExpired returns true if given time is in the past as compared to the
// "now" as declared for the call. Expiration is inclusive, meaning that if
// current time is equal to the expiration time than this function returns
// true.
//
// This function panics if the block time is not provided in the context.
// This must never happen.
func IsExpired(ctx Context, t UnixTime) bool {
	now, err := BlockTime(ctx)
	if err != nil {
		panic(err)
	}
	return t <= AsUnixTime(now)
}

// WithLogger sets the logger for this Context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
