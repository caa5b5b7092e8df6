package sigs

import (
	"context"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/x"
)

type contextKey int

const (
	contextKeySigners contextKey = iota
)

// withSigners is private, only this package can authenticate signers.
func withSigners(ctx bequest.Context, signers []bequest.Condition) bequest.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate returns the conditions of the verified signers.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context.
// May be empty
func (Authenticate) GetConditions(ctx bequest.Context) []bequest.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]bequest.Condition)
	return val
}

// HasAddress returns true if the address signed the current Context.
func (a Authenticate) HasAddress(ctx bequest.Context, addr bequest.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
