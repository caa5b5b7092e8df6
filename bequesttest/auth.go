package bequesttest

import (
	"context"
	"fmt"

	"github.com/iov-one/bequest"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer. When
	// authenticating all signers declared on this structure are
	// considered.
	Signer bequest.Condition

	// Signers represents an authentication of multiple signers.
	Signers []bequest.Condition
}

func (a *Auth) GetConditions(bequest.Context) []bequest.Condition {
	if a.Signer != nil {
		return append([]bequest.Condition{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx bequest.Context, addr bequest.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

// SetConditions returns a context authenticating given conditions.
func (a *CtxAuth) SetConditions(ctx bequest.Context, permissions ...bequest.Condition) bequest.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx bequest.Context) []bequest.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]bequest.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []bequest.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx bequest.Context, addr bequest.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
