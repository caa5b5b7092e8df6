package x

import (
	"github.com/iov-one/bequest"
)

// Authenticator extracts the conditions fulfilled by the current call from
// the context. Handlers receive it in their constructor so that the
// signature scheme can be replaced, for example by a mock in tests.
type Authenticator interface {
	// GetConditions returns every condition the call is authorized with,
	// main signer first.
	GetConditions(bequest.Context) []bequest.Condition
	// HasAddress returns true if any of the conditions maps to the address.
	HasAddress(bequest.Context, bequest.Address) bool
}

// ChainAuth merges the conditions of many authenticators. Conditions are
// returned in the order of the authenticators.
func ChainAuth(impls ...Authenticator) Authenticator {
	return authChain(impls)
}

type authChain []Authenticator

func (ac authChain) GetConditions(ctx bequest.Context) []bequest.Condition {
	var res []bequest.Condition
	for _, a := range ac {
		res = append(res, a.GetConditions(ctx)...)
	}
	return res
}

func (ac authChain) HasAddress(ctx bequest.Context, addr bequest.Address) bool {
	for _, a := range ac {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition of the call or nil if the call is
// not authorized by anyone.
func MainSigner(ctx bequest.Context, auth Authenticator) bequest.Condition {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil
	}
	return conds[0]
}

// Caller returns the first of the preferred addresses that authorized the
// call. When none did, the address of the main signer is returned, or nil
// for an unsigned call.
func Caller(ctx bequest.Context, auth Authenticator, preferred ...bequest.Address) bequest.Address {
	for _, addr := range preferred {
		if len(addr) != 0 && auth.HasAddress(ctx, addr) {
			return addr
		}
	}
	if s := MainSigner(ctx, auth); s != nil {
		return s.Address()
	}
	return nil
}
