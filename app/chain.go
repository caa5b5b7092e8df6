package app

import (
	"reflect"

	"github.com/iov-one/bequest"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []bequest.Decorator
}

/*
ChainDecorators takes a chain of decorators, and upon adding a final
Handler (often a Router), returns a Handler that will execute this whole
stack. The first decorator is the outermost one.

  app.ChainDecorators(
    utils.NewRecovery(),
    utils.NewLogging(),
    sigs.NewDecorator().AllowMissingSigs(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(router)
*/
func ChainDecorators(chain ...bequest.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a copy of the chain extended with given decorators. Nil
// decorators are ignored.
func (d Decorators) Chain(chain ...bequest.Decorator) Decorators {
	next := make([]bequest.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if isNil(dec) {
			continue
		}
		next = append(next, dec)
	}
	return Decorators{chain: next}
}

func isNil(d bequest.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h bequest.Handler) bequest.Handler {
	// Wrap from the last decorator so that the first one is executed
	// first.
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a specific Handler.
type step struct {
	d    bequest.Decorator
	next bequest.Handler
}

var _ bequest.Handler = step{}

// Check passes the handler into the decorator, implements Handler
func (s step) Check(ctx bequest.Context, store bequest.KVStore, tx bequest.Tx) (*bequest.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx bequest.Context, store bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
