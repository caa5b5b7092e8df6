package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]bequest.Handler
}

var _ bequest.Registry = (*Router)(nil)
var _ bequest.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]bequest.Handler, 10),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h bequest.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If no path is
// registered, it returns a handler that fails with ErrNotFound.
func (r *Router) Handler(path string) bequest.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Paths returns all registered paths in no particular order.
func (r *Router) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	return paths
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx bequest.Context, store bequest.KVStore, tx bequest.Tx) (*bequest.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx bequest.Context, store bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments.
type notFoundHandler string

func (path notFoundHandler) Check(bequest.Context, bequest.KVStore, bequest.Tx) (*bequest.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q path", string(path))
}

func (path notFoundHandler) Deliver(bequest.Context, bequest.KVStore, bequest.Tx) (*bequest.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q path", string(path))
}
