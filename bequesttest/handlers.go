package bequesttest

import "github.com/iov-one/bequest"

// Handler is a mock implementation of the bequest.Handler interface.
//
// Each method call is counted. If set, Write is stored under Key on every
// call before the result is returned, so that atomicity can be tested.
type Handler struct {
	checkCall   int
	CheckResult bequest.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult bequest.DeliverResult
	DeliverErr    error

	// Key and Write are stored in the database on every call when set.
	Key   []byte
	Write []byte

	// Panic if set causes every call to panic with its value.
	Panic interface{}
}

var _ bequest.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.CheckResult, error) {
	h.checkCall++
	if err := h.call(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	h.deliverCall++
	if err := h.call(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) call(db bequest.KVStore) error {
	if h.Key != nil {
		if err := db.Set(h.Key, h.Write); err != nil {
			return err
		}
	}
	if h.Panic != nil {
		panic(h.Panic)
	}
	return nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorator is a mock implementation of the bequest.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ bequest.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Checker) (*bequest.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Deliverer) (*bequest.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that calls given decorator for every call.
func Decorate(h bequest.Handler, d bequest.Decorator) bequest.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn bequest.Handler
	dc bequest.Decorator
}

var _ bequest.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
