package cash

import (
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r bequest.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ bequest.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized
func (h SendHandler) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bequest.CheckResult{}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Src, msg.Dest, *msg.Amount); err != nil {
		return nil, err
	}
	return &bequest.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx bequest.Context, tx bequest.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := bequest.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
