package bequest

import (
	"reflect"

	"github.com/iov-one/bequest/errors"
)

// Msg is a request to make a state transition. It is just the request, and
// must be validated by the Handlers. All authentication information is in the
// context.
type Msg interface {
	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity checks on this message. It returns an
	// error if at least one test does not pass and the message must not be
	// processed.
	Validate() error
}

// Tx represent the data sent by the caller. It includes the actual message.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	// Destination must be a pointer to the message type.
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	if reflect.TypeOf(msg) != dest.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dest.Elem().Set(reflect.ValueOf(msg).Elem())

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
