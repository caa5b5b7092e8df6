package bequesttest

import "github.com/iov-one/bequest"

// Tx represents a transaction carrying a single message that is to be
// processed.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg bequest.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ bequest.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (bequest.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message. It is routed by its path.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by any method call.
	Err error
}

var _ bequest.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
