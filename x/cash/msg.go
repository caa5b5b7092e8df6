package cash

import (
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/coin"
	"github.com/iov-one/bequest/errors"
)

const maxMemoSize int = 128

// SendMsg moves coins from the source account to the destination.
type SendMsg struct {
	Src    bequest.Address
	Dest   bequest.Address
	Amount *coin.Coin
	Memo   string
}

var _ bequest.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var err error
	if coin.IsEmpty(m.Amount) || !m.Amount.IsPositive() {
		err = errors.Wrapf(errors.ErrAmount, "non-positive amount: %v", m.Amount)
	} else {
		err = errors.AppendField(err, "Amount", m.Amount.Validate())
	}
	err = errors.AppendField(err, "Src", m.Src.Validate())
	err = errors.AppendField(err, "Dest", m.Dest.Validate())
	if len(m.Memo) > maxMemoSize {
		err = errors.AppendField(err, "Memo", errors.ErrState.New("memo too long"))
	}
	return err
}
