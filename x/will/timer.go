package will

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
)

// ExpiryTimer tracks the deadline after which a will can be distributed.
type ExpiryTimer struct {
	// Duration is the number of seconds the deadline was last set to.
	Duration int64 `protobuf:"varint,1,opt,name=duration,proto3" json:"duration,omitempty"`
	// Deadline is inclusive. At that time the timer has elapsed.
	Deadline bequest.UnixTime `protobuf:"varint,2,opt,name=deadline,proto3,casttype=github.com/iov-one/bequest.UnixTime" json:"deadline,omitempty"`
}

func (m *ExpiryTimer) Reset()         { *m = ExpiryTimer{} }
func (m *ExpiryTimer) String() string { return proto.CompactTextString(m) }
func (*ExpiryTimer) ProtoMessage()    {}

// NewExpiryTimer returns a timer that elapses given number of seconds after
// now.
func NewExpiryTimer(now bequest.UnixTime, seconds int64) (*ExpiryTimer, error) {
	t := &ExpiryTimer{}
	if err := t.Configure(now, seconds); err != nil {
		return nil, err
	}
	return t, nil
}

// Configure sets the deadline to now + seconds.
func (t *ExpiryTimer) Configure(now bequest.UnixTime, seconds int64) error {
	if seconds <= 0 {
		return errors.Field("Duration", errors.ErrInput, "duration must be positive, got %d", seconds)
	}
	deadline, err := now.AddSeconds(seconds)
	if err != nil {
		return errors.Field("Duration", err, "deadline")
	}
	t.Duration = seconds
	t.Deadline = deadline
	return nil
}

// Extend recomputes the deadline relative to now. Previous deadline is
// discarded, so the deadline can be moved closer as well.
func (t *ExpiryTimer) Extend(now bequest.UnixTime, seconds int64) error {
	return t.Configure(now, seconds)
}

// HasElapsed returns true if the deadline is not in the future.
func (t *ExpiryTimer) HasElapsed(now bequest.UnixTime) bool {
	return now >= t.Deadline
}

// GetDeadline returns the deadline or zero if the timer is not set.
func (t *ExpiryTimer) GetDeadline() bequest.UnixTime {
	if t == nil {
		return 0
	}
	return t.Deadline
}

func (t *ExpiryTimer) Validate() error {
	if t == nil {
		return errors.Wrap(errors.ErrModel, "timer required")
	}
	var err error
	if t.Duration <= 0 {
		err = errors.AppendField(err, "Duration", errors.ErrInput)
	}
	if t.Deadline == 0 {
		err = errors.AppendField(err, "Deadline", errors.ErrEmpty)
	}
	return errors.AppendField(err, "Deadline", t.Deadline.Validate())
}
