package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bequest/errors"
)

// Counter is a model used only in tests.
type Counter struct {
	Owner []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Count int64  `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *Counter) Reset()         { *m = Counter{} }
func (m *Counter) String() string { return proto.CompactTextString(m) }
func (*Counter) ProtoMessage()    {}

func (m *Counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func counterByOwner(m Model) ([]byte, error) {
	c, ok := m.(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return c.Owner, nil
}
