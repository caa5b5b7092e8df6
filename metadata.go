package bequest

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bequest/errors"
)

// Metadata is attached to every persisted model. Schema is the version of the
// model encoding, starting at 1.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

// Validate returns an error if the schema version is not set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "metadata is required")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be greater than zero")
	}
	return nil
}

// Copy returns a copy of this object.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}
