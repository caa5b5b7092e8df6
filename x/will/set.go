package will

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
)

// AddressSet is an insertion ordered collection of unique addresses. Members
// of the set split the will balance equally.
type AddressSet struct {
	Members []bequest.Address `protobuf:"bytes,1,rep,name=members,proto3,casttype=github.com/iov-one/bequest.Address" json:"members,omitempty"`
}

func (m *AddressSet) Reset()         { *m = AddressSet{} }
func (m *AddressSet) String() string { return proto.CompactTextString(m) }
func (*AddressSet) ProtoMessage()    {}

// NewAddressSet returns a set containing given addresses. Duplicates are
// ignored.
func NewAddressSet(addrs ...bequest.Address) (*AddressSet, error) {
	s := &AddressSet{}
	for i, a := range addrs {
		if err := s.Add(a); err != nil {
			return nil, errors.Wrapf(err, "address %d", i)
		}
	}
	return s, nil
}

// Add inserts the address at the end of the set. Adding a member is a no-op.
func (s *AddressSet) Add(addr bequest.Address) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	if s.Has(addr) {
		return nil
	}
	s.Members = append(s.Members, addr.Clone())
	return nil
}

// Remove deletes the address from the set, keeping the order of the
// remaining members. ErrNotFound is returned if the address is not a member.
func (s *AddressSet) Remove(addr bequest.Address) error {
	for i, m := range s.Members {
		if m.Equals(addr) {
			s.Members = append(s.Members[:i], s.Members[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(errors.ErrNotFound, "%s is not a beneficiary", addr)
}

// Has returns true if given address is a member.
func (s *AddressSet) Has(addr bequest.Address) bool {
	if s == nil {
		return false
	}
	for _, m := range s.Members {
		if m.Equals(addr) {
			return true
		}
	}
	return false
}

// GetMembers returns a copy of all members in insertion order.
func (s *AddressSet) GetMembers() []bequest.Address {
	if s == nil || len(s.Members) == 0 {
		return nil
	}
	res := make([]bequest.Address, len(s.Members))
	for i, m := range s.Members {
		res[i] = m.Clone()
	}
	return res
}

// Count returns the number of members.
func (s *AddressSet) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Members)
}

// Validate ensures all members are valid addresses and that there are no
// duplicates.
func (s *AddressSet) Validate() error {
	var err error
	for i, m := range s.Members {
		if e := m.Validate(); e != nil {
			err = errors.AppendField(err, indexField("Members", i), e)
			continue
		}
		for _, prev := range s.Members[:i] {
			if prev.Equals(m) {
				err = errors.AppendField(err, indexField("Members", i), errors.ErrDuplicate)
				break
			}
		}
	}
	return err
}

// Copy returns a deep copy of the set.
func (s *AddressSet) Copy() *AddressSet {
	if s == nil {
		return nil
	}
	return &AddressSet{Members: s.GetMembers()}
}
