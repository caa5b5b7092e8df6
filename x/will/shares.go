package will

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
)

const (
	minPercent   = 1
	maxPercent   = 100
	totalPercent = 100
)

// Share entitles an address to a percent of the will balance.
type Share struct {
	Address bequest.Address `protobuf:"bytes,1,opt,name=address,proto3,casttype=github.com/iov-one/bequest.Address" json:"address,omitempty"`
	Percent int32           `protobuf:"varint,2,opt,name=percent,proto3" json:"percent,omitempty"`
}

func (m *Share) Reset()         { *m = Share{} }
func (m *Share) String() string { return proto.CompactTextString(m) }
func (*Share) ProtoMessage()    {}

// ShareTable is an ordered list of percent shares that always sums up to
// exactly 100.
type ShareTable struct {
	Shares []*Share `protobuf:"bytes,1,rep,name=shares,proto3" json:"shares,omitempty"`
}

func (m *ShareTable) Reset()         { *m = ShareTable{} }
func (m *ShareTable) String() string { return proto.CompactTextString(m) }
func (*ShareTable) ProtoMessage()    {}

// NewShareTable returns a table holding given shares, or an error if they do
// not form a valid table.
func NewShareTable(shares ...*Share) (*ShareTable, error) {
	t := &ShareTable{}
	if err := t.SetShares(shares); err != nil {
		return nil, err
	}
	return t, nil
}

// SetShares replaces the content of the table with given shares. The shares
// are validated first and the table is not modified if they are not valid.
func (t *ShareTable) SetShares(shares []*Share) error {
	if err := validateShares(shares); err != nil {
		return err
	}
	cpy := make([]*Share, len(shares))
	for i, s := range shares {
		cpy[i] = &Share{Address: s.Address.Clone(), Percent: s.Percent}
	}
	t.Shares = cpy
	return nil
}

// Entries returns a copy of all shares in the order they were set.
func (t *ShareTable) Entries() []*Share {
	if t == nil || len(t.Shares) == 0 {
		return nil
	}
	res := make([]*Share, len(t.Shares))
	for i, s := range t.Shares {
		res[i] = &Share{Address: s.Address.Clone(), Percent: s.Percent}
	}
	return res
}

// Count returns the number of shares.
func (t *ShareTable) Count() int {
	if t == nil {
		return 0
	}
	return len(t.Shares)
}

// Validate ensures the table content is a valid share list.
func (t *ShareTable) Validate() error {
	return validateShares(t.Shares)
}

// Copy returns a deep copy of the table.
func (t *ShareTable) Copy() *ShareTable {
	if t == nil {
		return nil
	}
	return &ShareTable{Shares: t.Entries()}
}

// validateShares returns an ErrInput field error for a missing or malformed
// address and ErrInvalidShareSum for a percent out of range, a duplicated
// address or a total other than 100.
func validateShares(shares []*Share) error {
	if len(shares) == 0 {
		return errors.Wrap(ErrInvalidShareSum, "at least one share required")
	}

	var (
		err error
		sum int64
	)
	for i, s := range shares {
		field := indexField("Shares", i)
		if s == nil {
			err = errors.AppendField(err, field, errors.ErrEmpty)
			continue
		}
		if e := s.Address.Validate(); e != nil {
			err = errors.AppendField(err, field+".Address", e)
		} else {
			for _, prev := range shares[:i] {
				if prev != nil && prev.Address.Equals(s.Address) {
					err = errors.Append(err, errors.Field(field+".Address", ErrInvalidShareSum, "duplicated address %s", s.Address))
					break
				}
			}
		}
		if s.Percent < minPercent || s.Percent > maxPercent {
			err = errors.Append(err, errors.Field(field+".Percent", ErrInvalidShareSum, "percent %d not in [%d, %d]", s.Percent, minPercent, maxPercent))
		}
		sum += int64(s.Percent)
	}
	if err != nil {
		return err
	}
	if sum != totalPercent {
		return errors.Wrapf(ErrInvalidShareSum, "shares sum up to %d instead of %d", sum, totalPercent)
	}
	return nil
}
