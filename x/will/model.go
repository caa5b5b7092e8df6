package will

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/orm"
)

const maxMemoSize = 128

// State of a will. Once claimed, a will cannot be changed anymore.
type State int32

const (
	StateActive  State = 1
	StateClaimed State = 2
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateClaimed:
		return "claimed"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Registry lists the beneficiaries of a will. At most one of the two
// representations is set. Setting one always clears the other.
type Registry struct {
	Equal    *AddressSet `protobuf:"bytes,1,opt,name=equal,proto3" json:"equal,omitempty"`
	Weighted *ShareTable `protobuf:"bytes,2,opt,name=weighted,proto3" json:"weighted,omitempty"`
}

func (m *Registry) Reset()         { *m = Registry{} }
func (m *Registry) String() string { return proto.CompactTextString(m) }
func (*Registry) ProtoMessage()    {}

// Count returns the number of beneficiaries.
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	if r.Weighted != nil {
		return r.Weighted.Count()
	}
	return r.Equal.Count()
}

// IsEmpty returns true if nobody inherits the funds.
func (r *Registry) IsEmpty() bool {
	return r.Count() == 0
}

// IsWeighted returns true if the beneficiaries are paid by percent shares.
func (r *Registry) IsWeighted() bool {
	return r != nil && r.Weighted != nil
}

// AddBeneficiaries adds given addresses to the equal split set. Any weighted
// table is discarded. Registry is not modified if any of the addresses is
// invalid.
func (r *Registry) AddBeneficiaries(addrs ...bequest.Address) error {
	var set *AddressSet
	if r.Equal == nil {
		set = &AddressSet{}
	} else {
		set = r.Equal.Copy()
	}
	for i, a := range addrs {
		if err := set.Add(a); err != nil {
			return errors.Field(indexField("Beneficiaries", i), err, "")
		}
	}
	r.Weighted = nil
	r.Equal = set
	return nil
}

// ReplaceBeneficiaries sets the equal split set to exactly given addresses.
func (r *Registry) ReplaceBeneficiaries(addrs ...bequest.Address) error {
	set, err := NewAddressSet(addrs...)
	if err != nil {
		return err
	}
	r.Weighted = nil
	r.Equal = set
	return nil
}

// RemoveBeneficiary removes given address from the equal split set. Any
// weighted table is discarded.
func (r *Registry) RemoveBeneficiary(addr bequest.Address) error {
	if r.Equal == nil || !r.Equal.Has(addr) {
		return errors.Wrapf(errors.ErrNotFound, "%s is not a beneficiary", addr)
	}
	return r.Equal.Remove(addr)
}

// SetShares replaces the registry with a weighted table. Registry is not
// modified if the shares are not valid.
func (r *Registry) SetShares(shares []*Share) error {
	t, err := NewShareTable(shares...)
	if err != nil {
		return err
	}
	r.Equal = nil
	r.Weighted = t
	return nil
}

// Validate ensures at most one representation is set and that it is valid.
func (r *Registry) Validate() error {
	if r == nil {
		return errors.Wrap(errors.ErrModel, "registry required")
	}
	if r.Equal != nil && r.Weighted != nil {
		return errors.Wrap(errors.ErrModel, "registry cannot be both equal and weighted")
	}
	if r.Weighted != nil {
		return errors.Wrap(r.Weighted.Validate(), "weighted")
	}
	if r.Equal != nil {
		return errors.Wrap(r.Equal.Validate(), "equal")
	}
	return nil
}

// Copy returns a deep copy of the registry.
func (r *Registry) Copy() *Registry {
	if r == nil {
		return nil
	}
	return &Registry{Equal: r.Equal.Copy(), Weighted: r.Weighted.Copy()}
}

// Will holds coins on the will account and releases them to the
// beneficiaries once the timer elapsed.
type Will struct {
	Metadata  *bequest.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Ownership *OwnershipGuard   `protobuf:"bytes,2,opt,name=ownership,proto3" json:"ownership,omitempty"`
	Timer     *ExpiryTimer      `protobuf:"bytes,3,opt,name=timer,proto3" json:"timer,omitempty"`
	Registry  *Registry         `protobuf:"bytes,4,opt,name=registry,proto3" json:"registry,omitempty"`
	State     State             `protobuf:"varint,5,opt,name=state,proto3,casttype=State" json:"state,omitempty"`
	// Address is the account holding the will funds.
	Address   bequest.Address  `protobuf:"bytes,6,opt,name=address,proto3,casttype=github.com/iov-one/bequest.Address" json:"address,omitempty"`
	CreatedAt bequest.UnixTime `protobuf:"varint,7,opt,name=created_at,json=createdAt,proto3,casttype=github.com/iov-one/bequest.UnixTime" json:"created_at,omitempty"`
	ClaimedAt bequest.UnixTime `protobuf:"varint,8,opt,name=claimed_at,json=claimedAt,proto3,casttype=github.com/iov-one/bequest.UnixTime" json:"claimed_at,omitempty"`
	ClaimedBy bequest.Address  `protobuf:"bytes,9,opt,name=claimed_by,json=claimedBy,proto3,casttype=github.com/iov-one/bequest.Address" json:"claimed_by,omitempty"`
	Memo      string           `protobuf:"bytes,10,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ orm.Model = (*Will)(nil)

func (m *Will) Reset()         { *m = Will{} }
func (m *Will) String() string { return proto.CompactTextString(m) }
func (*Will) ProtoMessage()    {}

// Validate ensures the will is valid
func (m *Will) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	err = errors.AppendField(err, "Ownership", m.Ownership.Validate())
	err = errors.AppendField(err, "Timer", m.Timer.Validate())
	err = errors.AppendField(err, "Registry", m.Registry.Validate())
	err = errors.AppendField(err, "Address", m.Address.Validate())
	err = errors.AppendField(err, "CreatedAt", m.CreatedAt.Validate())
	switch m.State {
	case StateActive:
		if m.ClaimedAt != 0 || len(m.ClaimedBy) != 0 {
			err = errors.AppendField(err, "ClaimedAt", errors.ErrState.New("active will cannot be claimed"))
		}
	case StateClaimed:
		if m.ClaimedAt == 0 {
			err = errors.AppendField(err, "ClaimedAt", errors.ErrEmpty)
		}
		if len(m.ClaimedBy) != 0 {
			err = errors.AppendField(err, "ClaimedBy", m.ClaimedBy.Validate())
		}
	default:
		err = errors.AppendField(err, "State", errors.ErrState.Newf("unknown state %d", m.State))
	}
	if len(m.Memo) > maxMemoSize {
		err = errors.AppendField(err, "Memo", errors.ErrInput.Newf("memo longer than %d", maxMemoSize))
	}
	return err
}

// Copy returns a deep copy of the will.
func (m *Will) Copy() *Will {
	return &Will{
		Metadata:  m.Metadata.Copy(),
		Ownership: &OwnershipGuard{Owner: m.Ownership.GetOwner().Clone()},
		Timer:     &ExpiryTimer{Duration: m.Timer.Duration, Deadline: m.Timer.Deadline},
		Registry:  m.Registry.Copy(),
		State:     m.State,
		Address:   m.Address.Clone(),
		CreatedAt: m.CreatedAt,
		ClaimedAt: m.ClaimedAt,
		ClaimedBy: m.ClaimedBy.Clone(),
		Memo:      m.Memo,
	}
}

// Condition returns the condition that controls the will account.
func Condition(id []byte) bequest.Condition {
	return bequest.NewCondition("will", "seq", id)
}

// NewBucket returns a bucket for wills, indexed by the owner.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("will", &Will{},
		orm.WithIndex("owner", ownerIndex))
}

func ownerIndex(m orm.Model) ([]byte, error) {
	w, ok := m.(*Will)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	owner := w.Ownership.GetOwner()
	if len(owner) == 0 {
		return nil, nil
	}
	return owner, nil
}

func indexField(name string, i int) string {
	return fmt.Sprintf("%s.%d", name, i)
}
