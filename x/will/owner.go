package will

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
)

// OwnershipGuard holds the single address allowed to configure a will. After
// the ownership is renounced the owner is empty and nobody can configure the
// will anymore.
type OwnershipGuard struct {
	Owner bequest.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/bequest.Address" json:"owner,omitempty"`
}

func (m *OwnershipGuard) Reset()         { *m = OwnershipGuard{} }
func (m *OwnershipGuard) String() string { return proto.CompactTextString(m) }
func (*OwnershipGuard) ProtoMessage()    {}

// OwnershipChanged describes a change of the owner. Next is empty when the
// ownership was renounced.
type OwnershipChanged struct {
	Previous bequest.Address
	Next     bequest.Address
}

// GetOwner returns the current owner or nil if the ownership was renounced.
func (g *OwnershipGuard) GetOwner() bequest.Address {
	if g == nil {
		return nil
	}
	return g.Owner
}

// IsRenounced returns true if the will has no owner.
func (g *OwnershipGuard) IsRenounced() bool {
	return len(g.GetOwner()) == 0
}

// Authorize returns ErrUnauthorized unless the caller is the current owner.
func (g *OwnershipGuard) Authorize(caller bequest.Address) error {
	if g.IsRenounced() {
		return errors.Wrap(errors.ErrUnauthorized, "ownership renounced")
	}
	if !g.Owner.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "owner only")
	}
	return nil
}

// TransferOwnership sets a new owner. Only the current owner is allowed to
// transfer the ownership.
func (g *OwnershipGuard) TransferOwnership(caller, newOwner bequest.Address) (*OwnershipChanged, error) {
	if err := g.Authorize(caller); err != nil {
		return nil, err
	}
	if err := newOwner.Validate(); err != nil {
		return nil, errors.Field("NewOwner", err, "invalid new owner")
	}
	change := &OwnershipChanged{Previous: g.Owner, Next: newOwner.Clone()}
	g.Owner = change.Next
	return change, nil
}

// RenounceOwnership removes the owner. This cannot be undone.
func (g *OwnershipGuard) RenounceOwnership(caller bequest.Address) (*OwnershipChanged, error) {
	if err := g.Authorize(caller); err != nil {
		return nil, err
	}
	change := &OwnershipChanged{Previous: g.Owner}
	g.Owner = nil
	return change, nil
}

// Validate allows an empty owner, because a renounced will is still valid.
func (g *OwnershipGuard) Validate() error {
	if g == nil {
		return errors.Wrap(errors.ErrModel, "ownership required")
	}
	if len(g.Owner) == 0 {
		return nil
	}
	return errors.Field("Owner", g.Owner.Validate(), "")
}
