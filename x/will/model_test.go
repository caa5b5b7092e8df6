package will

import (
	"testing"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/bequesttest"
	"github.com/iov-one/bequest/bequesttest/assert"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/store"
)

func TestRegistryModeSwitch(t *testing.T) {
	a := bequesttest.NewCondition().Address()
	b := bequesttest.NewCondition().Address()
	c := bequesttest.NewCondition().Address()

	r := &Registry{}
	assert.Equal(t, true, r.IsEmpty())

	assert.Nil(t, r.AddBeneficiaries(a, b))
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, false, r.IsWeighted())

	// Invalid input does not modify the registry.
	err := r.AddBeneficiaries(c, nil)
	assert.FieldError(t, err, "Beneficiaries.1", errors.ErrInput)
	assert.Equal(t, []bequest.Address{a, b}, r.Equal.GetMembers())

	assert.Nil(t, r.SetShares([]*Share{{Address: c, Percent: 100}}))
	assert.Equal(t, true, r.IsWeighted())
	assert.Nil(t, r.Equal)
	assert.Equal(t, 1, r.Count())

	// Invalid table keeps the previous one.
	assert.IsErr(t, ErrInvalidShareSum, r.SetShares([]*Share{{Address: a, Percent: 99}}))
	assert.Equal(t, []*Share{{Address: c, Percent: 100}}, r.Weighted.Entries())

	// Removing is only possible in the equal split mode.
	assert.IsErr(t, errors.ErrNotFound, r.RemoveBeneficiary(c))

	// Switching back discards the table.
	assert.Nil(t, r.AddBeneficiaries(b))
	assert.Nil(t, r.Weighted)
	assert.Equal(t, []bequest.Address{b}, r.Equal.GetMembers())

	assert.Nil(t, r.ReplaceBeneficiaries(c, a))
	assert.Equal(t, []bequest.Address{c, a}, r.Equal.GetMembers())
	assert.Nil(t, r.RemoveBeneficiary(c))
	assert.Equal(t, []bequest.Address{a}, r.Equal.GetMembers())
	assert.Nil(t, r.Validate())

	invalid := &Registry{
		Equal:    &AddressSet{Members: []bequest.Address{a}},
		Weighted: &ShareTable{Shares: []*Share{{Address: a, Percent: 100}}},
	}
	assert.IsErr(t, errors.ErrModel, invalid.Validate())
}

func TestWillValidate(t *testing.T) {
	owner := bequesttest.NewCondition().Address()
	valid := func() *Will {
		return &Will{
			Metadata:  &bequest.Metadata{Schema: 1},
			Ownership: &OwnershipGuard{Owner: owner},
			Timer:     &ExpiryTimer{Duration: 10, Deadline: 1010},
			Registry:  &Registry{},
			State:     StateActive,
			Address:   Condition(bequesttest.SequenceID(1)).Address(),
			CreatedAt: 1000,
		}
	}

	cases := map[string]struct {
		modify    func(*Will)
		wantField string
		wantErr   *errors.Error
	}{
		"valid": {
			modify:    func(*Will) {},
			wantField: "State",
		},
		"renounced will is valid": {
			modify:    func(w *Will) { w.Ownership.Owner = nil },
			wantField: "Ownership",
		},
		"missing metadata": {
			modify:    func(w *Will) { w.Metadata = nil },
			wantField: "Metadata",
			wantErr:   errors.ErrMetadata,
		},
		"missing timer": {
			modify:    func(w *Will) { w.Timer = nil },
			wantField: "Timer",
			wantErr:   errors.ErrModel,
		},
		"invalid address": {
			modify:    func(w *Will) { w.Address = nil },
			wantField: "Address",
			wantErr:   errors.ErrInput,
		},
		"unknown state": {
			modify:    func(w *Will) { w.State = 7 },
			wantField: "State",
			wantErr:   errors.ErrState,
		},
		"claimed without time": {
			modify:    func(w *Will) { w.State = StateClaimed },
			wantField: "ClaimedAt",
			wantErr:   errors.ErrEmpty,
		},
		"active with claim time": {
			modify:    func(w *Will) { w.ClaimedAt = 1200 },
			wantField: "ClaimedAt",
			wantErr:   errors.ErrState,
		},
		"memo too long": {
			modify:    func(w *Will) { w.Memo = string(make([]byte, maxMemoSize+1)) },
			wantField: "Memo",
			wantErr:   errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			w := valid()
			tc.modify(w)
			assert.FieldError(t, w.Validate(), tc.wantField, tc.wantErr)
		})
	}
}

func TestBucketOwnerIndex(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()
	alice := bequesttest.NewCondition().Address()
	bob := bequesttest.NewCondition().Address()

	mk := func(id uint64, owner bequest.Address) *Will {
		return &Will{
			Metadata:  &bequest.Metadata{Schema: 1},
			Ownership: &OwnershipGuard{Owner: owner},
			Timer:     &ExpiryTimer{Duration: 10, Deadline: 1010},
			Registry:  &Registry{},
			State:     StateActive,
			Address:   Condition(bequesttest.SequenceID(id)).Address(),
			CreatedAt: 1000,
		}
	}
	for i, owner := range []bequest.Address{alice, bob, alice, nil} {
		id := uint64(i + 1)
		_, err := b.Put(db, bequesttest.SequenceID(id), mk(id, owner))
		assert.Nil(t, err)
	}

	var wills []Will
	keys, err := b.ByIndex(db, "owner", alice, &wills)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{bequesttest.SequenceID(1), bequesttest.SequenceID(3)}, keys)
	assert.Equal(t, 2, len(wills))

	var all []*Will
	keys, err = b.All(db, &all)
	assert.Nil(t, err)
	assert.Equal(t, 4, len(keys))

	var loaded Will
	assert.Nil(t, b.One(db, bequesttest.SequenceID(2), &loaded))
	assert.Equal(t, mk(2, bob), &loaded)
}
