package will

import (
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
)

const optKey = "will"

// GenesisWill describes a will that exists from the start. At most one of
// Beneficiaries and Shares can be set.
type GenesisWill struct {
	Owner         bequest.Address   `json:"owner"`
	Duration      int64             `json:"duration"`
	Deadline      bequest.UnixTime  `json:"deadline"`
	Beneficiaries []bequest.Address `json:"beneficiaries"`
	Shares        []*Share          `json:"shares"`
	Memo          string            `json:"memo"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ bequest.Initializer = (*Initializer)(nil)

// FromGenesis stores the predefined wills. Keys are assigned in the order
// of declaration. The funds must be provided separately, for example by the
// cash genesis using the will address.
func (*Initializer) FromGenesis(opts bequest.Options, db bequest.KVStore) error {
	var wills []GenesisWill
	if err := opts.ReadOptions(optKey, &wills); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewBucket()
	for i, g := range wills {
		w, key, err := g.build(db)
		if err != nil {
			return errors.Wrapf(err, "will %d", i)
		}
		if _, err := bucket.Put(db, key, w); err != nil {
			return errors.Wrapf(err, "will %d", i)
		}
	}
	return nil
}

func (g *GenesisWill) build(db bequest.KVStore) (*Will, []byte, error) {
	if len(g.Beneficiaries) != 0 && len(g.Shares) != 0 {
		return nil, nil, errors.Wrap(errors.ErrInput, "both beneficiaries and shares declared")
	}
	if err := g.Owner.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "owner")
	}
	if g.Duration <= 0 {
		return nil, nil, errors.Wrap(errors.ErrInput, "duration must be positive")
	}

	reg := &Registry{}
	if len(g.Shares) != 0 {
		if err := reg.SetShares(g.Shares); err != nil {
			return nil, nil, err
		}
	}
	if len(g.Beneficiaries) != 0 {
		if err := reg.ReplaceBeneficiaries(g.Beneficiaries...); err != nil {
			return nil, nil, err
		}
	}

	key, err := willSeq.NextVal(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot acquire key")
	}
	w := &Will{
		Metadata:  &bequest.Metadata{Schema: 1},
		Ownership: &OwnershipGuard{Owner: g.Owner},
		Timer:     &ExpiryTimer{Duration: g.Duration, Deadline: g.Deadline},
		Registry:  reg,
		State:     StateActive,
		Address:   Condition(key).Address(),
		CreatedAt: g.Deadline - bequest.UnixTime(g.Duration),
		Memo:      g.Memo,
	}
	return w, key, nil
}
