package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/coin"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds all coins owned by a single address. The address is the
// bucket key and is not part of the model.
type Wallet struct {
	Metadata *bequest.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Coins    []*coin.Coin      `protobuf:"bytes,2,rep,name=coins,proto3" json:"coins,omitempty"`
}

var _ orm.Model = (*Wallet)(nil)

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Validate requires that all coins are in alphabetical order, with no
// duplicates or zero values.
func (m *Wallet) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := coin.Coins(m.Coins).Validate(); err != nil {
		return errors.Wrap(err, "coins")
	}
	return nil
}

// NewWallet returns a wallet holding given coins. Coins are normalized so
// the result is always valid when no error is returned.
func NewWallet(coins ...*coin.Coin) (*Wallet, error) {
	cs, err := coin.NormalizeCoins(coins)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		Metadata: &bequest.Metadata{Schema: 1},
		Coins:    cs,
	}, nil
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}),
	}
}

// Get returns the wallet stored under given address or nil if it does not
// exist.
func (b Bucket) Get(db bequest.ReadOnlyKVStore, addr bequest.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// GetOrCreate returns the wallet stored under given address or a new empty
// one.
func (b Bucket) GetOrCreate(db bequest.ReadOnlyKVStore, addr bequest.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err != nil || w != nil {
		return w, err
	}
	return NewWallet()
}

// Save stores the wallet under given address. An empty wallet is removed.
func (b Bucket) Save(db bequest.KVStore, addr bequest.Address, w *Wallet) error {
	if len(w.Coins) == 0 {
		if err := b.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	_, err := b.Put(db, addr, w)
	return err
}
