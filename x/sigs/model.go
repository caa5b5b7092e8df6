package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue keeps the nonce representable by javascript clients.
const maxSequenceValue = (1 << 53) - 1

// UserData holds the sequence of a public key used for signing.
type UserData struct {
	Metadata *bequest.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Pubkey   []byte            `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

var _ orm.Model = (*UserData)(nil)

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

func (u *UserData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	if len(u.Pubkey) == 0 {
		errs = errors.AppendField(errs, "Pubkey", errors.ErrEmpty)
	}
	if u.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

// CheckAndIncrementSequence increments the sequence if it is equal to the
// expected value. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Bucket stores the user data keyed by the signer address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for signer sequences.
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName, &UserData{})}
}

// GetOrCreate returns the user data for the address. For an unknown
// address a new record starting at sequence zero is returned.
func (b Bucket) GetOrCreate(db bequest.ReadOnlyKVStore, addr bequest.Address, pubkey []byte) (*UserData, error) {
	var u UserData
	switch err := b.One(db, addr, &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Metadata: &bequest.Metadata{Schema: 1}, Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}

// NextNonce returns the sequence that must sign the next transaction of
// given signer.
func NextNonce(db bequest.ReadOnlyKVStore, signer bequest.Address) (int64, error) {
	var u UserData
	switch err := NewBucket().One(db, signer, &u); {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		// Counting starts with zero.
		return 0, nil
	default:
		return 0, errors.Wrap(err, "bucket get")
	}
}
