package will

import (
	"testing"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/bequesttest"
	"github.com/iov-one/bequest/bequesttest/assert"
	"github.com/iov-one/bequest/errors"
)

func TestOwnershipGuard(t *testing.T) {
	alice := bequesttest.NewCondition().Address()
	bob := bequesttest.NewCondition().Address()

	g := &OwnershipGuard{Owner: alice}
	assert.Nil(t, g.Authorize(alice))
	assert.IsErr(t, errors.ErrUnauthorized, g.Authorize(bob))
	assert.IsErr(t, errors.ErrUnauthorized, g.Authorize(nil))

	_, err := g.TransferOwnership(bob, bob)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = g.TransferOwnership(alice, nil)
	assert.IsErr(t, errors.ErrInput, err)
	_, err = g.TransferOwnership(alice, bequest.Address{1, 2})
	assert.IsErr(t, errors.ErrInput, err)
	assert.Equal(t, alice, g.GetOwner())

	changed, err := g.TransferOwnership(alice, bob)
	assert.Nil(t, err)
	assert.Equal(t, &OwnershipChanged{Previous: alice, Next: bob}, changed)
	assert.Equal(t, bob, g.GetOwner())
	assert.IsErr(t, errors.ErrUnauthorized, g.Authorize(alice))

	_, err = g.RenounceOwnership(alice)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	changed, err = g.RenounceOwnership(bob)
	assert.Nil(t, err)
	assert.Equal(t, &OwnershipChanged{Previous: bob}, changed)
	assert.Equal(t, true, g.IsRenounced())
	assert.Nil(t, g.Validate())

	// Nobody can act after the ownership was renounced.
	assert.IsErr(t, errors.ErrUnauthorized, g.Authorize(bob))
	assert.IsErr(t, errors.ErrUnauthorized, g.Authorize(nil))
	_, err = g.TransferOwnership(bob, alice)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = g.RenounceOwnership(bob)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}
