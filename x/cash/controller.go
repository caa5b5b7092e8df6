package cash

import (
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/coin"
	"github.com/iov-one/bequest/errors"
)

// Controller is the functionality needed by extensions that hold or move
// value, like the will extension.
type Controller interface {
	Balance(bequest.ReadOnlyKVStore, bequest.Address) (coin.Coins, error)
	MoveCoins(bequest.KVStore, bequest.Address, bequest.Address, coin.Coin) error
	IssueCoins(bequest.KVStore, bequest.Address, coin.Coin) error
}

// BaseController is a simple implementation of Controller
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by given address. An unknown address
// holds nothing.
func (c BaseController) Balance(db bequest.ReadOnlyKVStore, addr bequest.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get wallet")
	}
	if w == nil {
		return nil, nil
	}
	return coin.Coins(w.Coins).Clone(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db bequest.KVStore, src, dest bequest.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot get sender wallet")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if !coin.Coins(sender.Coins).Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds less than %s", src, amount)
	}

	if sender.Coins, err = coin.Coins(sender.Coins).Subtract(amount); err != nil {
		return errors.Wrap(err, "subtract")
	}
	if err := c.bucket.Save(db, src, sender); err != nil {
		return errors.Wrap(err, "cannot save sender wallet")
	}

	// Load the recipient only after the sender was saved so that a move to
	// self is a no-op.
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get recipient wallet")
	}
	if recipient.Coins, err = coin.Coins(recipient.Coins).Add(amount); err != nil {
		return errors.Wrap(err, "add")
	}
	if err := c.bucket.Save(db, dest, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient wallet")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative, but the resulting balance may not.
func (c BaseController) IssueCoins(db bequest.KVStore, dest bequest.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	w, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get wallet")
	}
	cs, err := coin.Coins(w.Coins).Add(amount)
	if err != nil {
		return err
	}
	if !cs.IsNonNegative() {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds less than %s", dest, amount.Negative())
	}
	w.Coins = cs
	return c.bucket.Save(db, dest, w)
}
