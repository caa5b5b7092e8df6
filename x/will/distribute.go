package will

import (
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/coin"
	"github.com/iov-one/bequest/errors"
)

// CoinMover moves value between accounts. It is implemented by x/cash and
// any call may fail.
type CoinMover interface {
	Balance(bequest.ReadOnlyKVStore, bequest.Address) (coin.Coins, error)
	MoveCoins(bequest.KVStore, bequest.Address, bequest.Address, coin.Coin) error
}

// Payout is a single transfer issued by the distribution.
type Payout struct {
	Recipient bequest.Address
	Amount    coin.Coin
}

// Payouts computes the transfers that distribute given balance between the
// beneficiaries of the registry. Transfers are ordered by the registry order
// and, for each beneficiary, by the ticker. Shares that round down to zero
// are not included. Whatever cannot be split remains unpaid.
func Payouts(balance coin.Coins, r *Registry) ([]Payout, error) {
	if r.IsEmpty() {
		return nil, errors.Wrap(ErrEmptyRegistry, "cannot distribute")
	}

	var positive []coin.Coin
	for _, c := range balance {
		// Only value held can be distributed. A negative balance
		// would charge the beneficiaries.
		if c != nil && c.IsPositive() {
			positive = append(positive, *c)
		}
	}

	var payouts []Payout
	if r.IsWeighted() {
		for _, s := range r.Weighted.Shares {
			for _, c := range positive {
				amount, err := c.PercentOf(int64(s.Percent))
				if err != nil {
					return nil, errors.Wrapf(err, "share of %s", s.Address)
				}
				payouts = appendPayout(payouts, s.Address, amount)
			}
		}
		return payouts, nil
	}

	n := int64(r.Equal.Count())
	for _, m := range r.Equal.Members {
		for _, c := range positive {
			one, _, err := c.Divide(n)
			if err != nil {
				return nil, errors.Wrap(err, "cannot split balance")
			}
			payouts = appendPayout(payouts, m, one)
		}
	}
	return payouts, nil
}

func appendPayout(payouts []Payout, recipient bequest.Address, amount coin.Coin) []Payout {
	// Chunk is too small to be distributed.
	if amount.IsZero() {
		return payouts
	}
	return append(payouts, Payout{Recipient: recipient, Amount: amount})
}

// Pay issues all transfers from the source account. The first failing
// transfer aborts the payment with ErrTransferFailed. Any transfer already
// made is not reverted here, so the caller must run this inside of an atomic
// call.
func Pay(db bequest.KVStore, mover CoinMover, src bequest.Address, payouts []Payout) error {
	for _, p := range payouts {
		if err := mover.MoveCoins(db, src, p.Recipient, p.Amount); err != nil {
			return errors.Wrapf(ErrTransferFailed, "%s to %s: %s", p.Amount, p.Recipient, err)
		}
	}
	return nil
}
