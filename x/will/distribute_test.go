package will

import (
	"testing"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/bequesttest"
	"github.com/iov-one/bequest/bequesttest/assert"
	"github.com/iov-one/bequest/coin"
	"github.com/iov-one/bequest/errors"
)

func TestPayouts(t *testing.T) {
	a := bequesttest.NewCondition().Address()
	b := bequesttest.NewCondition().Address()
	c := bequesttest.NewCondition().Address()

	equal := func(addrs ...bequest.Address) *Registry {
		return &Registry{Equal: &AddressSet{Members: addrs}}
	}
	weighted := func(shares ...*Share) *Registry {
		return &Registry{Weighted: &ShareTable{Shares: shares}}
	}

	cases := map[string]struct {
		balance  coin.Coins
		registry *Registry
		want     []Payout
		wantErr  *errors.Error
	}{
		"weighted 30/70 of 1000": {
			balance:  coin.Coins{coin.NewCoinp(1000, "IOV")},
			registry: weighted(&Share{Address: a, Percent: 30}, &Share{Address: b, Percent: 70}),
			want: []Payout{
				{Recipient: a, Amount: coin.NewCoin(300, "IOV")},
				{Recipient: b, Amount: coin.NewCoin(700, "IOV")},
			},
		},
		"weighted rounds down": {
			balance:  coin.Coins{coin.NewCoinp(101, "IOV")},
			registry: weighted(&Share{Address: a, Percent: 33}, &Share{Address: b, Percent: 33}, &Share{Address: c, Percent: 34}),
			want: []Payout{
				{Recipient: a, Amount: coin.NewCoin(33, "IOV")},
				{Recipient: b, Amount: coin.NewCoin(33, "IOV")},
				{Recipient: c, Amount: coin.NewCoin(34, "IOV")},
			},
		},
		"equal split of 5000 between 3": {
			balance:  coin.Coins{coin.NewCoinp(5000, "IOV")},
			registry: equal(a, b, c),
			want: []Payout{
				{Recipient: a, Amount: coin.NewCoin(1666, "IOV")},
				{Recipient: b, Amount: coin.NewCoin(1666, "IOV")},
				{Recipient: c, Amount: coin.NewCoin(1666, "IOV")},
			},
		},
		"shares too small are skipped": {
			balance:  coin.Coins{coin.NewCoinp(2, "IOV")},
			registry: equal(a, b, c),
		},
		"many currencies": {
			balance:  coin.Coins{coin.NewCoinp(3, "ETH"), coin.NewCoinp(10, "IOV")},
			registry: equal(a, b),
			want: []Payout{
				{Recipient: a, Amount: coin.NewCoin(1, "ETH")},
				{Recipient: a, Amount: coin.NewCoin(5, "IOV")},
				{Recipient: b, Amount: coin.NewCoin(1, "ETH")},
				{Recipient: b, Amount: coin.NewCoin(5, "IOV")},
			},
		},
		"negative holdings are not distributed": {
			balance:  coin.Coins{coin.NewCoinp(-10, "ETH"), coin.NewCoinp(10, "IOV")},
			registry: equal(a),
			want:     []Payout{{Recipient: a, Amount: coin.NewCoin(10, "IOV")}},
		},
		"empty balance": {
			registry: equal(a),
		},
		"no beneficiaries": {
			balance:  coin.Coins{coin.NewCoinp(10, "IOV")},
			registry: &Registry{},
			wantErr:  ErrEmptyRegistry,
		},
		"empty equal set": {
			balance:  coin.Coins{coin.NewCoinp(10, "IOV")},
			registry: equal(),
			wantErr:  ErrEmptyRegistry,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := Payouts(tc.balance, tc.registry)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.want, got)

			var sum int64
			for _, p := range got {
				if p.Amount.Ticker == "IOV" {
					sum += p.Amount.Amount
				}
			}
			if total := tc.balance.Get("IOV").Amount; sum > total {
				t.Fatalf("paid %d out of %d", sum, total)
			}
		})
	}
}
