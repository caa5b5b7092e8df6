package cash

import (
	"testing"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/bequesttest/assert"
	"github.com/iov-one/bequest/coin"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/store"
)

func TestGenesis(t *testing.T) {
	const genesis = `
		{
			"cash": [
				{
					"address": "0102030405060708090021222324252627282930",
					"coins": ["50 IOV", {"ticker": "ETH", "amount": 7}, "10 IOV"]
				}
			]
		}
	`
	var opts bequest.Options
	assert.Nil(t, jsonUnmarshal(genesis, &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	addr := bequest.Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, 0x29, 0x30}
	got, err := NewController(NewBucket()).Balance(db, addr)
	assert.Nil(t, err)
	want := coin.Coins{coin.NewCoinp(7, "ETH"), coin.NewCoinp(60, "IOV")}
	assert.Equal(t, want, got)
}

func TestGenesisErrors(t *testing.T) {
	cases := map[string]struct {
		opts    bequest.Options
		wantErr *errors.Error
	}{
		"no data": {
			opts: bequest.Options{},
		},
		"other extension": {
			opts: bequest.Options{"foo": []byte(`"bar"`)},
		},
		"missing address": {
			opts:    bequest.Options{"cash": []byte(`[{"coins": ["1 IOV"]}]`)},
			wantErr: errors.ErrInput,
		},
		"malformed coins": {
			opts:    bequest.Options{"cash": []byte(`[{"coins": 123}]`)},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := Initializer{}.FromGenesis(tc.opts, store.MemStore())
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}
