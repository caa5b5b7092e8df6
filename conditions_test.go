package bequest_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	addr := bequest.NewCondition("will", "seq", []byte{0, 0, 0, 1}).Address()
	assert.True(t, strings.HasPrefix(addr.String(), bequest.AddressPrefix+"1"))
	assert.NotEqual(t, fmt.Sprintf("%X", []byte(addr)), addr.String())

	var empty bequest.Address
	assert.Equal(t, "(nil)", empty.String())

	cond := bequest.NewCondition("12", "32", []byte("ABCD123456LHB"))
	assert.NotEqual(t, fmt.Sprintf("%X", []byte(cond)), cond.String())
}

func TestAddressParse(t *testing.T) {
	addr := bequest.NewCondition("sigs", "ed25519", []byte("public key")).Address()

	cases := map[string]struct {
		enc      string
		wantErr  *errors.Error
		wantAddr bequest.Address
	}{
		"default hex": {
			enc:      fmt.Sprintf("%X", []byte(addr)),
			wantAddr: addr,
		},
		"prefixed hex": {
			enc:      fmt.Sprintf("hex:%x", []byte(addr)),
			wantAddr: addr,
		},
		"bare bech32": {
			enc:      addr.String(),
			wantAddr: addr,
		},
		"prefixed bech32": {
			enc:      "bech32:" + addr.String(),
			wantAddr: addr,
		},
		"condition": {
			enc:      "cond:sigs/ed25519/7075626c6963206b6579",
			wantAddr: addr,
		},
		"wrong length": {
			enc:     "hex:0102",
			wantErr: errors.ErrInput,
		},
		"not hex": {
			enc:     "zzzz",
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			enc:     "foobar:xxx",
			wantErr: errors.ErrType,
		},
		"empty": {
			enc:     "",
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := bequest.ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if !tc.wantAddr.Equals(got) {
				t.Fatalf("want %q address, got %q", tc.wantAddr, got)
			}
		})
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr bequest.Address
	}{
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: bequest.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a bequest.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if !a.Equals(tc.wantAddr) {
				t.Fatalf("expected %q address, got %q", tc.wantAddr, a)
			}
		})
	}
}

func TestAddressJSONRoundtrip(t *testing.T) {
	addr := bequest.NewAddress([]byte("anything"))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got bequest.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}

func TestConditionValidate(t *testing.T) {
	assert.NoError(t, bequest.NewCondition("will", "seq", []byte{1}).Validate())
	assert.Error(t, bequest.Condition("no slashes here").Validate())

	ext, typ, data, err := bequest.NewCondition("will", "seq", []byte("id")).Parse()
	require.NoError(t, err)
	assert.Equal(t, "will", ext)
	assert.Equal(t, "seq", typ)
	assert.Equal(t, []byte("id"), data)
}

func TestAddressValidate(t *testing.T) {
	assert.NoError(t, bequest.NewAddress([]byte("x")).Validate())
	assert.True(t, errors.ErrInput.Is(bequest.Address(nil).Validate()))
	assert.True(t, errors.ErrInput.Is(bequest.Address([]byte{1, 2}).Validate()))
}
