package x

import (
	"context"
	"testing"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/bequesttest"
	"github.com/iov-one/bequest/bequesttest/assert"
)

func TestAuthenticators(t *testing.T) {
	a := bequesttest.NewCondition()
	b := bequesttest.NewCondition()
	c := bequesttest.NewCondition()

	owner := &bequesttest.CtxAuth{Key: "owner"}
	other := &bequesttest.CtxAuth{Key: "other"}

	cases := map[string]struct {
		ctx        bequest.Context
		auth       Authenticator
		wantSigner bequest.Condition
		wantConds  []bequest.Condition
		notIn      bequest.Condition
	}{
		"unsigned call": {
			ctx:   context.Background(),
			auth:  &bequesttest.Auth{},
			notIn: a,
		},
		"single signer": {
			ctx:        context.Background(),
			auth:       &bequesttest.Auth{Signer: a},
			wantSigner: a,
			wantConds:  []bequest.Condition{a},
			notIn:      b,
		},
		"chain keeps the order": {
			ctx:        context.Background(),
			auth:       ChainAuth(&bequesttest.Auth{Signer: b}, &bequesttest.Auth{Signer: a}),
			wantSigner: b,
			wantConds:  []bequest.Condition{b, a},
			notIn:      c,
		},
		"context conditions": {
			ctx:        owner.SetConditions(context.Background(), a, b),
			auth:       owner,
			wantSigner: a,
			wantConds:  []bequest.Condition{a, b},
			notIn:      c,
		},
		"context conditions of another key": {
			ctx:   owner.SetConditions(context.Background(), a, b),
			auth:  other,
			notIn: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantSigner, MainSigner(tc.ctx, tc.auth))
			assert.Equal(t, tc.wantConds, tc.auth.GetConditions(tc.ctx))
			for _, cond := range tc.wantConds {
				if !tc.auth.HasAddress(tc.ctx, cond.Address()) {
					t.Fatalf("%s not authorized", cond)
				}
			}
			if tc.auth.HasAddress(tc.ctx, tc.notIn.Address()) {
				t.Fatalf("%s must not be authorized", tc.notIn)
			}
		})
	}
}

func TestCaller(t *testing.T) {
	a := bequesttest.NewCondition()
	b := bequesttest.NewCondition()
	c := bequesttest.NewCondition()

	auth := &bequesttest.CtxAuth{Key: "caller"}
	ctx := auth.SetConditions(context.Background(), a, b)

	assert.Equal(t, b.Address(), Caller(ctx, auth, c.Address(), b.Address()))
	assert.Equal(t, a.Address(), Caller(ctx, auth, c.Address()))
	assert.Equal(t, a.Address(), Caller(ctx, auth, nil))
	assert.Nil(t, Caller(context.Background(), auth, a.Address()))
}
