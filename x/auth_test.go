package x

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
)

func TestAuth(t *testing.T) {
	a := custodytest.NewCondition()
	b := custodytest.NewCondition()
	c := custodytest.NewCondition()

	ctx1 := &custodytest.CtxAuth{Key: "foo"}
	ctx2 := &custodytest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          custody.Context
		auth         Authenticator
		mainSigner   custody.Condition
		wantInCtx    custody.Condition
		wantNotInCtx custody.Condition
		wantAll      []custody.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &custodytest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &custodytest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []custody.Condition{a},
		},
		"chained authenticators": {
			ctx:          ctx2.SetConditions(ctx1.SetConditions(context.Background(), a, b), c),
			auth:         ChainAuth(ctx1, ctx2),
			mainSigner:   a,
			wantInCtx:    c,
			wantNotInCtx: custodytest.NewCondition(),
			wantAll:      []custody.Condition{a, b, c},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))
			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
				t.Fatal("condition must be authenticated")
			}
			if tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("condition must not be authenticated")
			}
			for _, c := range tc.wantAll {
				if !tc.auth.HasAddress(tc.ctx, c.Address()) {
					t.Fatalf("%s must be authenticated", c.Address())
				}
			}
			assert.Equal(t, len(tc.wantAll), len(tc.auth.GetConditions(tc.ctx)))
		})
	}
}

func TestAnySigner(t *testing.T) {
	a := custodytest.NewCondition()
	explicit := custodytest.NewCondition().Address()
	ctx := context.Background()

	assert.Equal(t, explicit, AnySigner(ctx, &custodytest.Auth{Signer: a}, explicit))
	assert.Equal(t, a.Address(), AnySigner(ctx, &custodytest.Auth{Signer: a}, nil))
	assert.Nil(t, AnySigner(ctx, &custodytest.Auth{}, nil))
}
