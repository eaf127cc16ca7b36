package custodytest

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

func TestDecorate(t *testing.T) {
	cases := map[string]struct {
		dec            *Decorator
		handler        *Handler
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantHandler    int
	}{
		"decorator failure stops the call": {
			dec:            &Decorator{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrNotFound},
			handler:        &Handler{},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrNotFound,
			wantHandler:    0,
		},
		"handler is called": {
			dec:            &Decorator{},
			handler:        &Handler{DeliverErr: errors.ErrAmount},
			wantDeliverErr: errors.ErrAmount,
			wantHandler:    2,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := Decorate(tc.handler, tc.dec)
			ctx := context.Background()
			if _, err := h.Check(ctx, nil, &Tx{}); !tc.wantCheckErr.Is(err) {
				t.Fatalf("check: %+v", err)
			}
			if _, err := h.Deliver(ctx, nil, &Tx{}); !tc.wantDeliverErr.Is(err) {
				t.Fatalf("deliver: %+v", err)
			}
			if n := tc.dec.CallCount(); n != 2 {
				t.Fatalf("want 2 decorator calls, got %d", n)
			}
			if n := tc.handler.CallCount(); n != tc.wantHandler {
				t.Fatalf("want %d handler calls, got %d", tc.wantHandler, n)
			}
		})
	}
}

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()
	ctxAuth := &CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetConditions(context.Background(), a, b)

	cases := map[string]struct {
		auth interface {
			GetConditions(custody.Context) []custody.Condition
			HasAddress(custody.Context, custody.Address) bool
		}
		want []custody.Condition
	}{
		"no signers":         {auth: &Auth{}, want: nil},
		"signers and signer": {auth: &Auth{Signers: []custody.Condition{a}, Signer: b}, want: []custody.Condition{a, b}},
		"context":            {auth: ctxAuth, want: []custody.Condition{a, b}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := tc.auth.GetConditions(ctx)
			if len(got) != len(tc.want) {
				t.Fatalf("want %d conditions, got %d", len(tc.want), len(got))
			}
			for i := range got {
				if !got[i].Equals(tc.want[i]) {
					t.Fatalf("condition %d: want %s, got %s", i, tc.want[i], got[i])
				}
				if !tc.auth.HasAddress(ctx, got[i].Address()) {
					t.Fatalf("address of %s not authenticated", got[i])
				}
			}
			if tc.auth.HasAddress(ctx, c.Address()) {
				t.Fatal("unrelated condition authenticated")
			}
		})
	}
}
