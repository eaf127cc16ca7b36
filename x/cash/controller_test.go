package cash

import (
	"math"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

func TestMoveCoins(t *testing.T) {
	alice := custodytest.NewCondition().Address()
	bob := custodytest.NewCondition().Address()

	cases := map[string]struct {
		issue     map[string]uint64
		src, dest custody.Address
		amount    uint64
		wantErr   *errors.Error
		wantSrc   uint64
		wantDest  uint64
	}{
		"move part of the funds": {
			issue:    map[string]uint64{string(alice): 100},
			src:      alice,
			dest:     bob,
			amount:   40,
			wantSrc:  60,
			wantDest: 40,
		},
		"move all funds": {
			issue:    map[string]uint64{string(alice): 100, string(bob): 1},
			src:      alice,
			dest:     bob,
			amount:   100,
			wantSrc:  0,
			wantDest: 101,
		},
		"insufficient funds": {
			issue:    map[string]uint64{string(alice): 10},
			src:      alice,
			dest:     bob,
			amount:   11,
			wantErr:  errors.ErrAmount,
			wantSrc:  10,
			wantDest: 0,
		},
		"empty source": {
			src:     alice,
			dest:    bob,
			amount:  1,
			wantErr: errors.ErrAmount,
		},
		"zero amount": {
			issue:   map[string]uint64{string(alice): 10},
			src:     alice,
			dest:    bob,
			amount:  0,
			wantErr: errors.ErrAmount,
			wantSrc: 10,
		},
		"recipient overflow": {
			issue:    map[string]uint64{string(alice): 10, string(bob): math.MaxUint64},
			src:      alice,
			dest:     bob,
			amount:   1,
			wantErr:  errors.ErrOverflow,
			wantSrc:  10,
			wantDest: math.MaxUint64,
		},
		"move to itself": {
			issue:    map[string]uint64{string(alice): 10},
			src:      alice,
			dest:     alice,
			amount:   5,
			wantSrc:  10,
			wantDest: 10,
		},
		"invalid destination": {
			issue:   map[string]uint64{string(alice): 10},
			src:     alice,
			dest:    custody.Address("short"),
			amount:  5,
			wantErr: errors.ErrInput,
			wantSrc: 10,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewWalletBucket())
			for addr, amount := range tc.issue {
				if err := ctrl.IssueCoins(db, custody.Address(addr), amount); err != nil {
					t.Fatalf("cannot issue: %s", err)
				}
			}

			if err := ctrl.MoveCoins(db, tc.src, tc.dest, tc.amount); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			got, err := ctrl.Balance(db, tc.src)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSrc, got)
			if tc.dest.Validate() == nil {
				got, err := ctrl.Balance(db, tc.dest)
				assert.Nil(t, err)
				assert.Equal(t, tc.wantDest, got)
			}
		})
	}
}

func TestIssueCoins(t *testing.T) {
	addr := custodytest.NewCondition().Address()
	db := store.MemStore()
	ctrl := NewController(NewWalletBucket())

	got, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), got)

	assert.Nil(t, ctrl.IssueCoins(db, addr, math.MaxUint64-1))
	assert.Nil(t, ctrl.IssueCoins(db, addr, 1))
	if err := ctrl.IssueCoins(db, addr, 1); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want overflow, got %+v", err)
	}

	got, err = ctrl.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got)

	if err := ctrl.IssueCoins(db, nil, 1); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}
