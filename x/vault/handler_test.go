package vault

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/cash"
)

type action struct {
	signers        []custody.Condition
	msg            custody.Msg
	wantCheckErr   *errors.Error
	wantDeliverErr *errors.Error
}

type handlerFixture struct {
	db   custody.CacheableKVStore
	auth *custodytest.CtxAuth
	rt   *app.Router
	cash cash.BaseController
	ctrl Controller
}

func newHandlerFixture(t testing.TB) *handlerFixture {
	t.Helper()
	cashCtrl := cash.NewController(cash.NewWalletBucket())
	ctrl := NewController(cashCtrl, NewRentAllocator(cashCtrl))
	auth := &custodytest.CtxAuth{Key: "auth"}
	rt := app.NewRouter()
	RegisterRoutes(rt, auth, ctrl)
	return &handlerFixture{
		db:   store.MemStore(),
		auth: auth,
		rt:   rt,
		cash: cashCtrl,
		ctrl: ctrl,
	}
}

// run checks the action in a discarded cache and delivers it to the store.
func (f *handlerFixture) run(t testing.TB, a action) *custody.DeliverResult {
	t.Helper()
	ctx := f.auth.SetConditions(context.Background(), a.signers...)
	tx := &custodytest.Tx{Msg: a.msg}

	cache := f.db.CacheWrap()
	if _, err := f.rt.Check(ctx, cache, tx); !a.wantCheckErr.Is(err) {
		t.Fatalf("%T: unexpected check error: %+v", a.msg, err)
	}
	cache.Discard()

	res, err := f.rt.Deliver(ctx, f.db, tx)
	if !a.wantDeliverErr.Is(err) {
		t.Fatalf("%T: unexpected deliver error: %+v", a.msg, err)
	}
	return res
}

func (f *handlerFixture) queryVault(t testing.TB) *Vault {
	t.Helper()
	qr := custody.NewQueryRouter()
	RegisterQuery(qr)
	models, err := qr.Handler("/vaults").Query(f.db, "", VaultAddress())
	assert.Nil(t, err)
	if len(models) != 1 {
		t.Fatalf("want one vault, got %d", len(models))
	}
	var v Vault
	assert.Nil(t, v.Unmarshal(models[0].Value))
	return &v
}

func (f *handlerFixture) queryDeposit(t testing.TB, owner custody.Address) *Deposit {
	t.Helper()
	qr := custody.NewQueryRouter()
	RegisterQuery(qr)
	models, err := qr.Handler("/deposits").Query(f.db, "", DepositAddress(owner))
	assert.Nil(t, err)
	if len(models) != 1 {
		t.Fatalf("want one deposit, got %d", len(models))
	}
	var d Deposit
	assert.Nil(t, d.Unmarshal(models[0].Value))
	return &d
}

func TestVaultScenario(t *testing.T) {
	authority := custodytest.NewCondition()
	user := custodytest.NewCondition()
	meta := &custody.Metadata{Schema: 1}

	f := newHandlerFixture(t)
	assert.Nil(t, f.cash.IssueCoins(f.db, user.Address(), 1000))

	res := f.run(t, action{
		signers: []custody.Condition{authority},
		msg:     &InitializeVaultMsg{Metadata: meta},
	})
	assert.Equal(t, []byte(VaultAddress()), res.Data)

	res = f.run(t, action{
		signers: []custody.Condition{user},
		msg:     &InitializeDepositMsg{Metadata: meta},
	})
	assert.Equal(t, []byte(DepositAddress(user.Address())), res.Data)

	f.run(t, action{
		signers: []custody.Condition{user},
		msg:     &DepositMsg{Metadata: meta, Amount: 100},
	})
	assert.Equal(t, uint64(100), f.queryVault(t).TotalBalance)
	assert.Equal(t, uint64(100), f.queryDeposit(t, user.Address()).Balance)

	f.run(t, action{
		signers: []custody.Condition{user},
		msg:     &WithdrawMsg{Metadata: meta, Depositor: user.Address(), Amount: 40},
	})
	assert.Equal(t, uint64(60), f.queryVault(t).TotalBalance)
	assert.Equal(t, uint64(60), f.queryDeposit(t, user.Address()).Balance)

	// Funds check happens only when the ledger is modified.
	f.run(t, action{
		signers:        []custody.Condition{user},
		msg:            &WithdrawMsg{Metadata: meta, Amount: 100},
		wantDeliverErr: ErrInsufficientFunds,
	})
	assert.Equal(t, uint64(60), f.queryVault(t).TotalBalance)
	assert.Equal(t, uint64(60), f.queryDeposit(t, user.Address()).Balance)

	wallet, err := f.cash.Balance(f.db, user.Address())
	assert.Nil(t, err)
	assert.Equal(t, uint64(940), wallet)

	// Zero amounts are accepted and change nothing.
	f.run(t, action{
		signers: []custody.Condition{user},
		msg:     &DepositMsg{Metadata: meta, Amount: 0},
	})
	f.run(t, action{
		signers: []custody.Condition{user},
		msg:     &WithdrawMsg{Metadata: meta, Amount: 0},
	})
	assert.Equal(t, uint64(60), f.queryVault(t).TotalBalance)
	assert.Equal(t, uint64(60), f.queryDeposit(t, user.Address()).Balance)
	wallet, err = f.cash.Balance(f.db, user.Address())
	assert.Nil(t, err)
	assert.Equal(t, uint64(940), wallet)

	audit, err := CheckInvariants(f.db, f.cash)
	assert.Nil(t, err)
	assert.Equal(t, uint64(60), audit.Custody)
}

func TestHandlerAuthorization(t *testing.T) {
	authority := custodytest.NewCondition()
	user := custodytest.NewCondition()
	mallory := custodytest.NewCondition()
	meta := &custody.Metadata{Schema: 1}

	cases := map[string]action{
		"deposit on behalf of another owner": {
			signers:        []custody.Condition{mallory},
			msg:            &DepositMsg{Metadata: meta, Depositor: user.Address(), Amount: 10},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"withdraw on behalf of another owner": {
			signers:        []custody.Condition{mallory},
			msg:            &WithdrawMsg{Metadata: meta, Depositor: user.Address(), Amount: 10},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"withdraw without a deposit record": {
			signers:        []custody.Condition{mallory},
			msg:            &WithdrawMsg{Metadata: meta, Amount: 10},
			wantCheckErr:   errors.ErrNotFound,
			wantDeliverErr: errors.ErrNotFound,
		},
		"withdraw without a signature": {
			msg:            &WithdrawMsg{Metadata: meta, Amount: 10},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"initialize deposit for another owner": {
			signers:        []custody.Condition{mallory},
			msg:            &InitializeDepositMsg{Metadata: meta, Owner: custodytest.NewCondition().Address()},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"initialize vault twice": {
			signers:        []custody.Condition{mallory},
			msg:            &InitializeVaultMsg{Metadata: meta},
			wantDeliverErr: errors.ErrDuplicate,
		},
		"missing metadata": {
			signers:        []custody.Condition{user},
			msg:            &DepositMsg{Amount: 1},
			wantCheckErr:   errors.ErrMetadata,
			wantDeliverErr: errors.ErrMetadata,
		},
		"owner signs among others": {
			signers: []custody.Condition{mallory, user},
			msg:     &DepositMsg{Metadata: meta, Depositor: user.Address(), Amount: 10},
		},
	}

	for testName, a := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newHandlerFixture(t)
			assert.Nil(t, f.cash.IssueCoins(f.db, user.Address(), 100))
			f.run(t, action{
				signers: []custody.Condition{authority},
				msg:     &InitializeVaultMsg{Metadata: meta},
			})
			f.run(t, action{
				signers: []custody.Condition{user},
				msg:     &InitializeDepositMsg{Metadata: meta, Owner: user.Address()},
			})
			f.run(t, action{
				signers: []custody.Condition{user},
				msg:     &DepositMsg{Metadata: meta, Amount: 50},
			})

			f.run(t, a)

			want := uint64(50)
			if a.wantDeliverErr == nil {
				want = 60
			}
			assert.Equal(t, want, f.queryVault(t).TotalBalance)
			assert.Equal(t, want, f.queryDeposit(t, user.Address()).Balance)
			assert.Equal(t, authority.Address(), f.queryVault(t).Authority)
		})
	}
}

func TestUpdateConfiguration(t *testing.T) {
	owner := custodytest.NewCondition()
	collector := custodytest.NewCondition().Address()
	meta := &custody.Metadata{Schema: 1}

	f := newHandlerFixture(t)
	assert.Nil(t, gconf.Save(f.db, packageName, &Configuration{Owner: owner.Address()}))

	f.run(t, action{
		signers:        []custody.Condition{custodytest.NewCondition()},
		msg:            &UpdateConfigurationMsg{Metadata: meta, Patch: &Configuration{RentPerByte: 1, Collector: collector}},
		wantCheckErr:   errors.ErrUnauthorized,
		wantDeliverErr: errors.ErrUnauthorized,
	})
	f.run(t, action{
		signers: []custody.Condition{owner},
		msg:     &UpdateConfigurationMsg{Metadata: meta, Patch: &Configuration{RentPerByte: 1, Collector: collector}},
	})

	conf, err := loadConf(f.db)
	assert.Nil(t, err)
	assert.Equal(t, &Configuration{Owner: owner.Address(), RentPerByte: 1, Collector: collector}, conf)

	// Allocation is now charged.
	f.run(t, action{
		signers:        []custody.Condition{owner},
		msg:            &InitializeVaultMsg{Metadata: meta},
		wantDeliverErr: ErrTransfer,
	})
	assert.Nil(t, f.cash.IssueCoins(f.db, owner.Address(), RecordSize))
	f.run(t, action{
		signers: []custody.Condition{owner},
		msg:     &InitializeVaultMsg{Metadata: meta},
	})
	got, err := f.cash.Balance(f.db, collector)
	assert.Nil(t, err)
	assert.Equal(t, uint64(RecordSize), got)

	// Rent alone can be patched once a collector is stored.
	f.run(t, action{
		signers: []custody.Condition{owner},
		msg:     &UpdateConfigurationMsg{Metadata: meta, Patch: &Configuration{RentPerByte: 3}},
	})
	conf, err = loadConf(f.db)
	assert.Nil(t, err)
	assert.Equal(t, &Configuration{Owner: owner.Address(), RentPerByte: 3, Collector: collector}, conf)

	// Rent is reset by clearing the field.
	f.run(t, action{
		signers: []custody.Condition{owner},
		msg:     &UpdateConfigurationMsg{Metadata: meta, Patch: &Configuration{}, Clear: []string{"RentPerByte"}},
	})
	conf, err = loadConf(f.db)
	assert.Nil(t, err)
	assert.Equal(t, &Configuration{Owner: owner.Address(), Collector: collector}, conf)

	// Rent without a collector is refused on the merged configuration.
	f.run(t, action{
		signers:        []custody.Condition{owner},
		msg:            &UpdateConfigurationMsg{Metadata: meta, Patch: &Configuration{RentPerByte: 1}, Clear: []string{"Collector"}},
		wantCheckErr:   errors.ErrInput,
		wantDeliverErr: errors.ErrInput,
	})
	conf, err = loadConf(f.db)
	assert.Nil(t, err)
	assert.Equal(t, &Configuration{Owner: owner.Address(), Collector: collector}, conf)
}
