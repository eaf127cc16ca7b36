package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/x"
)

const (
	initializeCost int64 = 200
	transferCost   int64 = 100
)

// RegisterRoutes registers handlers for vault message processing.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&InitializeVaultMsg{}, &initializeVaultHandler{auth: auth, ctrl: ctrl})
	r.Handle(&InitializeDepositMsg{}, &initializeDepositHandler{auth: auth, ctrl: ctrl})
	r.Handle(&DepositMsg{}, &depositHandler{auth: auth, ctrl: ctrl})
	r.Handle(&WithdrawMsg{}, &withdrawHandler{auth: auth, ctrl: ctrl})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth))
}

// RegisterQuery registers the vault and deposit buckets for querying.
func RegisterQuery(qr custody.QueryRouter) {
	NewVaultBucket().Register("vaults", qr)
	NewDepositBucket().Register("deposits", qr)
}

type initializeVaultHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = (*initializeVaultHandler)(nil)

func (h *initializeVaultHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: initializeCost}, nil
}

func (h *initializeVaultHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	authority, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.InitializeVault(db, authority); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Data: VaultAddress()}, nil
}

func (h *initializeVaultHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (custody.Address, error) {
	var msg InitializeVaultMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return signer(ctx, h.auth, msg.Authority)
}

type initializeDepositHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = (*initializeDepositHandler)(nil)

func (h *initializeDepositHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: initializeCost}, nil
}

func (h *initializeDepositHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.InitializeDeposit(db, owner); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Data: DepositAddress(owner)}, nil
}

func (h *initializeDepositHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (custody.Address, error) {
	var msg InitializeDepositMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return signer(ctx, h.auth, msg.Owner)
}

type depositHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = (*depositHandler)(nil)

func (h *depositHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: transferCost}, nil
}

func (h *depositHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	d, err := h.ctrl.DepositFunds(db, owner, msg.Amount)
	if err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Debug("deposit", "owner", owner, "amount", msg.Amount, "balance", d.Balance)
	return &custody.DeliverResult{}, nil
}

func (h *depositHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*DepositMsg, custody.Address, error) {
	var msg DepositMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := authorizeOwner(ctx, h.auth, h.ctrl, db, msg.Depositor)
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}

type withdrawHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = (*withdrawHandler)(nil)

func (h *withdrawHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: transferCost}, nil
}

func (h *withdrawHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	d, err := h.ctrl.WithdrawFunds(db, owner, msg.Amount)
	if err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Debug("withdraw", "owner", owner, "amount", msg.Amount, "balance", d.Balance)
	return &custody.DeliverResult{}, nil
}

func (h *withdrawHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*WithdrawMsg, custody.Address, error) {
	var msg WithdrawMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := authorizeOwner(ctx, h.auth, h.ctrl, db, msg.Depositor)
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}

// signer returns the address that must have signed the transaction, which is
// either the one given or the main signer.
func signer(ctx custody.Context, auth x.Authenticator, addr custody.Address) (custody.Address, error) {
	addr = x.AnySigner(ctx, auth, addr)
	if addr == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if !auth.HasAddress(ctx, addr) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", addr)
	}
	return addr, nil
}

// authorizeOwner loads the deposit record of the depositor and ensures that
// its owner signed the transaction.
func authorizeOwner(ctx custody.Context, auth x.Authenticator, ctrl Controller, db custody.KVStore, depositor custody.Address) (custody.Address, error) {
	depositor = x.AnySigner(ctx, auth, depositor)
	if depositor == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	d, err := ctrl.Deposit(db, depositor)
	if err != nil {
		return nil, err
	}
	if !auth.HasAddress(ctx, d.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "deposit owner did not sign")
	}
	return d.Owner, nil
}
