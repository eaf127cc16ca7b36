package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
)

// Audit summarizes the ledger state.
type Audit struct {
	Deposits     int
	DepositTotal uint64
	TotalBalance uint64
	Custody      uint64
}

// CheckInvariants ensures that the vault total is equal to the sum of all
// deposit balances and that the custody wallet holds at least the vault
// total. ErrState is returned if any of them does not hold. A store without
// a vault must not hold any deposit, and the only vault record is the one
// under the vault address.
func CheckInvariants(db custody.ReadOnlyKVStore, cashCtrl cash.Controller) (*Audit, error) {
	var (
		audit Audit
		d     Deposit
	)
	err := NewDepositBucket().ForEach(db, &d, func(key []byte) error {
		if !IsDepositAddress(d.Owner, key) {
			return errors.Wrapf(errors.ErrState, "deposit of %s stored under %X", d.Owner, key)
		}
		sum, err := x.AddUint64(audit.DepositTotal, d.Balance)
		if err != nil {
			return errors.Wrap(errors.ErrState, err.Error())
		}
		audit.DepositTotal = sum
		audit.Deposits++
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "deposits")
	}

	var v Vault
	err = NewVaultBucket().ForEach(db, &v, func(key []byte) error {
		if !IsVaultAddress(key) {
			return errors.Wrapf(errors.ErrState, "vault stored under %X", key)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "vaults")
	}
	switch err := NewVaultBucket().One(db, VaultAddress(), &v); {
	case err == nil:
		audit.TotalBalance = v.TotalBalance
	case errors.ErrNotFound.Is(err):
		if audit.Deposits > 0 {
			return &audit, errors.Wrapf(errors.ErrState, "%d deposits without a vault", audit.Deposits)
		}
	default:
		return nil, errors.Wrap(err, "vault")
	}

	if audit.Custody, err = cashCtrl.Balance(db, VaultAddress()); err != nil {
		return nil, errors.Wrap(err, "custody")
	}

	if audit.DepositTotal != audit.TotalBalance {
		return &audit, errors.Wrapf(errors.ErrState, "vault total %d, deposits total %d", audit.TotalBalance, audit.DepositTotal)
	}
	if audit.Custody < audit.TotalBalance {
		return &audit, errors.Wrapf(errors.ErrState, "custody %d, vault total %d", audit.Custody, audit.TotalBalance)
	}
	return &audit, nil
}
