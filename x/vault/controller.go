package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
)

// Controller implements the ledger operations. Authentication is not part
// of the controller: callers must ensure that the given identities signed
// the transaction.
type Controller struct {
	vaults   orm.ModelBucket
	deposits orm.ModelBucket
	cash     cash.Controller
	alloc    Allocator
}

// NewController returns a controller moving custody funds with given cash
// controller. Records are allocated with alloc.
func NewController(cashCtrl cash.Controller, alloc Allocator) Controller {
	return Controller{
		vaults:   NewVaultBucket(),
		deposits: NewDepositBucket(),
		cash:     cashCtrl,
		alloc:    alloc,
	}
}

// Vault returns the vault record. ErrNotFound is returned if the vault was
// not initialized.
func (c Controller) Vault(db custody.ReadOnlyKVStore) (*Vault, error) {
	var v Vault
	if err := c.vaults.One(db, VaultAddress(), &v); err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	return &v, nil
}

// Deposit returns the deposit record of given owner. ErrNotFound is returned
// if the record was not initialized.
func (c Controller) Deposit(db custody.ReadOnlyKVStore, owner custody.Address) (*Deposit, error) {
	var d Deposit
	if err := c.deposits.One(db, DepositAddress(owner), &d); err != nil {
		return nil, errors.Wrapf(err, "deposit of %s", owner)
	}
	return &d, nil
}

// InitializeVault creates the vault record owned by the authority, who pays
// for the allocation.
func (c Controller) InitializeVault(db custody.KVStore, authority custody.Address) (*Vault, error) {
	v := &Vault{Authority: authority}
	err := inTransaction(db, func(db custody.KVStore) error {
		return c.alloc.Allocate(db, c.vaults, VaultAddress(), v, authority)
	})
	if err != nil {
		return nil, errors.Wrap(err, "initialize vault")
	}
	return v, nil
}

// InitializeDeposit creates the deposit record of the owner, who pays for
// the allocation. The vault must exist.
func (c Controller) InitializeDeposit(db custody.KVStore, owner custody.Address) (*Deposit, error) {
	d := &Deposit{Owner: owner}
	err := inTransaction(db, func(db custody.KVStore) error {
		if err := c.vaults.Has(db, VaultAddress()); err != nil {
			return errors.Wrap(err, "vault")
		}
		return c.alloc.Allocate(db, c.deposits, DepositAddress(owner), d, owner)
	})
	if err != nil {
		return nil, errors.Wrap(err, "initialize deposit")
	}
	return d, nil
}

// DepositFunds moves the amount from the owner's wallet into custody and credits
// both the vault and the owner's deposit record.
func (c Controller) DepositFunds(db custody.KVStore, owner custody.Address, amount uint64) (*Deposit, error) {
	var res *Deposit
	err := inTransaction(db, func(db custody.KVStore) error {
		v, d, err := c.records(db, owner)
		if err != nil {
			return err
		}
		if err := c.move(db, d.Owner, VaultAddress(), amount); err != nil {
			return err
		}
		if v.TotalBalance, err = x.AddUint64(v.TotalBalance, amount); err != nil {
			return errors.Wrap(err, "vault total")
		}
		if d.Balance, err = x.AddUint64(d.Balance, amount); err != nil {
			return errors.Wrap(err, "deposit balance")
		}
		res = d
		return c.save(db, owner, v, d)
	})
	if err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	return res, nil
}

// WithdrawFunds debits both the vault and the owner's deposit record and
// moves the amount from custody back to the owner's wallet.
func (c Controller) WithdrawFunds(db custody.KVStore, owner custody.Address, amount uint64) (*Deposit, error) {
	var res *Deposit
	err := inTransaction(db, func(db custody.KVStore) error {
		v, d, err := c.records(db, owner)
		if err != nil {
			return err
		}
		if d.Balance < amount {
			return errors.Wrapf(ErrInsufficientFunds, "balance %d, want %d", d.Balance, amount)
		}
		if v.TotalBalance, err = x.SubUint64(v.TotalBalance, amount); err != nil {
			return errors.Wrap(err, "vault total")
		}
		if d.Balance, err = x.SubUint64(d.Balance, amount); err != nil {
			return errors.Wrap(err, "deposit balance")
		}
		if err := c.move(db, VaultAddress(), d.Owner, amount); err != nil {
			return err
		}
		res = d
		return c.save(db, owner, v, d)
	})
	if err != nil {
		return nil, errors.Wrap(err, "withdraw")
	}
	return res, nil
}

func (c Controller) records(db custody.KVStore, owner custody.Address) (*Vault, *Deposit, error) {
	d, err := c.Deposit(db, owner)
	if err != nil {
		return nil, nil, err
	}
	if !d.Owner.Equals(owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "deposit owner")
	}
	v, err := c.Vault(db)
	if err != nil {
		return nil, nil, err
	}
	return v, d, nil
}

func (c Controller) save(db custody.KVStore, owner custody.Address, v *Vault, d *Deposit) error {
	if err := c.vaults.Put(db, VaultAddress(), v); err != nil {
		return errors.Wrap(err, "save vault")
	}
	if err := c.deposits.Put(db, DepositAddress(owner), d); err != nil {
		return errors.Wrap(err, "save deposit")
	}
	return nil
}

// move transfers amount between wallets. Nothing is moved for a zero amount.
func (c Controller) move(db custody.KVStore, src, dest custody.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := c.cash.MoveCoins(db, src, dest, amount); err != nil {
		return transferErr(err)
	}
	return nil
}

// transferErr classifies a cash failure. Arithmetic errors keep their kind,
// anything else means the funds could not be moved.
func transferErr(err error) error {
	if errors.ErrOverflow.Is(err) || errors.ErrUnderflow.Is(err) {
		return errors.Wrap(err, "custody")
	}
	return errors.Wrap(ErrTransfer, err.Error())
}

// inTransaction executes fn on a cache wrap of the store, if supported. The
// cache is written only if fn succeeds.
func inTransaction(db custody.KVStore, fn func(custody.KVStore) error) error {
	cstore, ok := db.(custody.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		cache.Discard()
		return errors.Wrap(err, "write transaction")
	}
	return nil
}
