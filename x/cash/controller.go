package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
)

// Controller is the functionality needed by cash.Handler and cash.Decorator.
// BaseController should work plenty fine, but you can add other logic if so
// desired
type Controller interface {
	// Balance returns the amount held by given address. An address that
	// never received anything holds nothing.
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error)

	// MoveCoins removes the amount from the source wallet and adds it to
	// the destination wallet. It fails with ErrAmount if the source does
	// not hold enough funds and with ErrOverflow if the destination
	// cannot hold the result.
	MoveCoins(db custody.KVStore, src, dest custody.Address, amount uint64) error

	// IssueCoins adds the amount to the destination wallet, creating it
	// if needed.
	IssueCoins(db custody.KVStore, dest custody.Address, amount uint64) error
}

// BaseController is a simple implementation of controller that keeps
// wallets in an orm bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given wallet bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	w, err := c.load(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db custody.KVStore, src, dest custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrAmount, "funds: %d, want: %d", sender.Balance, amount)
	}
	if sender.Balance, err = x.SubUint64(sender.Balance, amount); err != nil {
		return err
	}

	if src.Equals(dest) {
		// Moving funds to itself is a noop once the source was
		// proven to hold them.
		return nil
	}

	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance, err = x.AddUint64(recipient.Balance, amount); err != nil {
		return errors.Wrap(err, "recipient")
	}

	if err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	if err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db custody.KVStore, dest custody.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance, err = x.AddUint64(recipient.Balance, amount); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, recipient)
}

// load returns the wallet stored under given address or an empty wallet if
// none exists yet.
func (c BaseController) load(db custody.ReadOnlyKVStore, addr custody.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &custody.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "load wallet")
	}
}
