package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
)

// Allocator creates new records, charging the payer for the storage.
type Allocator interface {
	// Allocate stores the model under given key. It fails with
	// ErrDuplicate if the key is already in use and with ErrTransfer if
	// the payer cannot pay for the allocation.
	Allocate(db custody.KVStore, b orm.ModelBucket, key []byte, m orm.Model, payer custody.Address) error
}

// RentAllocator charges the configured rent for every byte of the
// serialized record.
type RentAllocator struct {
	cash cash.Controller
}

var _ Allocator = RentAllocator{}

// NewRentAllocator returns an allocator that charges rent through given
// cash controller.
func NewRentAllocator(ctrl cash.Controller) RentAllocator {
	return RentAllocator{cash: ctrl}
}

func (a RentAllocator) Allocate(db custody.KVStore, b orm.ModelBucket, key []byte, m orm.Model, payer custody.Address) error {
	if err := b.Create(db, key, m); err != nil {
		return err
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	rent, err := x.MulUint64(uint64(len(raw)), conf.RentPerByte)
	if err != nil {
		return errors.Wrap(err, "rent")
	}
	if rent == 0 {
		return nil
	}
	if err := a.cash.MoveCoins(db, payer, conf.Collector, rent); err != nil {
		return errors.Wrapf(ErrTransfer, "rent of %d: %s", rent, err)
	}
	return nil
}
