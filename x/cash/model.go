package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the balance of a single address.
type Wallet struct {
	Metadata *custody.Metadata
	Balance  uint64
}

var _ orm.Model = (*Wallet)(nil)

// Validate requires the metadata to be present.
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return nil
}

func (w *Wallet) Marshal() ([]byte, error) {
	meta, err := codec.Nested(w.Metadata)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(&walletWire{Metadata: meta, Balance: w.Balance})
}

func (w *Wallet) Unmarshal(raw []byte) error {
	var wire walletWire
	if err := codec.Unmarshal(raw, &wire); err != nil {
		return err
	}
	*w = Wallet{Balance: wire.Balance}
	if wire.Metadata != nil {
		w.Metadata = &custody.Metadata{}
		return w.Metadata.Unmarshal(wire.Metadata)
	}
	return nil
}

// NewWalletBucket returns a bucket that stores wallets keyed by their
// address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
