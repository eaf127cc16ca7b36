package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Initializer issues the wallet balances listed under "cash" in the
// genesis app state:
//
//	"cash": [{"address": "<address>", "balance": 100}]
//
// Addresses accept every format of custody.Address JSON decoding.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

type genesisWallet struct {
	Address custody.Address `json:"address"`
	Balance uint64          `json:"balance"`
}

func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var wallets []genesisWallet
	if err := opts.ReadOptions("cash", &wallets); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController(NewWalletBucket())
	for i, w := range wallets {
		err := w.Address.Validate()
		if err == nil {
			err = ctrl.IssueCoins(kv, w.Address, w.Balance)
		}
		if err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
	}
	return nil
}
