package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

// Initializer fulfils the Initializer interface to load the vault
// configuration from the genesis file. The configuration is optional.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis stores the "conf.vault" genesis section.
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(kv, opts, packageName, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return err
	}
}
