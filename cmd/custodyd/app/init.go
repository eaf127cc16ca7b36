package custodyd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const appName = "custodyd"

// initialBalance is issued to the genesis wallet.
const initialBalance = 123456789

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode. The account also owns the vault
// configuration.
//
// An address in any supported JSON format can be given as the first
// argument. Otherwise a new key is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr custody.Address
	if len(args) > 0 {
		raw, err := json.Marshal(args[0])
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		if err := addr.UnmarshalJSON(raw); err != nil {
			return nil, errors.Wrapf(err, "address %q", args[0])
		}
	} else {
		// if no address provided, auto-generate one
		// and print out the keys
		bz, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = bz
		fmt.Println(keys)
	}

	type account struct {
		Address custody.Address `json:"address"`
		Balance uint64          `json:"balance"`
	}
	type vaultConf struct {
		Owner       custody.Address `json:"owner"`
		RentPerByte uint64          `json:"rent_per_byte"`
	}
	opts := struct {
		Cash []account `json:"cash"`
		Conf struct {
			Vault vaultConf `json:"vault"`
		} `json:"conf"`
	}{
		Cash: []account{{Address: addr, Balance: initialBalance}},
	}
	opts.Conf.Vault.Owner = addr
	return json.MarshalIndent(opts, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "custody.db")
	}

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	application := Application(appName, Stack(reg), TxDecoder, kv, debug)
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

// InlineApp will take a previously prepared CommitStore and return a complete Application
func InlineApp(kv custody.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	application := Application(appName, Stack(prometheus.NewRegistry()), TxDecoder, kv, debug)
	application.WithInit(Initializers())
	application.WithLogger(logger)
	return application
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
func GenerateCoinKey() (custody.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, string(keys), nil
}
