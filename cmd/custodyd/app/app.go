// Package custodyd assembles the custody ledger application from the
// wallet, signature and vault extensions.
package custodyd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/utils"
	"github.com/iov-one/custody/x/vault"
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator trusts the signers verified by the sigs decorator.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns the decorators run before every handler. Signature
// checks happen inside the check savepoint but outside the deliver one, so
// a failing delivery still consumes the signer sequence.
func Chain(reg prometheus.Registerer) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewMetrics(reg),
		utils.NewKeyTagger(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// CashController is shared by the wallet and the vault handlers.
func CashController() cash.Controller {
	return cash.NewController(cash.NewWalletBucket())
}

// Router returns the router dispatching wallet and vault messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	cashCtrl := CashController()
	cash.RegisterRoutes(r, authFn, cashCtrl)
	vault.RegisterRoutes(r, authFn, vault.NewController(cashCtrl, vault.NewRentAllocator(cashCtrl)))
	return r
}

// QueryRouter serves "/wallets", "/auth", "/vaults", "/deposits" and
// raw store reads under "/".
func QueryRouter() custody.QueryRouter {
	r := custody.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		vault.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Stack is the complete transaction handler passed to BaseApp.
func Stack(reg prometheus.Registerer) custody.Handler {
	return Chain(reg).WithHandler(Router(Authenticator()))
}

// Initializers loads all extensions from the genesis file.
func Initializers() custody.Initializer {
	return custody.ChainInitializers(
		&cash.Initializer{},
		&vault.Initializer{},
	)
}

// Application returns the ABCI application over kv.
func Application(name string, h custody.Handler, tx custody.TxDecoder, kv custody.CommitKVStore, debug bool) app.BaseApp {
	s := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	return app.NewBaseApp(s, tx, h, debug)
}

// CommitKVStore opens the iavl store at dbPath. An empty path gives an
// in-memory store. A trailing extension such as ".db" is ignored.
func CommitKVStore(dbPath string) (custody.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStore("", "custody"), nil
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q: %s", dbPath, err)
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path)), nil
}
