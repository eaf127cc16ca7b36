package custodyd

import (
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/vault"
)

// AuditCmd verifies the ledger invariants of the latest committed state
// found in the home directory.
func AuditCmd(home string) (*vault.Audit, error) {
	kv, err := CommitKVStore(filepath.Join(home, "custody.db"))
	if err != nil {
		return nil, err
	}
	return Audit(kv)
}

// Audit loads the latest version of the store and checks that the vault
// total matches the deposits and that the custody wallet covers it.
func Audit(kv custody.CommitKVStore) (*vault.Audit, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load state")
	}
	db := kv.CacheWrap()
	defer db.Discard()
	return vault.CheckInvariants(db, CashController())
}
