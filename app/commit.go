package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// layers keeps the committed store together with the two caches that
// CheckTx and DeliverTx write to between commits.
type layers struct {
	committed custody.CommitKVStore
	check     custody.KVCacheWrap
	deliver   custody.KVCacheWrap
}

// openLayers loads the latest committed version of kv.
func openLayers(kv custody.CommitKVStore) (*layers, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	l := &layers{committed: kv}
	l.reset()
	return l, nil
}

func (l *layers) reset() {
	l.check = l.committed.CacheWrap()
	l.deliver = l.committed.CacheWrap()
}

// commit persists everything delivered since the last commit. Pending
// CheckTx state is dropped.
func (l *layers) commit() (custody.CommitID, error) {
	if err := l.deliver.Write(); err != nil {
		return custody.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	l.check.Discard()
	id, err := l.committed.Commit()
	if err != nil {
		return id, err
	}
	l.reset()
	return id, nil
}

func (l *layers) latest() (custody.CommitID, error) {
	return l.committed.LatestVersion()
}

// Internal application data lives under the "_cs:" prefix, outside of any
// bucket.
var chainIDKey = []byte("_cs:chainID")

func loadChainID(kv custody.ReadOnlyKVStore) (string, error) {
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID writes the chain id once. It cannot be changed afterwards.
func saveChainID(kv custody.KVStore, chainID string) error {
	if !custody.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	switch exists, err := kv.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	return errors.Wrap(kv.Set(chainIDKey, []byte(chainID)), "save chain id")
}
