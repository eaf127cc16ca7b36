package store

import "github.com/iov-one/custody"

// The storage interfaces are declared in the root package. Aliases keep
// signatures in this package short.
type (
	Batch            = custody.Batch
	CacheableKVStore = custody.CacheableKVStore
	CommitID         = custody.CommitID
	CommitKVStore    = custody.CommitKVStore
	Iterator         = custody.Iterator
	KVCacheWrap      = custody.KVCacheWrap
	KVStore          = custody.KVStore
	Model            = custody.Model
	ReadOnlyKVStore  = custody.ReadOnlyKVStore
	SetDeleter       = custody.SetDeleter
)
