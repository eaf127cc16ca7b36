package orm

import (
	"github.com/iov-one/custody"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	custody.Persistent
	// Validate returns an error if the model must not be written to the
	// store in its current state.
	Validate() error
}

// ModelBucket keeps a single Model type under a dedicated key prefix.
type ModelBucket interface {
	// One loads the entity stored under given key into dest. ErrNotFound
	// is returned for a missing key and ErrType if dest is not of the
	// bucket model type.
	One(db custody.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity is stored under given key and
	// ErrNotFound otherwise.
	Has(db custody.ReadOnlyKVStore, key []byte) error

	// Put validates and writes given model, overwriting any previous
	// value.
	Put(db custody.KVStore, key []byte, m Model) error

	// Create writes given model under a key that is not in use yet. It
	// returns ErrDuplicate otherwise.
	Create(db custody.KVStore, key []byte, m Model) error

	// Delete removes the entity stored under given key. ErrNotFound is
	// returned if there is none.
	Delete(db custody.KVStore, key []byte) error

	// ForEach loads every stored entity into dest, in key order, and calls
	// fn with its key. Iteration stops at the first error.
	ForEach(db custody.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error

	// Register exposes the bucket content to queries under given name.
	Register(name string, r custody.QueryRouter)
}
