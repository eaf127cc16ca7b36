package custody

import (
	"encoding/json"
)

// Handler processes the messages routed to it. Check validates a
// transaction for the mempool, Deliver executes it in a block.
type Handler interface {
	Checker
	Deliverer
}

type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around the rest of the stack, for example to verify
// signatures or to make a call atomic. It decides whether and how next
// is called.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to the path of the messages they process.
type Registry interface {
	Handle(Msg, Handler)
}

// Options is the genesis app state, split by the top level key each
// extension reads.
type Options map[string]json.RawMessage

// ReadOptions decodes the value under key into obj. A missing key leaves
// obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer loads the state of an extension from the genesis file.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers returns an Initializer calling each of inits in order.
// The first failure stops the chain.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (inits initializers) FromGenesis(opts Options, kv KVStore) error {
	for _, ini := range inits {
		if err := ini.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
