package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a prefixed subspace of the store. It deals with raw values
// only, ModelBucket adds the serialization on top of it.
type Bucket struct {
	name   string
	prefix []byte
}

var _ custody.QueryHandler = Bucket{}

// NewBucket returns a bucket keeping its data under the "<name>:" prefix.
// The name must be 3 to 10 lowercase letters or underscores.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %q", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
	}
}

// Name returns the name used to prefix all keys.
func (b Bucket) Name() string {
	return b.name
}

// DBKey returns the store key of given bucket key. The result never shares
// memory with the bucket prefix.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	out = append(out, b.prefix...)
	return append(out, key...)
}

// Register exposes the bucket under "/<name>". An empty name registers the
// bucket name.
func (b Bucket) Register(name string, r custody.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query implements custody.QueryHandler. Data is a bucket key, or a key
// prefix when the prefix modifier is used.
func (b Bucket) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		return queryKey(db, b.DBKey(data))
	case custody.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

func (b Bucket) get(db custody.ReadOnlyKVStore, key []byte) ([]byte, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrap(err, b.name)
	}
	return raw, nil
}

func (b Bucket) has(db custody.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(err, b.name)
	}
	return ok, nil
}

func (b Bucket) set(db custody.KVStore, key, raw []byte) error {
	return db.Set(b.DBKey(key), raw)
}

func (b Bucket) delete(db custody.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// iterate calls fn with the key (without the bucket prefix) and the raw
// value of every entry, in key order.
func (b Bucket) iterate(db custody.ReadOnlyKVStore, fn func(key, raw []byte) error) error {
	start, end := prefixRange(b.prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return err
	}
	defer it.Close()

	for ; it.Valid(); err = it.Next() {
		if err != nil {
			return err
		}
		if err := fn(it.Key()[len(b.prefix):], it.Value()); err != nil {
			return err
		}
	}
	return err
}
