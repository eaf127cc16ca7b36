package orm

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// RegisterQuery will register a root query (literal keys) under "/"
func RegisterQuery(qr custody.QueryRouter) {
	qr.Register("/", rawQuery{})
}

// rawQuery is a query handler that queries the store without any key
// prefix.
type rawQuery struct{}

func (rawQuery) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		return queryKey(db, data)
	case custody.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// ConsumeIterator reads all remaining entries of the iterator and closes
// it.
func ConsumeIterator(it custody.Iterator) ([]custody.Model, error) {
	defer it.Close()

	var res []custody.Model
	for it.Valid() {
		res = append(res, custody.Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func queryKey(db custody.ReadOnlyKVStore, key []byte) ([]custody.Model, error) {
	value, err := db.Get(key)
	switch {
	case err != nil:
		return nil, err
	case value == nil:
		// a miss is an empty result, not an error
		return nil, nil
	default:
		return []custody.Model{custody.Pair(key, value)}, nil
	}
}

func queryPrefix(db custody.ReadOnlyKVStore, prefix []byte) ([]custody.Model, error) {
	start, end := prefixRange(prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(it)
}

// prefixRange returns the iterator bounds covering all keys starting with
// prefix. A nil end means no upper bound.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end
		}
	}
	return prefix, nil
}
