package store

import (
	"bytes"

	"github.com/google/btree"
)

// cachedRange takes a snapshot of all cached entries within [start, end).
// A nil bound is open.
func cachedRange(bt *btree.BTree, start, end []byte, reverse bool) []*entry {
	var entries []*entry
	collect := func(item btree.Item) bool {
		entries = append(entries, item.(*entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(&entry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(&entry{key: start}, collect)
	default:
		bt.AscendRange(&entry{key: start}, &entry{key: end}, collect)
	}
	if reverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	return entries
}

// mergeIterator walks the cached entries and the parent iterator side by
// side. A cached entry wins over the parent entry with the same key.
type mergeIterator struct {
	cache   []*entry
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cache []*entry, parent Iterator, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{
		cache:   cache,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

func (it *mergeIterator) Valid() bool {
	return len(it.cache) > 0 || it.parentValid()
}

// Next moves the cursor. It panics if the iterator is not valid.
func (it *mergeIterator) Next() error {
	if err := it.advance(); err != nil {
		return err
	}
	return it.skipDeleted()
}

func (it *mergeIterator) Key() []byte {
	if it.fromCache() {
		return it.cache[0].key
	}
	return it.parent.Key()
}

func (it *mergeIterator) Value() []byte {
	if it.fromCache() {
		return it.cache[0].value
	}
	return it.parent.Value()
}

func (it *mergeIterator) Close() {
	if it.parent != nil {
		it.parent.Close()
	}
	it.cache = nil
}

// advance moves past the current key in both sources.
func (it *mergeIterator) advance() error {
	switch cmp := it.compare(); {
	case cmp == 0:
		it.cache = it.cache[1:]
		return it.parent.Next()
	case cmp < 0:
		it.cache = it.cache[1:]
		return nil
	default:
		return it.parent.Next()
	}
}

// skipDeleted moves past every delete marker at the cursor together with
// the parent entry it shadows.
func (it *mergeIterator) skipDeleted() error {
	for len(it.cache) > 0 && it.compare() <= 0 && it.cache[0].deleted {
		if err := it.advance(); err != nil {
			return err
		}
	}
	return nil
}

func (it *mergeIterator) fromCache() bool {
	if !it.Valid() {
		panic("iterator advanced past the end")
	}
	return it.compare() <= 0
}

// compare returns a negative value if the cursor is only at a cached entry,
// zero if both sources are at the same key and a positive value if it is
// only at the parent entry.
func (it *mergeIterator) compare() int {
	switch {
	case len(it.cache) == 0:
		return 1
	case !it.parentValid():
		return -1
	}
	cmp := bytes.Compare(it.cache[0].key, it.parent.Key())
	if it.reverse {
		cmp = -cmp
	}
	return cmp
}

func (it *mergeIterator) parentValid() bool {
	return it.parent != nil && it.parent.Valid()
}
