package store

// sliceIterator walks a pre-sorted slice of models.
type sliceIterator struct {
	data []Model
}

// NewSliceIterator returns an Iterator over data. The slice must already be
// in iteration order.
func NewSliceIterator(data []Model) Iterator {
	return &sliceIterator{data: data}
}

func (s *sliceIterator) Valid() bool {
	return len(s.data) > 0
}

// Next panics when called on an exhausted iterator.
func (s *sliceIterator) Next() error {
	s.head()
	s.data = s.data[1:]
	return nil
}

func (s *sliceIterator) Key() []byte {
	return s.head().Key
}

func (s *sliceIterator) Value() []byte {
	return s.head().Value
}

func (s *sliceIterator) Close() {
	s.data = nil
}

func (s *sliceIterator) head() Model {
	if len(s.data) == 0 {
		panic("slice iterator exhausted")
	}
	return s.data[0]
}

// EmptyKVStore holds nothing and drops every write.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(_, _ []byte) error      { return nil }
func (EmptyKVStore) Delete([]byte) error        { return nil }
func (e EmptyKVStore) NewBatch() Batch          { return NewNonAtomicBatch(e) }
func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// change is a single pending write or delete.
type change struct {
	key   []byte
	value []byte
	del   bool
}

func (c change) apply(out SetDeleter) error {
	if c.del {
		return out.Delete(c.key)
	}
	return out.Set(c.key, c.value)
}

// NonAtomicBatch queues writes and replays them on Write. A failure in the
// middle of Write leaves the earlier writes applied, so it is only suitable
// for in-memory stores.
type NonAtomicBatch struct {
	out     SetDeleter
	pending []change
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch returns an empty batch writing into out.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.pending = append(b.pending, change{key: key, value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.pending = append(b.pending, change{key: key, del: true})
	return nil
}

// Write flushes the queue. The batch is empty afterwards.
func (b *NonAtomicBatch) Write() error {
	pending := b.pending
	b.pending = nil
	for _, c := range pending {
		if err := c.apply(b.out); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of queued writes.
func (b *NonAtomicBatch) Len() int {
	return len(b.pending)
}
