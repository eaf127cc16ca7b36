package store

// Recorder exposes the writes seen by a store built with NewRecordingStore.
type Recorder interface {
	// KVPairs maps every written key to its final value. Deleted keys map
	// to nil.
	KVPairs() map[string][]byte
}

// NewRecordingStore wraps db so that every write is recorded. When db can
// be cache wrapped, so can the result, and writes made through a cache are
// recorded only once that cache is written.
func NewRecordingStore(db KVStore) KVStore {
	rec := &recorder{KVStore: db, log: make(map[string][]byte)}
	if _, ok := db.(CacheableKVStore); ok {
		return &cacheableRecorder{rec}
	}
	return rec
}

type recorder struct {
	KVStore
	log map[string][]byte
}

var _ Recorder = (*recorder)(nil)

func (r *recorder) KVPairs() map[string][]byte {
	return r.log
}

func (r *recorder) Set(key, value []byte) error {
	if err := r.KVStore.Set(key, value); err != nil {
		return err
	}
	r.log[string(key)] = value
	return nil
}

func (r *recorder) Delete(key []byte) error {
	if err := r.KVStore.Delete(key); err != nil {
		return err
	}
	r.log[string(key)] = nil
	return nil
}

func (r *recorder) NewBatch() Batch {
	return &recordedBatch{
		Batch: r.KVStore.NewBatch(),
		log:   r.log,
	}
}

type cacheableRecorder struct {
	*recorder
}

var _ CacheableKVStore = cacheableRecorder{}

func (r cacheableRecorder) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r.recorder, r.NewBatch(), nil)
}

// recordedBatch copies its writes into the log after the wrapped batch is
// written successfully.
type recordedBatch struct {
	Batch
	log     map[string][]byte
	pending []change
}

func (b *recordedBatch) Set(key, value []byte) error {
	b.pending = append(b.pending, change{key: key, value: value})
	return b.Batch.Set(key, value)
}

func (b *recordedBatch) Delete(key []byte) error {
	b.pending = append(b.pending, change{key: key, del: true})
	return b.Batch.Delete(key)
}

func (b *recordedBatch) Write() error {
	if err := b.Batch.Write(); err != nil {
		return err
	}
	for _, c := range b.pending {
		if c.del {
			b.log[string(c.key)] = nil
		} else {
			b.log[string(c.key)] = c.value
		}
	}
	b.pending = nil
	return nil
}
