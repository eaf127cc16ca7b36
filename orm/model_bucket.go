package orm

import (
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// NewModelBucket returns a ModelBucket storing models of the same type as m.
// The model must be a pointer.
func NewModelBucket(name string, m Model) ModelBucket {
	return &modelBucket{
		b:     NewBucket(name),
		model: reflect.TypeOf(m),
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := mb.checkType(dest); err != nil {
		return err
	}
	raw, err := mb.b.get(db, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	return load(dest, raw)
}

func (mb *modelBucket) Has(db custody.ReadOnlyKVStore, key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrNotFound, "nil key")
	}
	switch ok, err := mb.b.has(db, key); {
	case err != nil:
		return err
	case !ok:
		return errors.ErrNotFound
	default:
		return nil
	}
}

func (mb *modelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	if err := mb.checkType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	if err := mb.b.set(db, key, raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Create(db custody.KVStore, key []byte, m Model) error {
	switch err := mb.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "%T with key %X", m, key)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return mb.Put(db, key, m)
}

func (mb *modelBucket) Delete(db custody.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.delete(db, key)
}

func (mb *modelBucket) ForEach(db custody.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error {
	if err := mb.checkType(dest); err != nil {
		return err
	}
	return mb.b.iterate(db, func(key, raw []byte) error {
		if err := load(dest, raw); err != nil {
			return errors.Wrapf(err, "key %X", key)
		}
		return fn(key)
	})
}

func (mb *modelBucket) Register(name string, r custody.QueryRouter) {
	mb.b.Register(name, r)
}

func (mb *modelBucket) checkType(m Model) error {
	if t := reflect.TypeOf(m); t != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot use %v with a %v bucket", t, mb.model)
	}
	return nil
}

// load resets dest and unmarshals raw into it.
func load(dest Model, raw []byte) error {
	v := reflect.ValueOf(dest).Elem()
	v.Set(reflect.Zero(v.Type()))
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrap(err, "cannot unmarshal")
	}
	return nil
}
