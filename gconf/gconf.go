package gconf

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ReadStore is the part of a KVStore needed to load a configuration.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of a KVStore needed to save a configuration.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler can check and serialize itself.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is a package singleton kept under a reserved key.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

const keyPrefix = "_c:"

func configKey(pkg string) []byte {
	return append([]byte(keyPrefix), pkg...)
}

// Save validates src and writes it as the configuration of pkg,
// replacing any previous value.
func Save(db Store, pkg string, src ValidMarshaler) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s configuration", pkg)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	if err := db.Set(configKey(pkg), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Load fills dst with the configuration of pkg. ErrNotFound is returned
// when nothing was saved for that package.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	raw, err := db.Get(configKey(pkg))
	switch {
	case err != nil:
		return errors.Wrapf(errors.ErrDatabase, "read %s configuration: %s", pkg, err)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal %s configuration", pkg)
	}
	return nil
}

// InitConfig reads the genesis section conf.<pkg> into conf and saves it.
func InitConfig(db Store, opts custody.Options, pkg string, conf Configuration) error {
	var section custody.Options
	if err := opts.ReadOptions("conf", &section); err != nil {
		return err
	}
	if _, ok := section[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis has no %s configuration", pkg)
	}
	if err := section.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}
