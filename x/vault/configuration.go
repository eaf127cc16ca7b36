package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const packageName = "vault"

// Configuration of the vault extension. It is stored with gconf.
type Configuration struct {
	// Owner can update the configuration.
	Owner custody.Address `json:"owner"`
	// RentPerByte is charged for every byte of a newly allocated record.
	RentPerByte uint64 `json:"rent_per_byte"`
	// Collector receives the rent.
	Collector custody.Address `json:"collector"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() custody.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	var errs error
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	if c.RentPerByte > 0 || len(c.Collector) != 0 {
		errs = errors.AppendField(errs, "Collector", c.Collector.Validate())
	}
	return errs
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.Marshal(&configurationWire{
		Owner:       c.Owner,
		RentPerByte: c.RentPerByte,
		Collector:   c.Collector,
	})
}

func (c *Configuration) Unmarshal(raw []byte) error {
	var w configurationWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return err
	}
	*c = Configuration{Owner: w.Owner, RentPerByte: w.RentPerByte, Collector: w.Collector}
	return nil
}

// loadConf returns the stored configuration. Without a configuration
// allocation is free.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
