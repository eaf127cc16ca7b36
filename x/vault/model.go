package vault

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	headerLength  = 8
	balanceLength = 8

	// RecordSize is the serialized size of both the vault and the deposit
	// record: type header, identity and balance.
	RecordSize = headerLength + custody.AddressLength + balanceLength
)

var (
	vaultHeader   = discriminator("vault/Vault")
	depositHeader = discriminator("vault/Deposit")
)

func discriminator(name string) []byte {
	h := sha256.Sum256([]byte(name))
	return h[:headerLength]
}

// Vault is the singleton record holding the total amount in custody.
type Vault struct {
	// Authority is the administrator that created the vault.
	Authority custody.Address
	// TotalBalance is the sum of all deposit balances.
	TotalBalance uint64
}

var _ orm.Model = (*Vault)(nil)

func (v *Vault) Validate() error {
	if err := v.Authority.Validate(); err != nil {
		return errors.Field("Authority", err, "invalid authority")
	}
	return nil
}

func (v *Vault) Marshal() ([]byte, error) {
	return marshalRecord(vaultHeader, v.Authority, v.TotalBalance)
}

func (v *Vault) Unmarshal(raw []byte) error {
	addr, balance, err := unmarshalRecord(vaultHeader, raw)
	if err != nil {
		return errors.Wrap(err, "vault")
	}
	v.Authority = addr
	v.TotalBalance = balance
	return nil
}

// Deposit is the record of a single depositor.
type Deposit struct {
	// Owner is the depositor. Only the owner can move funds in and out.
	Owner custody.Address
	// Balance is the amount the owner may withdraw.
	Balance uint64
}

var _ orm.Model = (*Deposit)(nil)

func (d *Deposit) Validate() error {
	if err := d.Owner.Validate(); err != nil {
		return errors.Field("Owner", err, "invalid owner")
	}
	return nil
}

func (d *Deposit) Marshal() ([]byte, error) {
	return marshalRecord(depositHeader, d.Owner, d.Balance)
}

func (d *Deposit) Unmarshal(raw []byte) error {
	addr, balance, err := unmarshalRecord(depositHeader, raw)
	if err != nil {
		return errors.Wrap(err, "deposit")
	}
	d.Owner = addr
	d.Balance = balance
	return nil
}

func marshalRecord(header []byte, addr custody.Address, balance uint64) ([]byte, error) {
	if len(addr) != custody.AddressLength {
		return nil, errors.Wrapf(errors.ErrModel, "identity of %d bytes", len(addr))
	}
	raw := make([]byte, RecordSize)
	copy(raw, header)
	copy(raw[headerLength:], addr)
	binary.LittleEndian.PutUint64(raw[headerLength+custody.AddressLength:], balance)
	return raw, nil
}

func unmarshalRecord(header, raw []byte) (custody.Address, uint64, error) {
	if len(raw) != RecordSize {
		return nil, 0, errors.Wrapf(errors.ErrModel, "want %d bytes, got %d", RecordSize, len(raw))
	}
	for i, b := range header {
		if raw[i] != b {
			return nil, 0, errors.Wrapf(errors.ErrModel, "header %X", raw[:headerLength])
		}
	}
	addr := make(custody.Address, custody.AddressLength)
	copy(addr, raw[headerLength:])
	balance := binary.LittleEndian.Uint64(raw[headerLength+custody.AddressLength:])
	return addr, balance, nil
}

// NewVaultBucket returns a bucket for the vault record.
func NewVaultBucket() orm.ModelBucket {
	return orm.NewModelBucket("vault", &Vault{})
}

// NewDepositBucket returns a bucket for deposit records, keyed by their
// derived address.
func NewDepositBucket() orm.ModelBucket {
	return orm.NewModelBucket("deposit", &Deposit{})
}
