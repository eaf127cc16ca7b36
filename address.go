package custody

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/custody/errors"
)

// AddressLength is the size of every address. Addresses are the identity
// field of stored ledger records, so it cannot change once a chain runs.
const AddressLength = 32

// Bech32Prefix is the human readable part of bech32 encoded addresses.
const Bech32Prefix = "cstd"

// Address is the sha256 digest of a Condition.
type Address []byte

// NewAddress hashes data into an address. Nil data has no address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return sum[:AddressLength]
}

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// String returns upper case hex.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// MarshalJSON encodes the address as a hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts
//
//	<hex>
//	hex:<hex>
//	cond:<extension>/<type>/<hex data>
//	bech32:<bech32>
//
// An empty value decodes to a nil address.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	if value == "" {
		*a = nil
		return nil
	}

	var (
		addr Address
		err  error
	)
	switch format {
	case "hex":
		addr, err = hex.DecodeString(value)
		if err != nil {
			return errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		err = addr.Validate()
	case "cond":
		var c Condition
		if c, err = parseCondition(value); err == nil {
			if err = c.Validate(); err == nil {
				addr = c.Address()
			}
		}
	case "bech32":
		addr, err = ParseBech32(value)
	default:
		err = errors.Wrapf(errors.ErrType, "unknown address format %q", format)
	}
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Bech32 encodes the address with Bech32Prefix.
func (a Address) Bech32() (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	enc, err := bech32.Encode(Bech32Prefix, data)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return enc, nil
}

// ParseBech32 decodes an address encoded by Address.Bech32.
func ParseBech32(enc string) (Address, error) {
	hrp, data, err := bech32.Decode(enc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32: %s", err)
	}
	if hrp != Bech32Prefix {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 prefix %q", hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 payload: %s", err)
	}
	addr := Address(raw)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
