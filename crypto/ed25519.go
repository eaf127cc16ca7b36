package crypto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	if len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a custody condition
func (p *PublicKey) Condition() custody.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return custody.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is the identity bound to this public key.
func (p *PublicKey) Address() custody.Address {
	return p.Condition().Address()
}

// Validate ensures the key has the ed25519 size.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 public key")
	}
	return nil
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return marshalBytes(p.Ed25519), nil
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	b, err := unmarshalBytes(raw)
	p.Ed25519 = b
	return err
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return marshalBytes(p.Ed25519), nil
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	b, err := unmarshalBytes(raw)
	p.Ed25519 = b
	return err
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte
}

func (s *Signature) Marshal() ([]byte, error) {
	return marshalBytes(s.Ed25519), nil
}

func (s *Signature) Unmarshal(raw []byte) error {
	b, err := unmarshalBytes(raw)
	s.Ed25519 = b
	return err
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}

// All key types share the same layout, a single ed25519 bytes field. Field
// number 1 is kept free for other key algorithms.
type keyWire struct {
	Ed25519 []byte `protobuf:"bytes,2,opt,name=ed25519,proto3"`
}

func (m *keyWire) Reset()         { *m = keyWire{} }
func (m *keyWire) String() string { return proto.CompactTextString(m) }
func (*keyWire) ProtoMessage()    {}

func marshalBytes(b []byte) []byte {
	// keyWire holds only bytes, encoding cannot fail.
	raw, _ := codec.Marshal(&keyWire{Ed25519: b})
	return raw
}

func unmarshalBytes(raw []byte) ([]byte, error) {
	var w keyWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.Ed25519, nil
}
