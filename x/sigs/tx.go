package sigs

import (
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the sigs.Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	//
	// Helpful to store original, unparsed bytes here, just in case.
	GetSignBytes() ([]byte, error)

	// Signatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature binds a signature to the public key and sequence it was
// created with.
type StdSignature struct {
	Sequence  int64
	Pubkey    *crypto.PublicKey
	Signature *crypto.Signature
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	pub, err := codec.Nested(s.Pubkey)
	if err != nil {
		return nil, err
	}
	sig, err := codec.Nested(s.Signature)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(&stdSignatureWire{Sequence: s.Sequence, Pubkey: pub, Signature: sig})
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	var w stdSignatureWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return err
	}
	*s = StdSignature{Sequence: w.Sequence}
	if w.Pubkey != nil {
		s.Pubkey = &crypto.PublicKey{}
		if err := s.Pubkey.Unmarshal(w.Pubkey); err != nil {
			return err
		}
	}
	if w.Signature != nil {
		s.Signature = &crypto.Signature{}
		if err := s.Signature.Unmarshal(w.Signature); err != nil {
			return err
		}
	}
	return nil
}
