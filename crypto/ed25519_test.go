package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestVerify(t *testing.T) {
	key := GenPrivKeyEd25519()
	other := GenPrivKeyEd25519()
	deposit := []byte("deposit 40")

	sig, err := key.Sign(deposit)
	assert.Nil(t, err)
	otherSig, err := other.Sign(deposit)
	assert.Nil(t, err)

	raw, err := sig.Marshal()
	assert.Nil(t, err)
	var restored Signature
	assert.Nil(t, restored.Unmarshal(raw))

	cases := map[string]struct {
		pub  *PublicKey
		msg  []byte
		sig  *Signature
		want bool
	}{
		"valid signature": {
			pub: key.PublicKey(), msg: deposit, sig: sig, want: true,
		},
		"deserialized signature": {
			pub: key.PublicKey(), msg: deposit, sig: &restored, want: true,
		},
		"modified message": {
			pub: key.PublicKey(), msg: []byte("deposit 41"), sig: sig,
		},
		"signed by another key": {
			pub: key.PublicKey(), msg: deposit, sig: otherSig,
		},
		"empty signature": {
			pub: key.PublicKey(), msg: deposit, sig: &Signature{},
		},
		"nil signature": {
			pub: key.PublicKey(), msg: deposit,
		},
		"nil key": {
			msg: deposit, sig: sig,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := tc.pub.Verify(tc.msg, tc.sig); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSignaturesDiffer(t *testing.T) {
	key := GenPrivKeyEd25519()
	a, err := key.Sign([]byte("withdraw 10"))
	assert.Nil(t, err)
	b, err := key.Sign([]byte("withdraw 20"))
	assert.Nil(t, err)
	rawA, _ := a.Marshal()
	rawB, _ := b.Marshal()
	if bytes.Equal(rawA, rawB) {
		t.Fatal("two messages serialize to the same signature")
	}
}

func TestPublicKeyIdentity(t *testing.T) {
	a := GenPrivKeyEd25519().PublicKey()
	b := GenPrivKeyEd25519().PublicKey()

	assert.Nil(t, a.Validate())
	assert.Nil(t, a.Condition().Validate())
	assert.Nil(t, a.Address().Validate())
	if a.Address().Equals(b.Address()) {
		t.Fatal("two keys share an address")
	}

	var empty PublicKey
	if empty.Condition() != nil {
		t.Fatal("empty key has a condition")
	}
	assert.IsErr(t, errors.ErrInput, empty.Validate())

	raw, err := a.Marshal()
	assert.Nil(t, err)
	var restored PublicKey
	assert.Nil(t, restored.Unmarshal(raw))
	assert.Equal(t, a.Address(), restored.Address())
}

func TestKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.PublicKey(), PrivKeyEd25519FromSeed(seed).PublicKey())

	raw, err := a.Marshal()
	assert.Nil(t, err)
	var restored PrivateKey
	assert.Nil(t, restored.Unmarshal(raw))
	assert.Equal(t, a.PublicKey(), restored.PublicKey())
}
