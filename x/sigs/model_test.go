package sigs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

func TestUserDataValidate(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	cases := map[string]struct {
		user    *UserData
		wantErr *errors.Error
	}{
		"new user": {
			user: &UserData{Metadata: &custody.Metadata{Schema: 1}},
		},
		"user with key": {
			user: &UserData{Metadata: &custody.Metadata{Schema: 1}, Pubkey: pub, Sequence: 17},
		},
		"missing metadata": {
			user:    &UserData{Pubkey: pub},
			wantErr: errors.ErrMetadata,
		},
		"negative sequence": {
			user:    &UserData{Metadata: &custody.Metadata{Schema: 1}, Pubkey: pub, Sequence: -1},
			wantErr: ErrInvalidSequence,
		},
		"sequence without key": {
			user:    &UserData{Metadata: &custody.Metadata{Schema: 1}, Sequence: 3},
			wantErr: ErrInvalidSequence,
		},
		"invalid key": {
			user:    &UserData{Metadata: &custody.Metadata{Schema: 1}, Pubkey: &crypto.PublicKey{Ed25519: []byte("short")}},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.user.Validate()
			assert.True(t, tc.wantErr.Is(err), "%+v", err)
		})
	}
}

func TestCheckAndIncrementSequence(t *testing.T) {
	u := &UserData{Metadata: &custody.Metadata{Schema: 1}}
	require.NoError(t, u.CheckAndIncrementSequence(0))
	assert.EqualValues(t, 1, u.Sequence)

	err := u.CheckAndIncrementSequence(0)
	assert.True(t, ErrInvalidSequence.Is(err))

	u.Sequence = maxSequenceValue
	err = u.CheckAndIncrementSequence(maxSequenceValue)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestUserDataSerialization(t *testing.T) {
	u := &UserData{
		Metadata: &custody.Metadata{Schema: 1},
		Pubkey:   crypto.GenPrivKeyEd25519().PublicKey(),
		Sequence: 1234,
	}
	raw, err := u.Marshal()
	require.NoError(t, err)
	var got UserData
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, u, &got)
}
