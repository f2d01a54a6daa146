package cryptox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast
var testParams = Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8}

func TestDeriveKey_Deterministic(t *testing.T) {
	key1 := DeriveKey([]byte("secret-password"), []byte("fixed-salt"), testParams)
	key2 := DeriveKey([]byte("secret-password"), []byte("fixed-salt"), testParams)
	require.True(t, bytes.Equal(key1, key2))
	assert.Len(t, key1, int(testParams.KeyLen))
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	k1 := DeriveKey([]byte("pw"), []byte("salt-1"), testParams)
	k2 := DeriveKey([]byte("pw"), []byte("salt-2"), testParams)
	assert.NotEqual(t, k1, k2)
	assert.Len(t, k1, int(testParams.KeyLen))
}

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	encoded := HashPassword([]byte("secret1"), testParams)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))
	require.NotContains(t, encoded, "secret1")

	ok, err := VerifyPassword(encoded, []byte("secret1"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(encoded, []byte("secret2"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a := HashPassword([]byte("same"), testParams)
	b := HashPassword([]byte("same"), testParams)
	assert.NotEqual(t, a, b)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"plaintext", "secret1"},
		{"wrong algorithm", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5"},
		{"bad version", "$argon2id$v=1$m=1024,t=1,p=1$c2FsdA$a2V5"},
		{"bad params", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5"},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5"},
		{"bad key", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$!!!"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := VerifyPassword(tc.encoded, []byte("x"))
			require.ErrorIs(t, err, ErrMalformedHash)
			assert.False(t, ok)
		})
	}
}
