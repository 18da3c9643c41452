package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	passwords := []string{"Abcd1234!", "correct horse battery staple 1!", "p@ssW0rd"}

	for _, p := range passwords {
		hash, err := HashPassword(p)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
		assert.NotContains(t, hash, p)

		ok, err := VerifyPassword(p, hash)
		require.NoError(t, err)
		assert.True(t, ok, "own password must verify")

		ok, err = VerifyPassword(p+"x", hash)
		require.NoError(t, err)
		assert.False(t, ok, "different password must not verify")
	}
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	first, err := HashPassword("Abcd1234!")
	require.NoError(t, err)
	second, err := HashPassword("Abcd1234!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "random salt must make hashes differ")
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, bad := range []string{"", "plaintext", "$bcrypt$whatever", "$argon2id$v=19$too$few"} {
		ok, err := VerifyPassword("Abcd1234!", bad)
		assert.Error(t, err)
		assert.False(t, ok)
	}
}
