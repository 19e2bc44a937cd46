package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSaltIsRandom(t *testing.T) {
	first, err := GenerateSalt()
	require.NoError(t, err)
	second, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, first, 64) // 32 bytes hex-encoded
	assert.NotEqual(t, first, second)
}

func TestHashPasswordDependsOnSalt(t *testing.T) {
	hash1 := HashPassword("Sup3rSecret!", "salt-a")
	hash2 := HashPassword("Sup3rSecret!", "salt-b")

	assert.NotEqual(t, hash1, hash2)
	assert.NotEqual(t, "Sup3rSecret!", hash1)
}

func TestVerifyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	hash := HashPassword("Sup3rSecret!", salt)

	assert.True(t, VerifyPassword("Sup3rSecret!", salt, hash))
	assert.False(t, VerifyPassword("WrongSecret1!", salt, hash))
	assert.False(t, VerifyPassword("Sup3rSecret!", "other-salt", hash))
}
