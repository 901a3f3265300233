package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2-secret")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2-secret", hash, "stored hash must never equal the plaintext")
	assert.NotEmpty(t, hash)

	// hashing is salted, two hashes of the same input differ
	hash2, err := HashPassword("hunter2-secret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword("correct-horse", hash))
	assert.False(t, CheckPassword("wrong-horse", hash))
	assert.False(t, CheckPassword("", hash))
	assert.False(t, CheckPassword("correct-horse", "not-a-bcrypt-hash"))
}
