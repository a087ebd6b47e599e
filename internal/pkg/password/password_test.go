package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify_RoundTrip(t *testing.T) {
	hash, err := Hash("password123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, Verify("password123", hash))
	assert.False(t, Verify("wrongpassword", hash))
}

func TestHash_SaltUniqueness(t *testing.T) {
	first, err := Hash("password123")
	require.NoError(t, err)
	second, err := Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Verify("password123", first))
	assert.True(t, Verify("password123", second))
}

func TestVerify_MalformedHash(t *testing.T) {
	assert.False(t, Verify("password123", "not-a-bcrypt-hash"))
	assert.False(t, Verify("password123", ""))
}

func TestVerify_EmptyPlaintext(t *testing.T) {
	hash, err := Hash("password123")
	require.NoError(t, err)
	assert.False(t, Verify("", hash))
}
