package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
}

func TestPasswordHashIsSalted(t *testing.T) {
	a, err := HashPassword("password123")
	require.NoError(t, err)
	b, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, VerifyPassword("password123", a))
	assert.True(t, VerifyPassword("password123", b))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", ""))
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-digest"))
}
