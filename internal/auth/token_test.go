package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsinnovation/hub-api/internal/models"
)

func testUser() models.User {
	return models.User{
		ID:    "user-1",
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Role:  models.RoleEditor,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "test")

	token, err := tm.Issue(testUser())
	require.NoError(t, err)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada Lovelace", claims.Name)
	assert.Equal(t, models.RoleEditor, claims.Role)
	assert.Equal(t, "test", claims.Issuer)
}

func TestTokenExpiresAfter24Hours(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tm := NewTokenManager("secret", "test")
	tm.now = func() time.Time { return issued }

	token, err := tm.Issue(testUser())
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(24*time.Hour - time.Second) }
	_, err = tm.Verify(token)
	assert.NoError(t, err, "token inside its lifetime must verify")

	tm.now = func() time.Time { return issued.Add(24*time.Hour + time.Second) }
	_, err = tm.Verify(token)
	assert.True(t, errors.Is(err, ErrTokenExpired), "got %v", err)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", "test").Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", "test").Verify(token)
	assert.True(t, errors.Is(err, ErrTokenInvalid), "got %v", err)
}

func TestTokenMalformed(t *testing.T) {
	tm := NewTokenManager("secret", "test")

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(raw)
		assert.True(t, errors.Is(err, ErrTokenInvalid), "raw=%q got %v", raw, err)
	}
}
