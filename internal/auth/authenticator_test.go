package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsinnovation/hub-api/internal/auth"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage/memory"
)

func TestAuthenticatorResolve(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tokens := auth.NewTokenManager("secret", "test")
	authenticator := auth.NewAuthenticator(tokens, store)

	user := models.User{
		ID:        "user-1",
		Name:      "Grace Hopper",
		Email:     "grace@example.com",
		Role:      models.RoleManager,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.CreateUser(ctx, user))

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	resolved, err := authenticator.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Role, resolved.Role)
}

func TestAuthenticatorRejectsDeactivatedUser(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tokens := auth.NewTokenManager("secret", "test")
	authenticator := auth.NewAuthenticator(tokens, store)

	user := models.User{ID: "user-1", Email: "u@example.com", Role: models.RoleUser, IsActive: true}
	require.NoError(t, store.CreateUser(ctx, user))

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	// Deactivation after issuance kills the token even though it still
	// verifies cryptographically.
	user.IsActive = false
	require.NoError(t, store.UpdateUser(ctx, user))

	_, err = authenticator.Resolve(ctx, token)
	assert.True(t, errors.Is(err, auth.ErrUnauthenticated), "got %v", err)
}

func TestAuthenticatorRejectsDeletedUser(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tokens := auth.NewTokenManager("secret", "test")
	authenticator := auth.NewAuthenticator(tokens, store)

	user := models.User{ID: "user-1", Email: "u@example.com", Role: models.RoleUser, IsActive: true}
	require.NoError(t, store.CreateUser(ctx, user))

	token, err := tokens.Issue(user)
	require.NoError(t, err)
	require.NoError(t, store.DeleteUser(ctx, user.ID))

	_, err = authenticator.Resolve(ctx, token)
	assert.True(t, errors.Is(err, auth.ErrUnauthenticated), "got %v", err)
}

func TestAuthenticatorRejectsGarbageToken(t *testing.T) {
	store := memory.NewStore()
	authenticator := auth.NewAuthenticator(auth.NewTokenManager("secret", "test"), store)

	_, err := authenticator.Resolve(context.Background(), "garbage")
	assert.True(t, errors.Is(err, auth.ErrUnauthenticated), "got %v", err)
}
