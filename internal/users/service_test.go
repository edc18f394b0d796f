package users_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage"
	"github.com/rsinnovation/hub-api/internal/storage/memory"
	"github.com/rsinnovation/hub-api/internal/users"
)

func seed(t *testing.T, store *memory.Store, id string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		ID:        id,
		Name:      id,
		Email:     id + "@example.com",
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := users.NewService(store)

	owner := seed(t, store, "owner", models.RoleOwner)
	manager := seed(t, store, "manager", models.RoleManager)
	target := seed(t, store, "target", models.RoleUser)

	t.Run("promotes a user", func(t *testing.T) {
		require.NoError(t, svc.ChangeRole(ctx, owner, target.ID, models.RoleEditor))
		got, err := store.FindUserByID(ctx, target.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleEditor, got.Role)
	})

	t.Run("actor cannot change own role", func(t *testing.T) {
		err := svc.ChangeRole(ctx, owner, owner.ID, models.RoleUser)
		assert.True(t, errors.Is(err, users.ErrCannotChangeOwnRole), "got %v", err)
	})

	t.Run("only owners grant owner", func(t *testing.T) {
		err := svc.ChangeRole(ctx, manager, target.ID, models.RoleOwner)
		assert.True(t, errors.Is(err, users.ErrOnlyOwnersGrantOwner), "got %v", err)

		require.NoError(t, svc.ChangeRole(ctx, owner, target.ID, models.RoleOwner))
	})

	t.Run("missing target is not-found before any guard", func(t *testing.T) {
		err := svc.ChangeRole(ctx, owner, "nope", models.RoleOwner)
		assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
	})
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := users.NewService(store)

	owner := seed(t, store, "owner", models.RoleOwner)
	otherOwner := seed(t, store, "owner2", models.RoleOwner)
	manager := seed(t, store, "manager", models.RoleManager)
	target := seed(t, store, "target", models.RoleUser)

	t.Run("deactivates and reactivates", func(t *testing.T) {
		require.NoError(t, svc.SetActive(ctx, manager, target.ID, false))
		got, err := store.FindUserByID(ctx, target.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)

		require.NoError(t, svc.SetActive(ctx, manager, target.ID, true))
		got, err = store.FindUserByID(ctx, target.ID)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
	})

	t.Run("actor cannot deactivate self", func(t *testing.T) {
		err := svc.SetActive(ctx, manager, manager.ID, false)
		assert.True(t, errors.Is(err, users.ErrCannotDeactivateSelf), "got %v", err)
	})

	t.Run("only owners deactivate owners", func(t *testing.T) {
		err := svc.SetActive(ctx, manager, otherOwner.ID, false)
		assert.True(t, errors.Is(err, users.ErrOnlyOwnersDeactivateOwners), "got %v", err)

		require.NoError(t, svc.SetActive(ctx, owner, otherOwner.ID, false))
	})

	t.Run("missing target is not-found before any guard", func(t *testing.T) {
		err := svc.SetActive(ctx, manager, "nope", false)
		assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := users.NewService(store)

	owner := seed(t, store, "owner", models.RoleOwner)
	target := seed(t, store, "target", models.RoleUser)

	t.Run("actor cannot delete self", func(t *testing.T) {
		err := svc.Delete(ctx, owner, owner.ID)
		assert.True(t, errors.Is(err, users.ErrCannotDeleteSelf), "got %v", err)
	})

	t.Run("deletes target", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, owner, target.ID))
		_, err := store.FindUserByID(ctx, target.ID)
		assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
	})

	t.Run("missing target is not-found", func(t *testing.T) {
		err := svc.Delete(ctx, owner, "nope")
		assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
	})
}
