package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsinnovation/hub-api/internal/auth"
	"github.com/rsinnovation/hub-api/internal/http/handlers"
	"github.com/rsinnovation/hub-api/internal/middleware"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage/memory"
)

type testEnv struct {
	router *chi.Mux
	store  *memory.Store
	tokens *auth.TokenManager
}

func newAuthEnv(t *testing.T) testEnv {
	t.Helper()
	store := memory.NewStore()
	tokens := auth.NewTokenManager("secret", "test")
	handler := handlers.NewAuthHandler(store, tokens)
	authenticate := middleware.Authenticate(auth.NewAuthenticator(tokens, store))

	r := chi.NewRouter()
	r.Post("/auth/google", handler.GoogleAuth)
	r.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Put("/auth/profile", handler.UpdateProfile)
	})
	return testEnv{router: r, store: store, tokens: tokens}
}

func (e testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestGoogleAuthCreatesThenUpserts(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	rec := env.do(t, http.MethodPost, "/auth/google", "", map[string]string{
		"google_id": "g-123",
		"name":      "Ada Lovelace",
		"email":     "ada@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	created, err := env.store.FindUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.True(t, created.IsActive)
	assert.Empty(t, created.PasswordHash)

	// Second sign-in reuses the account and refreshes the picture.
	rec = env.do(t, http.MethodPost, "/auth/google", "", map[string]string{
		"google_id": "g-123",
		"name":      "Ada Lovelace",
		"email":     "ADA@example.com",
		"picture":   "https://img.example.com/ada.png",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := env.store.FindUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "https://img.example.com/ada.png", updated.ProfilePicture)
}

func TestGoogleAuthRejectsInactiveAccount(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	require.NoError(t, env.store.CreateUser(ctx, models.User{
		ID:       "user-1",
		Name:     "Dormant",
		Email:    "dormant@example.com",
		Role:     models.RoleUser,
		IsActive: false,
	}))

	rec := env.do(t, http.MethodPost, "/auth/google", "", map[string]string{
		"google_id": "g-9",
		"name":      "Dormant",
		"email":     "dormant@example.com",
		"picture":   "https://img.example.com/dormant.png",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The rejected sign-in must not have written anything.
	got, err := env.store.FindUserByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, got.GoogleID)
	assert.Empty(t, got.ProfilePicture)
}

func TestUpdateProfileAllowList(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	user := models.User{
		ID:        "user-1",
		Name:      "Before",
		Email:     "user@example.com",
		Role:      models.RoleUser,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, env.store.CreateUser(ctx, user))
	token, err := env.tokens.Issue(user)
	require.NoError(t, err)

	rec := env.do(t, http.MethodPut, "/auth/profile", token, map[string]string{
		"name":  "After",
		"phone": "+1999",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got, err := env.store.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, "+1999", got.Phone)
	assert.Equal(t, models.RoleUser, got.Role)

	// A payload with none of the allowed fields is rejected.
	rec = env.do(t, http.MethodPut, "/auth/profile", token, map[string]string{"role": "OWNER"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	got, err = env.store.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, got.Role)
}
