package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsinnovation/hub-api/internal/auth"
	"github.com/rsinnovation/hub-api/internal/config"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/server"
	"github.com/rsinnovation/hub-api/internal/storage/memory"
)

const testSecret = "test-secret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	cfg := config.Config{
		Port:        "8080",
		JWTSecret:   testSecret,
		JWTIssuer:   "test",
		CORSOrigins: []string{"*"},
	}
	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := server.New(cfg, store, logger)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv.Handler(), store
}

func seedUser(t *testing.T, store *memory.Store, id string, role models.Role) models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		ID:           id,
		Name:         id,
		Email:        id + "@example.com",
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := auth.NewTokenManager(testSecret, "test").Issue(user)
	require.NoError(t, err)
	return token
}

func do(t *testing.T, handler http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestRegisterLoginFlow(t *testing.T) {
	handler, _ := newTestServer(t)

	register := map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "password123",
	}
	rec, env := do(t, handler, http.MethodPost, "/api/auth/register", "", register)
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)

	var created struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, models.RoleUser, created.User.Role)
	assert.True(t, created.User.IsActive)

	// Fresh token resolves to the same account.
	rec, env = do(t, handler, http.MethodGet, "/api/auth/me", created.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, created.User.ID, me.ID)

	// Duplicate email conflicts.
	rec, env = do(t, handler, http.MethodPost, "/api/auth/register", "", register)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email already registered", env.Message)

	// Login round-trips.
	rec, env = do(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, rec.Code, env.Message)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	handler, store := newTestServer(t)

	active := seedUser(t, store, "active", models.RoleUser)
	inactive := seedUser(t, store, "inactive", models.RoleUser)
	inactive.IsActive = false
	require.NoError(t, store.UpdateUser(context.Background(), inactive))

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown account", "nobody@example.com", "password123"},
		{"wrong password", active.Email, "wrong-password"},
		{"inactive account", inactive.Email, "password123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := do(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
				"email":    tc.email,
				"password": tc.password,
			})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "invalid email or password", env.Message)
		})
	}
}

func TestLogoutIsStatelessAcknowledgment(t *testing.T) {
	handler, store := newTestServer(t)

	// No token required.
	rec, env := do(t, handler, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logout successful", env.Message)

	// A bearer token is accepted but changes nothing: the token keeps
	// resolving afterwards.
	user := seedUser(t, store, "user", models.RoleUser)
	token := tokenFor(t, user)
	rec, _ = do(t, handler, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, handler, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticatedSurfaceRequiresToken(t *testing.T) {
	handler, _ := newTestServer(t)

	rec, _ := do(t, handler, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, handler, http.MethodGet, "/api/admin/dashboard", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeactivationRevokesOutstandingTokens(t *testing.T) {
	handler, store := newTestServer(t)

	manager := seedUser(t, store, "manager", models.RoleManager)
	target := seedUser(t, store, "target", models.RoleUser)
	targetToken := tokenFor(t, target)

	rec, _ := do(t, handler, http.MethodGet, "/api/auth/me", targetToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, handler, http.MethodPatch, "/api/admin/users/"+target.ID+"/status",
		tokenFor(t, manager), map[string]any{"is_active": false})
	require.Equal(t, http.StatusOK, rec.Code)

	// Same token, same user, no longer accepted.
	rec, env := do(t, handler, http.MethodGet, "/api/auth/me", targetToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "user not found or inactive", env.Message)
}

func TestRoleThresholds(t *testing.T) {
	handler, store := newTestServer(t)

	user := seedUser(t, store, "user", models.RoleUser)
	editor := seedUser(t, store, "editor", models.RoleEditor)
	manager := seedUser(t, store, "manager", models.RoleManager)

	program := map[string]any{
		"title":       "Incubation Batch 7",
		"description": "Twelve weeks of mentorship for early-stage founders.",
		"category":    "incubation",
		"duration":    "12 weeks",
	}

	// Below the editor threshold.
	rec, _ := do(t, handler, http.MethodPost, "/api/admin/programs", tokenFor(t, user), program)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Editors create content.
	rec, env := do(t, handler, http.MethodPost, "/api/admin/programs", tokenFor(t, editor), program)
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)
	var created models.Program
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Deletion needs manager.
	rec, _ = do(t, handler, http.MethodDelete, "/api/admin/programs/"+created.ID, tokenFor(t, editor), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, handler, http.MethodDelete, "/api/admin/programs/"+created.ID, tokenFor(t, manager), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Soft delete hides the program from the public surface but keeps it
	// visible to admins.
	rec, _ = do(t, handler, http.MethodGet, "/api/programs/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, handler, http.MethodGet, "/api/admin/programs/"+created.ID, tokenFor(t, editor), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// User deletion is owner-only.
	rec, _ = do(t, handler, http.MethodDelete, "/api/admin/users/"+user.ID, tokenFor(t, manager), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserAdminGuards(t *testing.T) {
	handler, store := newTestServer(t)

	owner := seedUser(t, store, "owner", models.RoleOwner)
	manager := seedUser(t, store, "manager", models.RoleManager)

	// Role assignment is owner-only; managers fail the threshold.
	rec, _ := do(t, handler, http.MethodPatch, "/api/admin/users/"+owner.ID+"/role",
		tokenFor(t, manager), map[string]string{"role": "EDITOR"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Actors never change their own role, whatever their tier.
	rec, env := do(t, handler, http.MethodPatch, "/api/admin/users/"+owner.ID+"/role",
		tokenFor(t, owner), map[string]string{"role": "USER"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "cannot change your own role", env.Message)

	// Managers cannot touch owner accounts.
	rec, env = do(t, handler, http.MethodPatch, "/api/admin/users/"+owner.ID+"/status",
		tokenFor(t, manager), map[string]any{"is_active": false})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "only owners can deactivate other owners", env.Message)

	// Unknown target is 404, not 403, even when a guard would also fire.
	rec, _ = do(t, handler, http.MethodPatch, "/api/admin/users/missing/role",
		tokenFor(t, owner), map[string]string{"role": "EDITOR"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Invalid role values never reach the store.
	rec, _ = do(t, handler, http.MethodPatch, "/api/admin/users/"+manager.ID+"/role",
		tokenFor(t, owner), map[string]string{"role": "SUPERUSER"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationLifecycle(t *testing.T) {
	handler, store := newTestServer(t)
	ctx := context.Background()

	applicant := seedUser(t, store, "applicant", models.RoleUser)
	editor := seedUser(t, store, "editor", models.RoleEditor)

	program := models.Program{
		ID:        "prog-1",
		Title:     "Internship Track",
		Category:  models.CategoryInternship,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.CreateProgram(ctx, program))

	submission := map[string]any{
		"type":       "PROGRAM",
		"program_id": program.ID,
		"form_data": map[string]string{
			"name":  "Ada Lovelace",
			"email": "ada@example.com",
			"phone": "+1234567",
		},
	}

	rec, env := do(t, handler, http.MethodPost, "/api/applications", tokenFor(t, applicant), submission)
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)
	var created models.Application
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, models.ApplicationPending, created.Status)

	// Submitting counts toward the program's participant tally.
	got, err := store.FindProgramByID(ctx, program.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentParticipants)

	// One application per user per target.
	rec, _ = do(t, handler, http.MethodPost, "/api/applications", tokenFor(t, applicant), submission)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Type/target mismatch is rejected up front.
	rec, _ = do(t, handler, http.MethodPost, "/api/applications", tokenFor(t, applicant), map[string]any{
		"type":      "EVENT",
		"form_data": map[string]string{"name": "Ada"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The applicant sees their own submissions.
	rec, env = do(t, handler, http.MethodGet, "/api/applications/my", tokenFor(t, applicant), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []models.Application
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)

	// Review stamps the decision.
	rec, _ = do(t, handler, http.MethodPatch, "/api/admin/applications/"+created.ID+"/status",
		tokenFor(t, editor), map[string]string{"status": "APPROVED", "review_notes": "strong fit"})
	require.Equal(t, http.StatusOK, rec.Code)

	reviewed, err := store.FindApplicationByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, reviewed.Status)
	assert.Equal(t, "strong fit", reviewed.ReviewNotes)
	assert.Equal(t, editor.ID, reviewed.ReviewedBy)
	require.NotNil(t, reviewed.ReviewedAt)
}

func TestContactLifecycle(t *testing.T) {
	handler, store := newTestServer(t)
	ctx := context.Background()

	editor := seedUser(t, store, "editor", models.RoleEditor)
	manager := seedUser(t, store, "manager", models.RoleManager)

	rec, env := do(t, handler, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Partnership",
		"message": "We would like to discuss a partnership.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)
	var contact models.Contact
	require.NoError(t, json.Unmarshal(env.Data, &contact))
	assert.Equal(t, models.ContactUnread, contact.Status)

	// Admin read marks the message read.
	rec, _ = do(t, handler, http.MethodGet, "/api/admin/contacts/"+contact.ID, tokenFor(t, editor), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stored, err := store.FindContactByID(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactRead, stored.Status)

	// Replying stamps the reply and flips the status.
	rec, _ = do(t, handler, http.MethodPost, "/api/admin/contacts/"+contact.ID+"/reply",
		tokenFor(t, editor), map[string]string{"reply_message": "Thanks, we will reach out."})
	require.Equal(t, http.StatusOK, rec.Code)
	stored, err = store.FindContactByID(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactReplied, stored.Status)
	assert.Equal(t, editor.ID, stored.RepliedBy)
	require.NotNil(t, stored.RepliedAt)

	// Deletion is manager-tier.
	rec, _ = do(t, handler, http.MethodDelete, "/api/admin/contacts/"+contact.ID, tokenFor(t, editor), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = do(t, handler, http.MethodDelete, "/api/admin/contacts/"+contact.ID, tokenFor(t, manager), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStoriesPublicSurfaceShowsOnlyPublished(t *testing.T) {
	handler, store := newTestServer(t)

	editor := seedUser(t, store, "editor", models.RoleEditor)

	rec, env := do(t, handler, http.MethodPost, "/api/admin/success-stories", tokenFor(t, editor), map[string]string{
		"name":        "Jane Founder",
		"company":     "Acme",
		"story":       "Went from idea to seed round in a year.",
		"achievement": "Raised seed funding",
	})
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)
	var story models.SuccessStory
	require.NoError(t, json.Unmarshal(env.Data, &story))
	assert.False(t, story.IsPublished)

	// Draft stays off the public surface.
	rec, _ = do(t, handler, http.MethodGet, "/api/success-stories/"+story.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, handler, http.MethodPatch, "/api/admin/success-stories/"+story.ID+"/publish",
		tokenFor(t, editor), map[string]any{"is_published": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, handler, http.MethodGet, "/api/success-stories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var published []models.SuccessStory
	require.NoError(t, json.Unmarshal(env.Data, &published))
	require.Len(t, published, 1)
	assert.Equal(t, story.ID, published[0].ID)
}

func TestDashboard(t *testing.T) {
	handler, store := newTestServer(t)
	ctx := context.Background()

	editor := seedUser(t, store, "editor", models.RoleEditor)
	seedUser(t, store, "someone", models.RoleUser)

	require.NoError(t, store.CreateContact(ctx, models.Contact{
		ID:        "contact-1",
		Name:      "Visitor",
		Subject:   "Hello",
		Status:    models.ContactUnread,
		CreatedAt: time.Now().UTC(),
	}))

	rec, env := do(t, handler, http.MethodGet, "/api/admin/dashboard", tokenFor(t, editor), nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Message)

	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 2, stats.Totals.Users)
	assert.Equal(t, 1, stats.Totals.Contacts)
	assert.Equal(t, 1, stats.RecentActivity.NewContacts)
	assert.Equal(t, 1, stats.Breakdowns.ContactStatus[string(models.ContactUnread)])
	require.Len(t, stats.RecentItems.Contacts, 1)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	handler, _ := newTestServer(t)

	rec, env := do(t, handler, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", env.Message)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsRec := httptest.NewRecorder()
	handler.ServeHTTP(metricsRec, req)
	assert.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), "hubapi_http_requests_total")
}

func TestAnonymousWriteRateLimit(t *testing.T) {
	handler, _ := newTestServer(t)

	body := map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Hello",
		"message": "Just checking in with a question.",
	}

	var limited bool
	for i := 0; i < 20; i++ {
		rec, _ := do(t, handler, http.MethodPost, "/api/contact", "", body)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			assert.Equal(t, "60", rec.Header().Get("Retry-After"))
			break
		}
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.True(t, limited, "burst of anonymous writes should trip the limiter")
}
