package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rsinnovation/hub-api/internal/auth"
	"github.com/rsinnovation/hub-api/internal/http/respond"
	"github.com/rsinnovation/hub-api/internal/middleware"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/models/dto"
	"github.com/rsinnovation/hub-api/internal/storage"
)

// AuthHandler owns registration, login, Google sign-in, and profile
// self-service.
type AuthHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Register creates a password account. Duplicate email is a conflict.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateRegistration(req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Role:         models.RoleUser,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusConflict, "email already registered")
			return
		}
		slog.Error("create user failed", slog.String("error", err.Error()))
		respond.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusCreated, "user registered successfully", dto.AuthResponse{Token: token, User: user})
}

// Login authenticates with email and password. Bad credentials and inactive
// accounts share one message so account existence never leaks.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.store.FindUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		slog.Error("login lookup failed", slog.String("error", err.Error()))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if !auth.VerifyPassword(req.Password, user.PasswordHash) || !user.IsActive {
		respond.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.AuthResponse{Token: token, User: user})
}

// GoogleAuth upserts an account from a Google identity assertion and issues a
// token. Accounts created this way carry no password hash.
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req dto.GoogleAuthRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.GoogleID == "" || email == "" || strings.TrimSpace(req.Name) == "" {
		respond.Error(w, http.StatusBadRequest, "google_id, name, and email are required")
		return
	}

	user, err := h.store.FindUserByEmail(r.Context(), email)
	switch {
	case err == nil:
		// Reject before the upsert so a denied sign-in leaves no write behind.
		if !user.IsActive {
			respond.Error(w, http.StatusUnauthorized, "user not found or inactive")
			return
		}
		user.GoogleID = req.GoogleID
		if req.Picture != "" {
			user.ProfilePicture = req.Picture
		}
		user.UpdatedAt = time.Now().UTC()
		if err := h.store.UpdateUser(r.Context(), user); err != nil {
			slog.Error("google upsert failed", slog.String("error", err.Error()))
			respond.Error(w, http.StatusInternalServerError, "failed to update user")
			return
		}
	case errors.Is(err, storage.ErrNotFound):
		now := time.Now().UTC()
		user = models.User{
			ID:             uuid.New().String(),
			Name:           strings.TrimSpace(req.Name),
			Email:          email,
			Role:           models.RoleUser,
			ProfilePicture: req.Picture,
			GoogleID:       req.GoogleID,
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := h.store.CreateUser(r.Context(), user); err != nil {
			slog.Error("google create failed", slog.String("error", err.Error()))
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
			return
		}
	default:
		slog.Error("google lookup failed", slog.String("error", err.Error()))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, "google authentication successful", dto.AuthResponse{Token: token, User: user})
}

// Me returns the authenticated user's record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", user)
}

// UpdateProfile lets users change a fixed allow-list of their own fields.
// Role, email, and active status are never updatable here.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == nil && req.Phone == nil && req.ProfilePicture == nil {
		respond.Error(w, http.StatusBadRequest, "no valid fields to update")
		return
	}

	if req.Name != nil {
		actor.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		actor.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.ProfilePicture != nil {
		actor.ProfilePicture = *req.ProfilePicture
	}
	actor.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateUser(r.Context(), actor); err != nil {
		storeError(w, err, "user not found")
		return
	}
	respond.JSON(w, http.StatusOK, "profile updated", actor)
}

// Logout is a stateless acknowledgment: tokens are not revocable server-side
// and simply age out after 24 hours.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "logout successful", nil)
}

func validateRegistration(req dto.RegisterRequest) error {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return errors.New("name must be at least 2 characters")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return errors.New("a valid email is required")
	}
	if len(req.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}
