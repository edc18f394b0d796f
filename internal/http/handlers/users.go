package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rsinnovation/hub-api/internal/http/respond"
	"github.com/rsinnovation/hub-api/internal/middleware"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/models/dto"
	"github.com/rsinnovation/hub-api/internal/storage"
	"github.com/rsinnovation/hub-api/internal/users"
)

// UserAdminHandler exposes the guarded user-management surface.
type UserAdminHandler struct {
	svc *users.Service
}

// NewUserAdminHandler constructs the handler.
func NewUserAdminHandler(svc *users.Service) *UserAdminHandler {
	return &UserAdminHandler{svc: svc}
}

// List returns accounts, optionally filtered by role and active flag.
func (h *UserAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	filter := storage.UserFilter{Skip: skip, Limit: limit}

	if raw := r.URL.Query().Get("role"); raw != "" {
		role, err := models.ParseRole(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid role filter")
			return
		}
		filter.Role = string(role)
	}
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	list, err := h.svc.List(r.Context(), filter)
	if err != nil {
		storeError(w, err, "user not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

// Get returns a single account.
func (h *UserAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "user not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", user)
}

// UpdateRole reassigns the target user's role.
func (h *UserAdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.RoleUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid role")
		return
	}

	if err := h.svc.ChangeRole(r.Context(), actor, chi.URLParam(r, "id"), role); err != nil {
		guardError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "user role updated to "+string(role), nil)
}

// UpdateStatus activates or deactivates the target user.
func (h *UserAdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.ActiveUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IsActive == nil {
		respond.Error(w, http.StatusBadRequest, "is_active is required")
		return
	}

	if err := h.svc.SetActive(r.Context(), actor, chi.URLParam(r, "id"), *req.IsActive); err != nil {
		guardError(w, err)
		return
	}
	message := "user deactivated successfully"
	if *req.IsActive {
		message = "user activated successfully"
	}
	respond.JSON(w, http.StatusOK, message, nil)
}

// Delete removes the target account.
func (h *UserAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.svc.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		guardError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "user deleted successfully", nil)
}

// guardError maps self-service guard violations to 403 and everything else
// through the standard store mapping. NotFound wins over guard rules because
// the service checks target existence first.
func guardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrCannotChangeOwnRole),
		errors.Is(err, users.ErrOnlyOwnersGrantOwner),
		errors.Is(err, users.ErrCannotDeactivateSelf),
		errors.Is(err, users.ErrOnlyOwnersDeactivateOwners),
		errors.Is(err, users.ErrCannotDeleteSelf):
		respond.Error(w, http.StatusForbidden, err.Error())
	default:
		storeError(w, err, "user not found")
	}
}
