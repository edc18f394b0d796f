package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rsinnovation/hub-api/internal/http/respond"
	"github.com/rsinnovation/hub-api/internal/middleware"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/models/dto"
	"github.com/rsinnovation/hub-api/internal/storage"
)

// ApplicationHandler owns application submission and review.
type ApplicationHandler struct {
	apps     storage.ApplicationStore
	programs storage.ProgramStore
	events   storage.EventStore
	users    storage.UserStore
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(apps storage.ApplicationStore, programs storage.ProgramStore, events storage.EventStore, users storage.UserStore) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, programs: programs, events: events, users: users}
}

// Submit records a new application for the authenticated user. One
// application per user per target; a duplicate is a conflict.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.ApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	appType, err := models.ParseApplicationType(req.Type)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid application type")
		return
	}
	if appType == models.ApplicationProgram && req.ProgramID == "" {
		respond.Error(w, http.StatusBadRequest, "program_id is required for program applications")
		return
	}
	if appType == models.ApplicationEvent && req.EventID == "" {
		respond.Error(w, http.StatusBadRequest, "event_id is required for event applications")
		return
	}

	applied, err := h.apps.UserHasApplied(r.Context(), actor.ID, req.ProgramID, req.EventID)
	if err != nil {
		storeError(w, err, "application not found")
		return
	}
	if applied {
		respond.Error(w, http.StatusConflict, "you have already applied for this program/event")
		return
	}

	now := time.Now().UTC()
	app := models.Application{
		ID:        uuid.New().String(),
		UserID:    actor.ID,
		ProgramID: req.ProgramID,
		EventID:   req.EventID,
		Type:      appType,
		FormData:  req.FormData,
		Status:    models.ApplicationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.apps.CreateApplication(r.Context(), app); err != nil {
		storeError(w, err, "application not found")
		return
	}

	// Counter bumps are best-effort; the application itself is already
	// recorded.
	switch appType {
	case models.ApplicationEvent:
		if err := h.events.IncrementRegistrations(r.Context(), req.EventID); err != nil {
			slog.Warn("increment registrations failed", slog.String("event_id", req.EventID), slog.String("error", err.Error()))
		}
	case models.ApplicationProgram:
		if err := h.programs.IncrementParticipants(r.Context(), req.ProgramID); err != nil {
			slog.Warn("increment participants failed", slog.String("program_id", req.ProgramID), slog.String("error", err.Error()))
		}
	}

	respond.JSON(w, http.StatusCreated, "application submitted", app)
}

// ListMine returns the authenticated user's applications.
func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	list, err := h.apps.ListApplicationsByUser(r.Context(), actor.ID)
	if err != nil {
		storeError(w, err, "application not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

// enrichedApplication decorates an application with summaries of the
// applicant and the applied-to target for the admin review list.
type enrichedApplication struct {
	models.Application
	User    *applicantSummary `json:"user,omitempty"`
	Program *targetSummary    `json:"program,omitempty"`
	Event   *targetSummary    `json:"event,omitempty"`
}

type applicantSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type targetSummary struct {
	Title string `json:"title"`
}

// ListAdmin returns applications enriched with user/program/event summaries.
func (h *ApplicationHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	filter := storage.ApplicationFilter{Skip: skip, Limit: limit}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseApplicationStatus(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid application status")
			return
		}
		filter.Status = string(status)
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		appType, err := models.ParseApplicationType(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid application type")
			return
		}
		filter.Type = string(appType)
	}

	list, err := h.apps.ListApplications(r.Context(), filter)
	if err != nil {
		storeError(w, err, "application not found")
		return
	}

	enriched := make([]enrichedApplication, 0, len(list))
	for _, app := range list {
		enriched = append(enriched, h.enrich(r, app))
	}
	respond.JSON(w, http.StatusOK, "ok", enriched)
}

// GetAdmin returns a single application with full enrichment.
func (h *ApplicationHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	app, err := h.apps.FindApplicationByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "application not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", h.enrich(r, app))
}

// UpdateStatus records a review decision.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	app, err := h.apps.FindApplicationByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "application not found")
		return
	}

	var req dto.ApplicationReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := models.ParseApplicationStatus(req.Status)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid status")
		return
	}

	now := time.Now().UTC()
	app.Status = status
	app.ReviewNotes = req.ReviewNotes
	app.ReviewedBy = actor.ID
	app.ReviewedAt = &now
	app.UpdatedAt = now

	if err := h.apps.UpdateApplication(r.Context(), app); err != nil {
		storeError(w, err, "application not found")
		return
	}
	respond.JSON(w, http.StatusOK, "application status updated successfully", nil)
}

// Delete removes an application permanently.
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.apps.DeleteApplication(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, err, "application not found")
		return
	}
	respond.JSON(w, http.StatusOK, "application deleted successfully", nil)
}

func (h *ApplicationHandler) enrich(r *http.Request, app models.Application) enrichedApplication {
	out := enrichedApplication{Application: app}

	if user, err := h.users.FindUserByID(r.Context(), app.UserID); err == nil {
		out.User = &applicantSummary{Name: user.Name, Email: user.Email}
	} else if !errors.Is(err, storage.ErrNotFound) {
		slog.Warn("enrich applicant failed", slog.String("user_id", app.UserID), slog.String("error", err.Error()))
	}
	if app.ProgramID != "" {
		if program, err := h.programs.FindProgramByID(r.Context(), app.ProgramID); err == nil {
			out.Program = &targetSummary{Title: program.Title}
		}
	}
	if app.EventID != "" {
		if event, err := h.events.FindEventByID(r.Context(), app.EventID); err == nil {
			out.Event = &targetSummary{Title: event.Title}
		}
	}
	return out
}
