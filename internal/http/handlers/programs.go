package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rsinnovation/hub-api/internal/http/respond"
	"github.com/rsinnovation/hub-api/internal/middleware"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/models/dto"
	"github.com/rsinnovation/hub-api/internal/storage"
)

// ProgramHandler owns the public and admin program endpoints.
type ProgramHandler struct {
	store storage.ProgramStore
}

// NewProgramHandler constructs the handler.
func NewProgramHandler(store storage.ProgramStore) *ProgramHandler {
	return &ProgramHandler{store: store}
}

// ListPublic returns active programs, optionally filtered by category.
func (h *ProgramHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	active := true
	filter := storage.ProgramFilter{IsActive: &active, Limit: 1000}

	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err := models.ParseProgramCategory(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid category")
			return
		}
		filter.Category = string(category)
	}

	list, err := h.store.ListPrograms(r.Context(), filter)
	if err != nil {
		storeError(w, err, "program not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

// GetPublic returns a single active program.
func (h *ProgramHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	program, err := h.store.FindProgramByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil || !program.IsActive {
		respond.Error(w, http.StatusNotFound, "program not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", program)
}

// Create adds a new program.
func (h *ProgramHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFromContext(r.Context())

	var req dto.ProgramRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	category, err := validateProgramRequest(req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Features == nil {
		req.Features = []string{}
	}

	now := time.Now().UTC()
	program := models.Program{
		ID:              uuid.New().String(),
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Features:        req.Features,
		Duration:        req.Duration,
		Category:        category,
		Image:           req.Image,
		IsActive:        true,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       actor.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := h.store.CreateProgram(r.Context(), program); err != nil {
		storeError(w, err, "program not found")
		return
	}
	respond.JSON(w, http.StatusCreated, "program created", program)
}

// ListAdmin returns all programs regardless of active flag.
func (h *ProgramHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	filter := storage.ProgramFilter{Skip: skip, Limit: limit}

	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err := models.ParseProgramCategory(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid category")
			return
		}
		filter.Category = string(category)
	}
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	list, err := h.store.ListPrograms(r.Context(), filter)
	if err != nil {
		storeError(w, err, "program not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

// GetAdmin returns a single program, active or not.
func (h *ProgramHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	program, err := h.store.FindProgramByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "program not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", program)
}

// Update overwrites a program's content fields.
func (h *ProgramHandler) Update(w http.ResponseWriter, r *http.Request) {
	program, err := h.store.FindProgramByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "program not found")
		return
	}

	var req dto.ProgramRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	category, err := validateProgramRequest(req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Features == nil {
		req.Features = []string{}
	}

	program.Title = strings.TrimSpace(req.Title)
	program.Description = req.Description
	program.Features = req.Features
	program.Duration = req.Duration
	program.Category = category
	program.Image = req.Image
	program.MaxParticipants = req.MaxParticipants
	program.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateProgram(r.Context(), program); err != nil {
		storeError(w, err, "program not found")
		return
	}
	respond.JSON(w, http.StatusOK, "program updated", program)
}

// Delete soft-deletes a program by clearing its active flag.
func (h *ProgramHandler) Delete(w http.ResponseWriter, r *http.Request) {
	program, err := h.store.FindProgramByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "program not found")
		return
	}

	program.IsActive = false
	program.UpdatedAt = time.Now().UTC()
	if err := h.store.UpdateProgram(r.Context(), program); err != nil {
		storeError(w, err, "program not found")
		return
	}
	respond.JSON(w, http.StatusOK, "program deleted successfully", nil)
}

func validateProgramRequest(req dto.ProgramRequest) (models.ProgramCategory, error) {
	if len(strings.TrimSpace(req.Title)) < 3 {
		return "", errTitleTooShort
	}
	if len(req.Description) < 10 {
		return "", errDescriptionTooShort
	}
	return models.ParseProgramCategory(req.Category)
}
