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

// StoryHandler owns the public and admin success-story endpoints.
type StoryHandler struct {
	store storage.StoryStore
}

// NewStoryHandler constructs the handler.
func NewStoryHandler(store storage.StoryStore) *StoryHandler {
	return &StoryHandler{store: store}
}

// ListPublic returns published stories only.
func (h *StoryHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	published := true
	list, err := h.store.ListStories(r.Context(), storage.StoryFilter{IsPublished: &published, Limit: 1000})
	if err != nil {
		storeError(w, err, "story not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

// GetPublic returns a single published story.
func (h *StoryHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	story, err := h.store.FindStoryByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil || !story.IsPublished {
		respond.Error(w, http.StatusNotFound, "story not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", story)
}

// Create adds a new story. New stories start unpublished.
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFromContext(r.Context())

	var req dto.StoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateStoryRequest(req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	story := models.SuccessStory{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Company:     req.Company,
		Story:       req.Story,
		Achievement: req.Achievement,
		Image:       req.Image,
		IsPublished: false,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.store.CreateStory(r.Context(), story); err != nil {
		storeError(w, err, "story not found")
		return
	}
	respond.JSON(w, http.StatusCreated, "story created", story)
}

// ListAdmin returns stories regardless of publication state.
func (h *StoryHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	filter := storage.StoryFilter{Skip: skip, Limit: limit}

	if raw := r.URL.Query().Get("is_published"); raw != "" {
		published := raw == "true"
		filter.IsPublished = &published
	}

	list, err := h.store.ListStories(r.Context(), filter)
	if err != nil {
		storeError(w, err, "story not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

// GetAdmin returns a single story, published or not.
func (h *StoryHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	story, err := h.store.FindStoryByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "story not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", story)
}

// Update overwrites a story's content fields.
func (h *StoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	story, err := h.store.FindStoryByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "story not found")
		return
	}

	var req dto.StoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateStoryRequest(req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	story.Name = strings.TrimSpace(req.Name)
	story.Company = req.Company
	story.Story = req.Story
	story.Achievement = req.Achievement
	story.Image = req.Image
	story.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateStory(r.Context(), story); err != nil {
		storeError(w, err, "story not found")
		return
	}
	respond.JSON(w, http.StatusOK, "story updated", story)
}

// Publish toggles a story's publication flag.
func (h *StoryHandler) Publish(w http.ResponseWriter, r *http.Request) {
	story, err := h.store.FindStoryByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "story not found")
		return
	}

	var req dto.PublishRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IsPublished == nil {
		respond.Error(w, http.StatusBadRequest, "is_published is required")
		return
	}

	story.IsPublished = *req.IsPublished
	story.UpdatedAt = time.Now().UTC()
	if err := h.store.UpdateStory(r.Context(), story); err != nil {
		storeError(w, err, "story not found")
		return
	}

	message := "story unpublished successfully"
	if story.IsPublished {
		message = "story published successfully"
	}
	respond.JSON(w, http.StatusOK, message, story)
}

// Delete removes a story permanently.
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteStory(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, err, "story not found")
		return
	}
	respond.JSON(w, http.StatusOK, "story deleted successfully", nil)
}

func validateStoryRequest(req dto.StoryRequest) error {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return errNameTooShort
	}
	if len(strings.TrimSpace(req.Story)) < 10 {
		return errStoryTooShort
	}
	return nil
}
