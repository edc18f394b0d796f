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

// EventHandler owns the public and admin event endpoints.
type EventHandler struct {
	store storage.EventStore
}

// NewEventHandler constructs the handler.
func NewEventHandler(store storage.EventStore) *EventHandler {
	return &EventHandler{store: store}
}

// ListPublic returns events, optionally filtered by status.
func (h *EventHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	filter := storage.EventFilter{Limit: 1000}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseEventStatus(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid event status")
			return
		}
		filter.Status = string(status)
	}

	list, err := h.store.ListEvents(r.Context(), filter)
	if err != nil {
		storeError(w, err, "event not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

// GetPublic returns a single event.
func (h *EventHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	event, err := h.store.FindEventByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "event not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", event)
}

// Create adds a new event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFromContext(r.Context())

	var req dto.EventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := validateEventRequest(req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	event := models.Event{
		ID:               uuid.New().String(),
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Date:             req.Date,
		Type:             req.Type,
		Participants:     req.Participants,
		Prizes:           req.Prizes,
		Status:           status,
		Image:            req.Image,
		MaxRegistrations: req.MaxRegistrations,
		CreatedBy:        actor.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := h.store.CreateEvent(r.Context(), event); err != nil {
		storeError(w, err, "event not found")
		return
	}
	respond.JSON(w, http.StatusCreated, "event created", event)
}

// ListAdmin returns events with pagination and status filter.
func (h *EventHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	filter := storage.EventFilter{Skip: skip, Limit: limit}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseEventStatus(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid event status")
			return
		}
		filter.Status = string(status)
	}

	list, err := h.store.ListEvents(r.Context(), filter)
	if err != nil {
		storeError(w, err, "event not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

// GetAdmin returns a single event.
func (h *EventHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	event, err := h.store.FindEventByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "event not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", event)
}

// Update overwrites an event's content fields.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	event, err := h.store.FindEventByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "event not found")
		return
	}

	var req dto.EventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := validateEventRequest(req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	event.Title = strings.TrimSpace(req.Title)
	event.Description = req.Description
	event.Date = req.Date
	event.Type = req.Type
	event.Participants = req.Participants
	event.Prizes = req.Prizes
	event.Status = status
	event.Image = req.Image
	event.MaxRegistrations = req.MaxRegistrations
	event.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateEvent(r.Context(), event); err != nil {
		storeError(w, err, "event not found")
		return
	}
	respond.JSON(w, http.StatusOK, "event updated", event)
}

// Delete removes an event permanently.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, err, "event not found")
		return
	}
	respond.JSON(w, http.StatusOK, "event deleted successfully", nil)
}

func validateEventRequest(req dto.EventRequest) (models.EventStatus, error) {
	if len(strings.TrimSpace(req.Title)) < 3 {
		return "", errTitleTooShort
	}
	if len(req.Description) < 10 {
		return "", errDescriptionTooShort
	}
	if req.Status == "" {
		return models.EventUpcoming, nil
	}
	return models.ParseEventStatus(req.Status)
}
