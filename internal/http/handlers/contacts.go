package handlers

import (
	"net/http"
	"net/mail"
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

// ContactHandler owns the public contact form and the admin inbox.
type ContactHandler struct {
	store storage.ContactStore
}

// NewContactHandler constructs the handler.
func NewContactHandler(store storage.ContactStore) *ContactHandler {
	return &ContactHandler{store: store}
}

// Submit accepts a message from the public contact form.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(strings.TrimSpace(req.Name)) < 2 {
		respond.Error(w, http.StatusBadRequest, "name must be at least 2 characters")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(strings.TrimSpace(req.Message)) < 10 {
		respond.Error(w, http.StatusBadRequest, "message must be at least 10 characters")
		return
	}

	now := time.Now().UTC()
	contact := models.Contact{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    models.ContactUnread,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.store.CreateContact(r.Context(), contact); err != nil {
		storeError(w, err, "contact not found")
		return
	}
	respond.JSON(w, http.StatusCreated, "thank you for contacting us, we will get back to you soon", contact)
}

// List returns contact messages with pagination and status filter.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	filter := storage.ContactFilter{Skip: skip, Limit: limit}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseContactStatus(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid contact status")
			return
		}
		filter.Status = string(status)
	}

	list, err := h.store.ListContacts(r.Context(), filter)
	if err != nil {
		storeError(w, err, "contact not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", list)
}

// Get returns a single contact message. Reading an unread message marks
// it read.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.store.FindContactByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "contact not found")
		return
	}

	if contact.Status == models.ContactUnread {
		contact.Status = models.ContactRead
		contact.UpdatedAt = time.Now().UTC()
		if err := h.store.UpdateContact(r.Context(), contact); err != nil {
			storeError(w, err, "contact not found")
			return
		}
	}
	respond.JSON(w, http.StatusOK, "ok", contact)
}

// Reply records a reply to a contact message and marks it replied.
func (h *ContactHandler) Reply(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	contact, err := h.store.FindContactByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "contact not found")
		return
	}

	var req dto.ContactReplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ReplyMessage) == "" {
		respond.Error(w, http.StatusBadRequest, "reply_message is required")
		return
	}

	now := time.Now().UTC()
	contact.Status = models.ContactReplied
	contact.ReplyMessage = req.ReplyMessage
	contact.RepliedBy = actor.ID
	contact.RepliedAt = &now
	contact.UpdatedAt = now

	if err := h.store.UpdateContact(r.Context(), contact); err != nil {
		storeError(w, err, "contact not found")
		return
	}
	respond.JSON(w, http.StatusOK, "reply sent successfully", contact)
}

// UpdateStatus sets the handling state directly.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	contact, err := h.store.FindContactByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "contact not found")
		return
	}

	var req dto.StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := models.ParseContactStatus(req.Status)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid status")
		return
	}

	contact.Status = status
	contact.UpdatedAt = time.Now().UTC()
	if err := h.store.UpdateContact(r.Context(), contact); err != nil {
		storeError(w, err, "contact not found")
		return
	}
	respond.JSON(w, http.StatusOK, "contact status updated successfully", nil)
}

// Delete removes a contact message permanently.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, err, "contact not found")
		return
	}
	respond.JSON(w, http.StatusOK, "contact deleted successfully", nil)
}
