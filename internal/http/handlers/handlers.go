// Package handlers implements the HTTP endpoints of the API.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rsinnovation/hub-api/internal/http/respond"
	"github.com/rsinnovation/hub-api/internal/storage"
)

var (
	errTitleTooShort       = errors.New("title must be at least 3 characters")
	errDescriptionTooShort = errors.New("description must be at least 10 characters")
	errNameTooShort        = errors.New("name must be at least 2 characters")
	errStoryTooShort       = errors.New("story must be at least 10 characters")
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

// pagination reads skip/limit query params with the store defaults.
func pagination(r *http.Request) (skip, limit int) {
	if v, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && v > 0 {
		skip = v
	}
	limit = 100
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 1000 {
		limit = v
	}
	return skip, limit
}

// storeError maps storage failures to the caller-visible taxonomy. Anything
// that is not NotFound/Conflict is an internal fault and stays out of the
// response body.
func storeError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, storage.ErrAlreadyExists):
		respond.Error(w, http.StatusConflict, "record already exists")
	default:
		slog.Error("storage failure", slog.String("error", err.Error()))
		respond.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
