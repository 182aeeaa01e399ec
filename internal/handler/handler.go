// Package handler contains the chi HTTP handlers that translate requests
// and responses to and from the registration engine.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mergington/activity-signups/internal/catalog"
	"github.com/mergington/activity-signups/internal/model"
	"github.com/mergington/activity-signups/internal/service"
)

// ActivityHandler holds the HTTP handlers for the sign-up API.
type ActivityHandler struct {
	svc *service.Service
}

// NewActivityHandler constructs an ActivityHandler.
func NewActivityHandler(svc *service.Service) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// ListActivities handles GET /activities.
// Returns the full catalog as a JSON object keyed by activity name.
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.List(r.Context()))
}

// Signup handles POST /activities/{name}/signup?email=...
func (h *ActivityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	email := r.URL.Query().Get("email")
	if email == "" {
		// Structural validation failure; the engine is never invoked.
		writeError(w, http.StatusUnprocessableEntity, "missing required query parameter: email")
		return
	}

	conf, err := h.svc.Signup(r.Context(), name, email)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyRegistered),
			errors.Is(err, service.ErrActivityFull):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to sign up")
		}
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", conf.Email, conf.Activity),
	})
}

// RemoveParticipant handles DELETE /activities/{name}/participants/{email}.
func (h *ActivityHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	email := pathParam(r, "email")

	conf, err := h.svc.Remove(r.Context(), name, email)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove participant")
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{
		Message: fmt.Sprintf("Removed %s from %s", conf.Email, conf.Activity),
	})
}

// HealthCheck handles GET /health.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathParam returns the decoded URL parameter; activity names contain
// spaces, so the raw match is percent-encoded.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, model.ErrorResponse{Detail: detail})
}
