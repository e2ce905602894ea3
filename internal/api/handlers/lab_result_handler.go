package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/medapi/internal/services"
	"github.com/rs/zerolog"
)

// LabResultHandler handles HTTP requests related to lab results.
type LabResultHandler struct {
	service services.LabResultServiceProvider
}

// NewLabResultHandler creates a new LabResultHandler.
func NewLabResultHandler(service services.LabResultServiceProvider) *LabResultHandler {
	return &LabResultHandler{service: service}
}

func withResultID(id string) func(*zerolog.Event) *zerolog.Event {
	return func(e *zerolog.Event) *zerolog.Event { return e.Str("result_id", id) }
}

// Create handles recording a new lab result for an existing user.
func (h *LabResultHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createLabResultPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	result, err := h.service.CreateLabResult(r.Context(), payload.toModel())
	if err != nil {
		respondServiceError(w, err, withUserID(payload.UserID), "Failed to create lab result")
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// GetAll handles listing lab results across all users.
func (h *LabResultHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	skip, limit, problems := pagination(r)
	if len(problems) > 0 {
		respondError(w, http.StatusUnprocessableEntity, problems)
		return
	}

	results, err := h.service.ListLabResults(r.Context(), skip, limit)
	if err != nil {
		respondServiceError(w, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Int("skip", skip).Int("limit", limit)
		}, "Failed to retrieve lab results")
		return
	}

	respondJSON(w, http.StatusOK, results)
}

// GetByUser handles listing one user's lab results with their total count.
func (h *LabResultHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	skip, limit, problems := pagination(r)
	if len(problems) > 0 {
		respondError(w, http.StatusUnprocessableEntity, problems)
		return
	}

	list, err := h.service.ListUserLabResults(r.Context(), userID, skip, limit)
	if err != nil {
		respondServiceError(w, err, withUserID(userID), "Failed to retrieve user lab results")
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// Get handles retrieving a single lab result by its ID.
func (h *LabResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := h.service.GetLabResultByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, withResultID(id), "Failed to get lab result by ID")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Update handles a partial update of a lab result.
func (h *LabResultHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload updateLabResultPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	result, err := h.service.UpdateLabResult(r.Context(), id, payload.toModel())
	if err != nil {
		respondServiceError(w, err, withResultID(id), "Failed to update lab result")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Delete handles removing a lab result.
func (h *LabResultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := h.service.DeleteLabResult(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, withResultID(id), "Failed to delete lab result")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
