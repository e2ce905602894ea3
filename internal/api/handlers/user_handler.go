package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/medapi/internal/services"
	"github.com/rs/zerolog"
)

// UserHandler handles HTTP requests for patient records.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles registering a new user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createUserPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	user, err := h.service.CreateUser(r.Context(), payload.toModel())
	if err != nil {
		respondServiceError(w, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("username", payload.Username)
		}, "Failed to create user")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// GetAll handles listing users page by page.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	skip, limit, problems := pagination(r)
	if len(problems) > 0 {
		respondError(w, http.StatusUnprocessableEntity, problems)
		return
	}

	users, err := h.service.ListUsers(r.Context(), skip, limit)
	if err != nil {
		respondServiceError(w, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Int("skip", skip).Int("limit", limit)
		}, "Failed to retrieve users")
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, withUserID(id), "Failed to get user by ID")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Update handles a partial update of a user's profile.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload updateUserPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, payload.toModel())
	if err != nil {
		respondServiceError(w, err, withUserID(id), "Failed to update user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Delete handles removing a user and, with them, their lab results.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.DeleteUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, withUserID(id), "Failed to delete user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func withUserID(id string) func(*zerolog.Event) *zerolog.Event {
	return func(e *zerolog.Event) *zerolog.Event { return e.Str("user_id", id) }
}
