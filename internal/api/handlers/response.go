package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/isdelr/medapi/internal/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Detail any `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, detail any) {
	respondJSON(w, status, errorResponse{Detail: detail})
}

// respondServiceError maps a service error onto its HTTP status. Expected
// failures are logged at debug since the request line already records the
// status; unexpected errors are logged with their cause and hidden from the client.
func respondServiceError(w http.ResponseWriter, err error, event func(*zerolog.Event) *zerolog.Event, msg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		event(log.Debug()).Err(err).Msg(msg)
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		event(log.Debug()).Err(err).Msg(msg)
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		event(log.Error()).Err(err).Msg(msg)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pagination reads the skip and limit query parameters.
func pagination(r *http.Request) (skip, limit int, problems []fieldError) {
	skip, limit = 0, defaultLimit
	q := r.URL.Query()

	if raw := q.Get("skip"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			problems = append(problems, fieldError{Field: "skip", Message: "must be a non-negative integer"})
		} else {
			skip = v
		}
	}
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			problems = append(problems, fieldError{Field: "limit", Message: "must be a non-negative integer"})
		} else {
			limit = min(v, maxLimit)
		}
	}
	return skip, limit, problems
}
