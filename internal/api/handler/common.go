package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/furnet/instance-server/internal/domain"
	"github.com/google/uuid"
)

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, status int, reason, message string) {
	respondJSON(w, status, &domain.APIError{
		Code:    status,
		Message: message,
		Reason:  reason,
	})
}

// handleError converts domain errors to HTTP errors. Each error in the
// registration taxonomy keeps its own reason code so callers can tell a
// duplicate from a full directory even though both answer 400.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, domain.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, domain.ErrCodeInvalidInput, err.Error())
	case errors.Is(err, domain.ErrInvalidPeerResponse):
		respondError(w, http.StatusBadRequest, domain.ErrCodeInvalidPeerResponse, err.Error())
	case errors.Is(err, domain.ErrSelfFriend):
		respondError(w, http.StatusBadRequest, domain.ErrCodeSelfFriend, err.Error())
	case errors.Is(err, domain.ErrDuplicateFriend):
		respondError(w, http.StatusBadRequest, domain.ErrCodeDuplicateFriend, err.Error())
	case errors.Is(err, domain.ErrDirectoryFull):
		respondError(w, http.StatusBadRequest, domain.ErrCodeDirectoryFull, err.Error())
	case errors.Is(err, domain.ErrUntrustedDomain):
		respondError(w, http.StatusForbidden, domain.ErrCodeUntrustedDomain, err.Error())
	case errors.Is(err, domain.ErrPeerUnreachable):
		respondError(w, http.StatusBadGateway, domain.ErrCodePeerUnreachable, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, domain.ErrCodeInternalError, "internal server error")
	}
}

// decodeJSON decodes JSON from request body.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

// generateID generates a new UUID.
func generateID() string {
	return uuid.New().String()
}
