package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rabermudezg13/coffee-cupping-app/internal/scoring"
	"github.com/rabermudezg13/coffee-cupping-app/internal/service"
	"github.com/rabermudezg13/coffee-cupping-app/internal/validation"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service-layer errors to HTTP responses.
// Unknown errors are logged and reported as a generic 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr validation.ValidationError
	var rangeErr *scoring.RangeError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &rangeErr),
		errors.Is(err, service.ErrInvalidResponse),
		errors.Is(err, service.ErrNoInviteesResolved),
		errors.Is(err, service.ErrCoffeeNameMissing),
		errors.Is(err, service.ErrShopNameMissing),
		errors.Is(err, service.ErrRatingOutOfRange),
		errors.Is(err, service.ErrInvalidResetToken):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrCuppingNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrBagNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes a request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(dst)
}
