package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"parkvue/internal/repository"
	"parkvue/internal/service"
)

// writeServiceError maps service and repository errors onto HTTP statuses.
// NotAvailable and NotFound are terminal, not transient, so they get conflict
// and not-found statuses rather than retry hints.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		http.Error(w, vErr.Message, http.StatusBadRequest)
	case errors.Is(err, repository.ErrNoSpotAvailable):
		http.Error(w, "No parking spots available for the selected plan", http.StatusConflict)
	case errors.Is(err, repository.ErrBookingNotFound):
		http.Error(w, "No active booking found with these details", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidOTP):
		http.Error(w, "Invalid OTP", http.StatusBadRequest)
	case errors.Is(err, service.ErrOTPExpired):
		http.Error(w, "OTP expired, please request a new one", http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
