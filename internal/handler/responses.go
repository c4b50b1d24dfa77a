package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/logger"
)

// Standard response types for consistent API responses

// OKResponse represents a bare successful operation
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode to a pooled buffer first so a marshalling failure never
	// produces a half-written body.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// client-facing error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// user-facing messages. Sentinel text is already user-readable, so the
// sentinel's own message is returned; anything unrecognized collapses to a
// generic 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	// Not-found
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrFloorNotFound),
		errors.Is(err, domain.ErrPlotNotFound),
		errors.Is(err, domain.ErrSeedNotFound),
		errors.Is(err, domain.ErrPotNotFound),
		errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, sentinelMessage(err)

	// Auth
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, ErrMsgInvalidSession

	// Ownership
	case errors.Is(err, domain.ErrNotYourFloor):
		return http.StatusForbidden, sentinelMessage(err)

	// State
	case errors.Is(err, domain.ErrPlotOccupied),
		errors.Is(err, domain.ErrPlotHasNoPot),
		errors.Is(err, domain.ErrPlotBusy),
		errors.Is(err, domain.ErrPlotNotMature),
		errors.Is(err, domain.ErrSeedNotMature),
		errors.Is(err, domain.ErrSeedNotPlantable),
		errors.Is(err, domain.ErrListingNotOpen):
		return http.StatusBadRequest, sentinelMessage(err)

	// Economic
	case errors.Is(err, domain.ErrNotEnoughCoins),
		errors.Is(err, domain.ErrAskOutOfBounds),
		errors.Is(err, domain.ErrTrapCapacity),
		errors.Is(err, domain.ErrNoEligibleFloor):
		return http.StatusBadRequest, sentinelMessage(err)

	// Validation
	case errors.Is(err, domain.ErrInvalidItemType),
		errors.Is(err, domain.ErrInvalidPotType),
		errors.Is(err, domain.ErrQtyOutOfRange),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrStealSelf),
		errors.Is(err, domain.ErrNoBreedRecipe):
		return http.StatusBadRequest, sentinelMessage(err)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// sentinelMessage returns the innermost sentinel's own text, dropping the
// wrapping context the service added for its logs
func sentinelMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
