package handler

import (
	"net/http"

	"github.com/hieuluvjingliu/GardenBred/internal/logger"
)

// BreedRequest represents the breed request body
type BreedRequest struct {
	SeedAID int64 `json:"seedAId" validate:"required,gt=0"`
	SeedBID int64 `json:"seedBId" validate:"required,gt=0"`
}

// BreedResponse reports the bred output class and its base price
type BreedResponse struct {
	OK       bool   `json:"ok"`
	OutClass string `json:"outClass"`
	Base     int64  `json:"base"`
}

// Breed handles the breed endpoint. Both input seeds must be mature and are
// consumed; the output seed starts not-mature.
func (h *GameHandler) Breed(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req BreedRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Breed"); err != nil {
		return
	}

	result, err := h.svc.Breed(r.Context(), userID, req.SeedAID, req.SeedBID)
	if err != nil {
		respondServiceError(w, r, "Breed", err)
		return
	}

	logger.FromContext(r.Context()).Info("Seeds bred",
		"userID", userID, "seedAID", req.SeedAID, "seedBID", req.SeedBID, "outClass", result.OutClass)
	respondJSON(w, http.StatusOK, BreedResponse{OK: true, OutClass: result.OutClass, Base: result.Base})
}
