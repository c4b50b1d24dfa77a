package handler

import (
	"net/http"

	"github.com/hieuluvjingliu/GardenBred/internal/logger"
)

// ListSeedRequest represents the market list request body
type ListSeedRequest struct {
	SeedID   int64 `json:"seedId" validate:"required,gt=0"`
	AskPrice int64 `json:"askPrice" validate:"required,gt=0"`
}

// ListOnMarket handles the market list endpoint. The seed goes into escrow:
// it leaves the seller's inventory when the listing opens.
func (h *GameHandler) ListOnMarket(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req ListSeedRequest
	if err := DecodeAndValidateRequest(r, w, &req, "List on market"); err != nil {
		return
	}

	if err := h.svc.ListOnMarket(r.Context(), userID, req.SeedID, req.AskPrice); err != nil {
		respondServiceError(w, r, "List on market", err)
		return
	}

	logger.FromContext(r.Context()).Info("Seed listed",
		"userID", userID, "seedID", req.SeedID, "askPrice", req.AskPrice)
	respondJSON(w, http.StatusOK, OKResponse{OK: true})
}

// BuyListingRequest represents the market buy request body
type BuyListingRequest struct {
	ListingID int64 `json:"listingId" validate:"required,gt=0"`
}

// BuyFromMarket handles the market buy endpoint
func (h *GameHandler) BuyFromMarket(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req BuyListingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy from market"); err != nil {
		return
	}

	if err := h.svc.BuyFromMarket(r.Context(), userID, req.ListingID); err != nil {
		respondServiceError(w, r, "Buy from market", err)
		return
	}

	logger.FromContext(r.Context()).Info("Listing bought", "userID", userID, "listingID", req.ListingID)
	respondJSON(w, http.StatusOK, OKResponse{OK: true})
}
