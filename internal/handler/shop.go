package handler

import (
	"net/http"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/logger"
)

// BuyItemRequest represents the shop purchase request body
type BuyItemRequest struct {
	ItemType    string `json:"itemType" validate:"required,itemtype"`
	ClassOrType string `json:"classOrType" validate:"required,max=64"`
	Qty         int    `json:"qty" validate:"omitempty,min=1,max=50"`
}

// BuyShopItem handles the shop buy endpoint
func (h *GameHandler) BuyShopItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req BuyItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy shop item"); err != nil {
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	if err := h.svc.BuyShopItem(r.Context(), userID, req.ItemType, req.ClassOrType, req.Qty); err != nil {
		respondServiceError(w, r, "Buy shop item", err)
		return
	}

	logger.FromContext(r.Context()).Info("Shop purchase",
		"userID", userID, "itemType", req.ItemType, "classOrType", req.ClassOrType, "qty", req.Qty)
	respondJSON(w, http.StatusOK, OKResponse{OK: true})
}

// BuyTrap handles the trap purchase endpoint. The trap lands on the first
// floor with free capacity.
func (h *GameHandler) BuyTrap(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	if err := h.svc.BuyTrap(r.Context(), userID); err != nil {
		respondServiceError(w, r, "Buy trap", err)
		return
	}

	logger.FromContext(r.Context()).Info("Trap purchased", "userID", userID)
	respondJSON(w, http.StatusOK, OKResponse{OK: true})
}

// BuyFloorResponse returns the newly unlocked floor
type BuyFloorResponse struct {
	OK    bool         `json:"ok"`
	Floor domain.Floor `json:"floor"`
}

// BuyFloor handles the next-floor purchase endpoint
func (h *GameHandler) BuyFloor(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	floor, err := h.svc.BuyFloor(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Buy floor", err)
		return
	}

	logger.FromContext(r.Context()).Info("Floor purchased", "userID", userID, "floorIdx", floor.Idx)
	respondJSON(w, http.StatusOK, BuyFloorResponse{OK: true, Floor: *floor})
}

// SellSeedRequest represents the sell-to-shop request body
type SellSeedRequest struct {
	SeedID int64 `json:"seedId" validate:"required,gt=0"`
}

// SellSeedResponse reports the coins paid by the shop
type SellSeedResponse struct {
	OK   bool  `json:"ok"`
	Paid int64 `json:"paid"`
}

// SellToShop handles the sell-to-shop endpoint. Only mature seeds sell.
func (h *GameHandler) SellToShop(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req SellSeedRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell to shop"); err != nil {
		return
	}

	paid, err := h.svc.SellToShop(r.Context(), userID, req.SeedID)
	if err != nil {
		respondServiceError(w, r, "Sell to shop", err)
		return
	}

	logger.FromContext(r.Context()).Info("Seed sold to shop", "userID", userID, "seedID", req.SeedID, "paid", paid)
	respondJSON(w, http.StatusOK, SellSeedResponse{OK: true, Paid: paid})
}
