package handler

import (
	"net/http"

	"github.com/hieuluvjingliu/GardenBred/internal/logger"
)

// PlacePotRequest represents the place-pot request body
type PlacePotRequest struct {
	FloorID int64 `json:"floorId" validate:"required,gt=0"`
	Slot    int   `json:"slot" validate:"required,gt=0"`
	PotID   int64 `json:"potId" validate:"required,gt=0"`
}

// PlacePot handles the place-pot endpoint
func (h *GameHandler) PlacePot(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req PlacePotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place pot"); err != nil {
		return
	}

	if err := h.svc.PlacePot(r.Context(), userID, req.FloorID, req.Slot, req.PotID); err != nil {
		respondServiceError(w, r, "Place pot", err)
		return
	}

	logger.FromContext(r.Context()).Info("Pot placed",
		"userID", userID, "floorID", req.FloorID, "slot", req.Slot, "potID", req.PotID)
	respondJSON(w, http.StatusOK, OKResponse{OK: true})
}

// PlantRequest represents the plant request body
type PlantRequest struct {
	FloorID int64 `json:"floorId" validate:"required,gt=0"`
	Slot    int   `json:"slot" validate:"required,gt=0"`
	SeedID  int64 `json:"seedId" validate:"required,gt=0"`
}

// PlantResponse reports when the planted crop matures
type PlantResponse struct {
	OK       bool  `json:"ok"`
	MatureAt int64 `json:"mature_at"`
}

// Plant handles the plant endpoint
func (h *GameHandler) Plant(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req PlantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant"); err != nil {
		return
	}

	matureAt, err := h.svc.Plant(r.Context(), userID, req.FloorID, req.Slot, req.SeedID)
	if err != nil {
		respondServiceError(w, r, "Plant", err)
		return
	}

	logger.FromContext(r.Context()).Info("Seed planted",
		"userID", userID, "floorID", req.FloorID, "slot", req.Slot, "seedID", req.SeedID, "matureAt", matureAt)
	respondJSON(w, http.StatusOK, PlantResponse{OK: true, MatureAt: matureAt})
}

// HarvestRequest represents the harvest request body
type HarvestRequest struct {
	PlotID int64 `json:"plotId" validate:"required,gt=0"`
}

// Harvest handles the harvest endpoint
func (h *GameHandler) Harvest(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req HarvestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest"); err != nil {
		return
	}

	if err := h.svc.Harvest(r.Context(), userID, req.PlotID); err != nil {
		respondServiceError(w, r, "Harvest", err)
		return
	}

	logger.FromContext(r.Context()).Info("Plot harvested", "userID", userID, "plotID", req.PlotID)
	respondJSON(w, http.StatusOK, OKResponse{OK: true})
}

// HarvestAllResponse reports how many plots were harvested
type HarvestAllResponse struct {
	OK        bool `json:"ok"`
	Harvested int  `json:"harvested"`
}

// HarvestAll handles the harvest-all endpoint, collecting every mature plot
func (h *GameHandler) HarvestAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	harvested, err := h.svc.HarvestAll(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Harvest all", err)
		return
	}

	logger.FromContext(r.Context()).Info("Harvest all", "userID", userID, "harvested", harvested)
	respondJSON(w, http.StatusOK, HarvestAllResponse{OK: true, Harvested: harvested})
}

// RemovePlotRequest represents the plot remove request body
type RemovePlotRequest struct {
	FloorID int64 `json:"floorId" validate:"required,gt=0"`
	Slot    int   `json:"slot" validate:"required,gt=0"`
}

// RemovePlot handles the plot remove endpoint. Clearing a plot destroys
// its pot and any crop in it.
func (h *GameHandler) RemovePlot(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req RemovePlotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Remove plot"); err != nil {
		return
	}

	if err := h.svc.RemovePlot(r.Context(), userID, req.FloorID, req.Slot); err != nil {
		respondServiceError(w, r, "Remove plot", err)
		return
	}

	logger.FromContext(r.Context()).Info("Plot cleared", "userID", userID, "floorID", req.FloorID, "slot", req.Slot)
	respondJSON(w, http.StatusOK, OKResponse{OK: true})
}
