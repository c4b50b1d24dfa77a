package handler

import (
	"net/http"

	"github.com/hieuluvjingliu/GardenBred/internal/logger"
)

// StealPlotRequest represents the steal request body
type StealPlotRequest struct {
	TargetUserID int64 `json:"targetUserId" validate:"required,gt=0"`
	FloorID      int64 `json:"floorId" validate:"required,gt=0"`
	PlotID       int64 `json:"plotId" validate:"required,gt=0"`
}

// StealPlot handles the steal endpoint. The outcome body distinguishes
// success, a sprung trap and an unready plot; all three are HTTP 200.
func (h *GameHandler) StealPlot(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req StealPlotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Steal plot"); err != nil {
		return
	}

	outcome, err := h.svc.StealPlot(r.Context(), userID, req.TargetUserID, req.FloorID, req.PlotID)
	if err != nil {
		respondServiceError(w, r, "Steal plot", err)
		return
	}

	logger.FromContext(r.Context()).Info("Steal attempt",
		"userID", userID, "targetUserID", req.TargetUserID, "plotID", req.PlotID,
		"ok", outcome.OK, "trap", outcome.Trap)
	respondJSON(w, http.StatusOK, outcome)
}
