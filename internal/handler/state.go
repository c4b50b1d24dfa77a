package handler

import (
	"net/http"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
)

// FetchState handles the state endpoint, returning the caller's full
// snapshot (identical shape to the pushed one)
func (h *GameHandler) FetchState(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	snapshot, err := h.svc.FetchState(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Fetch state", err)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// OnlineUsersResponse lists recently seen users
type OnlineUsersResponse struct {
	Users []domain.User `json:"users"`
}

// OnlineUsers handles the online endpoint
func (h *GameHandler) OnlineUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := mustUserID(w, r); !ok {
		return
	}

	users, err := h.svc.OnlineUsers(r.Context())
	if err != nil {
		respondServiceError(w, r, "List online users", err)
		return
	}

	respondJSON(w, http.StatusOK, OnlineUsersResponse{Users: users})
}

// VisitFloorsResponse lists another user's floors
type VisitFloorsResponse struct {
	Floors []domain.Floor `json:"floors"`
}

// VisitFloors handles the visit floors endpoint
func (h *GameHandler) VisitFloors(w http.ResponseWriter, r *http.Request) {
	if _, ok := mustUserID(w, r); !ok {
		return
	}

	targetUserID, ok := GetInt64QueryParam(r, w, "userId")
	if !ok {
		return
	}

	floors, err := h.svc.VisitFloors(r.Context(), targetUserID)
	if err != nil {
		respondServiceError(w, r, "Visit floors", err)
		return
	}

	respondJSON(w, http.StatusOK, VisitFloorsResponse{Floors: floors})
}

// VisitFloor handles the visit floor endpoint, the read-only view a raider
// scouts before stealing
func (h *GameHandler) VisitFloor(w http.ResponseWriter, r *http.Request) {
	if _, ok := mustUserID(w, r); !ok {
		return
	}

	floorID, ok := GetInt64QueryParam(r, w, "floorId")
	if !ok {
		return
	}

	view, err := h.svc.VisitFloor(r.Context(), floorID)
	if err != nil {
		respondServiceError(w, r, "Visit floor", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}
