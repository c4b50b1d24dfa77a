package handler

import (
	"net/http"

	"github.com/hieuluvjingliu/GardenBred/internal/push"
)

// WSHandler upgrades authenticated requests onto the push hub
type WSHandler struct {
	ws *push.WSHandler
}

// NewWSHandler creates a new websocket route handler
func NewWSHandler(ws *push.WSHandler) *WSHandler {
	return &WSHandler{ws: ws}
}

// Connect handles the websocket endpoint. Auth middleware has already
// resolved the session (websocket clients pass the token as a query
// parameter).
func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	h.ws.Serve(w, r, userID)
}
