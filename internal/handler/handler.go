package handler

import (
	"github.com/hieuluvjingliu/GardenBred/internal/game"
)

// GameHandler binds the game engine's actions to HTTP. All routes behind
// it require the auth middleware; the user id always comes from the
// session, never from the request body.
type GameHandler struct {
	svc game.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(svc game.Service) *GameHandler {
	return &GameHandler{svc: svc}
}
