package push

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hieuluvjingliu/GardenBred/internal/logger"
)

// WSHandler upgrades authenticated requests to websocket connections and
// bridges them onto the hub.
type WSHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewWSHandler creates a websocket handler for the hub.
func NewWSHandler(hub *Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and streams pushes for userID until the
// connection drops. The caller has already authenticated the user.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request, userID int64) {
	log := logger.FromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("Websocket upgrade failed", "userID", userID, "error", err)
		return
	}
	defer conn.Close()

	client := h.hub.Attach(userID)
	defer h.hub.Detach(userID, client)
	log.Info("Websocket client connected", "userID", userID)

	done := make(chan struct{})

	// Writer: drain pushes and keep the connection alive with pings.
	go func() {
		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-client.Out:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(time.Second))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// Reader: clients send nothing meaningful; the loop exists to notice
	// disconnects and service pongs.
	_ = conn.SetReadDeadline(time.Now().Add(ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(ReadTimeout))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(ReadTimeout))
	}

	close(done)
	log.Info("Websocket client disconnected", "userID", userID)
}
