package push

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/logger"
	"github.com/hieuluvjingliu/GardenBred/internal/metrics"
)

// SnapshotFunc builds the full state snapshot for a user. The hub calls it
// when a debounce window fires, so clients always receive state that is at
// least as fresh as the mutation that triggered the push.
type SnapshotFunc func(ctx context.Context, userID int64) (*domain.StateSnapshot, error)

// Client is one attached websocket consumer. The transport layer drains Out;
// the hub never writes to the network itself.
type Client struct {
	Out chan []byte
}

// Hub fans state snapshots out to each user's connected clients. Notify
// calls within the debounce window collapse into a single push per user.
type Hub struct {
	mu       sync.Mutex
	clients  map[int64]map[*Client]struct{}
	timers   map[int64]*time.Timer
	debounce time.Duration
	source   SnapshotFunc
	closed   bool
}

// NewHub creates a hub with the given debounce window.
func NewHub(debounce time.Duration) *Hub {
	return &Hub{
		clients:  make(map[int64]map[*Client]struct{}),
		timers:   make(map[int64]*time.Timer),
		debounce: debounce,
	}
}

// SetSource installs the snapshot builder. Must be called before the first
// Notify; kept separate from NewHub because the engine takes the hub as its
// notifier at construction.
func (h *Hub) SetSource(fn SnapshotFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.source = fn
}

// Attach registers a client for userID and returns it. The caller owns the
// read side of Out until Detach.
func (h *Hub) Attach(userID int64) *Client {
	c := &Client{Out: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.Out)
		return c
	}
	set, ok := h.clients[userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[userID] = set
	}
	set[c] = struct{}{}
	return c
}

// Detach removes a client and closes its channel.
func (h *Hub) Detach(userID int64, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.Out)
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}

// Notify schedules a push for userID. A pending timer is re-armed, so a
// burst of mutations produces one push after the burst settles.
func (h *Hub) Notify(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if t, ok := h.timers[userID]; ok {
		t.Reset(h.debounce)
		return
	}
	h.timers[userID] = time.AfterFunc(h.debounce, func() {
		h.flush(userID)
	})
}

// ClientCount reports the number of clients attached for userID.
func (h *Hub) ClientCount(userID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

// Stop cancels pending pushes and closes every client channel.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for userID, t := range h.timers {
		t.Stop()
		delete(h.timers, userID)
	}
	for userID, set := range h.clients {
		for c := range set {
			close(c.Out)
		}
		delete(h.clients, userID)
	}
}

// flush builds and delivers the snapshot for one user. Runs on the timer
// goroutine after the debounce window elapses.
func (h *Hub) flush(userID int64) {
	h.mu.Lock()
	delete(h.timers, userID)
	if h.closed || len(h.clients[userID]) == 0 || h.source == nil {
		h.mu.Unlock()
		return
	}
	source := h.source
	h.mu.Unlock()

	ctx := context.Background()
	snap, err := source(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn("Snapshot push failed", "userID", userID, "error", err)
		return
	}
	msg, err := json.Marshal(stateMessage{Type: "state", State: snap})
	if err != nil {
		logger.FromContext(ctx).Warn("Snapshot encode failed", "userID", userID, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for c := range h.clients[userID] {
		// Non-blocking send; a client that cannot keep up misses this
		// push and catches up on the next one.
		select {
		case c.Out <- msg:
			metrics.PushesSent.Inc()
		default:
		}
	}
}

type stateMessage struct {
	Type  string                `json:"type"`
	State *domain.StateSnapshot `json:"state"`
}
