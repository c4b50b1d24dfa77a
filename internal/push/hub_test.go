package push

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
)

func newTestHub(t *testing.T, builds *atomic.Int64) *Hub {
	t.Helper()
	h := NewHub(20 * time.Millisecond)
	h.SetSource(func(ctx context.Context, userID int64) (*domain.StateSnapshot, error) {
		if builds != nil {
			builds.Add(1)
		}
		return &domain.StateSnapshot{Me: domain.User{ID: userID, Username: "tester"}}, nil
	})
	t.Cleanup(h.Stop)
	return h
}

func TestHubDebounceCollapsesBurst(t *testing.T) {
	var builds atomic.Int64
	h := newTestHub(t, &builds)

	c := h.Attach(7)
	defer h.Detach(7, c)

	for i := 0; i < 5; i++ {
		h.Notify(7)
	}

	select {
	case msg := <-c.Out:
		var got struct {
			Type  string               `json:"type"`
			State domain.StateSnapshot `json:"state"`
		}
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "state", got.Type)
		assert.Equal(t, int64(7), got.State.Me.ID)
	case <-time.After(time.Second):
		t.Fatal("no push received")
	}

	// The burst settles into exactly one snapshot build and one push.
	assert.Equal(t, int64(1), builds.Load())
	select {
	case <-c.Out:
		t.Fatal("unexpected second push")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubNotifyRearmsPendingTimer(t *testing.T) {
	var builds atomic.Int64
	h := newTestHub(t, &builds)

	c := h.Attach(1)
	defer h.Detach(1, c)

	// Keep poking inside the window; the flush should not fire until the
	// pokes stop.
	for i := 0; i < 4; i++ {
		h.Notify(1)
		time.Sleep(5 * time.Millisecond)
		assert.Equal(t, int64(0), builds.Load())
	}

	select {
	case <-c.Out:
	case <-time.After(time.Second):
		t.Fatal("no push after notifications stopped")
	}
	assert.Equal(t, int64(1), builds.Load())
}

func TestHubPushesOnlyTargetUser(t *testing.T) {
	h := newTestHub(t, nil)

	alice := h.Attach(1)
	bob := h.Attach(2)
	defer h.Detach(1, alice)
	defer h.Detach(2, bob)

	h.Notify(1)

	select {
	case <-alice.Out:
	case <-time.After(time.Second):
		t.Fatal("target user got no push")
	}
	select {
	case <-bob.Out:
		t.Fatal("uninvolved user got a push")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubMultipleClientsSameUser(t *testing.T) {
	h := newTestHub(t, nil)

	c1 := h.Attach(3)
	c2 := h.Attach(3)
	defer h.Detach(3, c1)
	defer h.Detach(3, c2)

	require.Equal(t, 2, h.ClientCount(3))

	h.Notify(3)

	for _, c := range []*Client{c1, c2} {
		select {
		case <-c.Out:
		case <-time.After(time.Second):
			t.Fatal("client missed push")
		}
	}
}

func TestHubDetachClosesChannel(t *testing.T) {
	h := newTestHub(t, nil)

	c := h.Attach(9)
	h.Detach(9, c)

	_, open := <-c.Out
	assert.False(t, open)
	assert.Equal(t, 0, h.ClientCount(9))

	// Detaching twice is harmless.
	h.Detach(9, c)
}

func TestHubNotifyWithoutClientsSkipsBuild(t *testing.T) {
	var builds atomic.Int64
	h := newTestHub(t, &builds)

	h.Notify(42)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int64(0), builds.Load())
}

func TestHubStopClosesClients(t *testing.T) {
	h := NewHub(10 * time.Millisecond)
	c := h.Attach(5)
	h.Stop()

	_, open := <-c.Out
	assert.False(t, open)

	// Post-stop calls are no-ops.
	h.Notify(5)
	h.Stop()
}
