package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/game"
	"github.com/hieuluvjingliu/GardenBred/internal/repository/memory"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(memory.NewStore())
	require.NoError(t, err)
	return m
}

func TestLoginCreatesUserWithStartingState(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	user, token, err := m.Login(ctx, "gardener")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "gardener", user.Username)
	assert.Equal(t, int64(game.StartingCoins), user.Coins)

	floors, err := m.store.ListFloors(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, floors, 1)
	assert.Equal(t, 1, floors[0].Idx)

	plots, err := m.store.ListPlots(ctx, floors[0].ID)
	require.NoError(t, err)
	assert.Len(t, plots, game.PlotsPerFloor)
}

func TestLoginSameUsernameSameUser(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	first, tok1, err := m.Login(ctx, "gardener")
	require.NoError(t, err)
	second, tok2, err := m.Login(ctx, "gardener")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, tok1, tok2)

	// Repeat logins do not stack floors.
	floors, err := m.store.ListFloors(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, floors, 1)
}

func TestLoginRejectsBadUsernames(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	for _, name := range []string{"", "   ", "has space", "semi;colon", "waaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaay_too_long"} {
		_, _, err := m.Login(ctx, name)
		assert.ErrorIs(t, err, domain.ErrInvalidUsername, "username %q", name)
	}

	// Surrounding whitespace is trimmed rather than rejected.
	user, _, err := m.Login(ctx, "  trimmed  ")
	require.NoError(t, err)
	assert.Equal(t, "trimmed", user.Username)
}

func TestResolveToken(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	user, token, err := m.Login(ctx, "gardener")
	require.NoError(t, err)

	got, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got)

	// Cache hit path returns the same mapping.
	got, err = m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got)

	_, err = m.Resolve(ctx, "no-such-token")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = m.Resolve(ctx, "")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestResolveSurvivesCacheMiss(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	user, token, err := m.Login(ctx, "gardener")
	require.NoError(t, err)

	// Simulate a restarted process sharing the store: fresh cache, token
	// still resolves through the store.
	fresh, err := NewManager(m.store)
	require.NoError(t, err)
	got, err := fresh.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got)
}
