package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/economy"
)

func TestFetchState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "viewer")
	f.plantedPlot(t, userID, floorID, "water")
	f.giveSeed(t, userID, "fire", 100, false)
	f.givePot(t, userID, domain.PotGold)

	sellerID, _ := f.newUser(t, "seller")
	f.openListing(t, sellerID, "steam", 160, 200)

	snap, err := f.svc.FetchState(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, userID, snap.Me.ID)
	assert.Equal(t, StartingCoins, snap.Me.Coins)

	require.Len(t, snap.Floors, 1)
	require.Len(t, snap.Floors[0].Plots, PlotsPerFloor)
	planted := snap.Floors[0].Plots[0]
	assert.Equal(t, domain.StagePlanted, planted.Stage)
	require.NotNil(t, planted.Class)
	assert.Equal(t, "water", *planted.Class)
	require.NotNil(t, planted.BasePrice)
	assert.Equal(t, economy.DefaultBasePrice, *planted.BasePrice)

	assert.Len(t, snap.SeedInv, 1)
	assert.Len(t, snap.PotInv, 1)

	// the market board is shared, so the other seller's listing shows up
	require.Len(t, snap.Market, 1)
	assert.Equal(t, "steam", snap.Market[0].Class)

	// one floor unlocked
	assert.Equal(t, economy.TrapUnitPrice, snap.TrapPrice)
	assert.Equal(t, economy.TrapsPerFloor, snap.TrapMax)
}

func TestFetchStateUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.FetchState(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestOnlineUsersNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newUser(t, "first")
	secondID, _ := f.newUser(t, "second")

	users, err := f.svc.OnlineUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, secondID, users[0].ID)
}

func TestVisitFloors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	targetID, floorID := f.newUser(t, "target")

	floors, err := f.svc.VisitFloors(ctx, targetID)
	require.NoError(t, err)
	require.Len(t, floors, 1)
	assert.Equal(t, floorID, floors[0].ID)

	_, err = f.svc.VisitFloors(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestVisitFloorReadOnlyView(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	targetID, floorID := f.newUser(t, "target")
	f.plantedPlot(t, targetID, floorID, "water")

	view, err := f.svc.VisitFloor(ctx, floorID)
	require.NoError(t, err)
	assert.Equal(t, floorID, view.Floor.ID)
	require.Len(t, view.Plots, PlotsPerFloor)
	assert.Equal(t, domain.StagePlanted, view.Plots[0].Stage)

	_, err = f.svc.VisitFloor(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrFloorNotFound)
}
