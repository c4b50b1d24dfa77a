package game

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hieuluvjingliu/GardenBred/internal/breed"
	"github.com/hieuluvjingliu/GardenBred/internal/concurrency"
	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/repository/memory"
)

// fakeClock is a manually advanced millisecond clock
type fakeClock struct {
	mu  sync.Mutex
	now int64
}

func (c *fakeClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(millis int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += millis
}

// recordingNotifier collects Notify calls for push-signal assertions
type recordingNotifier struct {
	mu    sync.Mutex
	calls []int64
}

func (n *recordingNotifier) Notify(userID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, userID)
}

func (n *recordingNotifier) callsFor(userID int64) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, id := range n.calls {
		if id == userID {
			count++
		}
	}
	return count
}

type fixture struct {
	store    *memory.Store
	svc      *service
	clock    *fakeClock
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	clock := &fakeClock{now: 1_000_000}
	notifier := &recordingNotifier{}
	return &fixture{
		store:    store,
		clock:    clock,
		notifier: notifier,
		svc: &service{
			store:    store,
			breeds:   breed.NewStaticProvider(breed.NewTable(breed.DefaultRecipes)),
			locks:    concurrency.NewLockManager(),
			notifier: notifier,
			now:      clock.Now,
		},
	}
}

// newUser registers a user with the starting balance and one ten-plot floor
func (f *fixture) newUser(t *testing.T, username string) (userID, floorID int64) {
	t.Helper()
	ctx := context.Background()
	user, err := f.store.GetOrCreateUser(ctx, username, StartingCoins, f.clock.Now())
	require.NoError(t, err)
	floor, err := f.store.CreateFloor(ctx, user.ID, 1, PlotsPerFloor)
	require.NoError(t, err)
	return user.ID, floor.ID
}

func (f *fixture) coins(t *testing.T, userID int64) int64 {
	t.Helper()
	user, err := f.store.GetUserByID(context.Background(), userID)
	require.NoError(t, err)
	return user.Coins
}

func (f *fixture) giveSeed(t *testing.T, userID int64, class string, base int64, mature bool) int64 {
	t.Helper()
	seed, err := f.store.AddSeed(context.Background(), userID, class, base, mature)
	require.NoError(t, err)
	return seed.ID
}

func (f *fixture) givePot(t *testing.T, userID int64, potType string) int64 {
	t.Helper()
	spec, ok := domain.PotSpecs[potType]
	require.True(t, ok)
	pot, err := f.store.AddPot(context.Background(), userID, potType, spec.SpeedMult, spec.YieldMult)
	require.NoError(t, err)
	return pot.ID
}

// pottedPlot places a fresh pot of the given type into slot 1 and returns
// the plot ID
func (f *fixture) pottedPlot(t *testing.T, userID, floorID int64, potType string) int64 {
	t.Helper()
	ctx := context.Background()
	potID := f.givePot(t, userID, potType)
	require.NoError(t, f.svc.PlacePot(ctx, userID, floorID, 1, potID))
	plot, err := f.store.GetPlotBySlot(ctx, floorID, 1)
	require.NoError(t, err)
	return plot.ID
}

// plantedPlot plants a fresh not-mature seed of class into a potted slot 1
// and returns (plotID, matureAt)
func (f *fixture) plantedPlot(t *testing.T, userID, floorID int64, class string) (int64, int64) {
	t.Helper()
	ctx := context.Background()
	plotID := f.pottedPlot(t, userID, floorID, domain.PotBasic)
	seedID := f.giveSeed(t, userID, class, 100, false)
	matureAt, err := f.svc.Plant(ctx, userID, floorID, 1, seedID)
	require.NoError(t, err)
	return plotID, matureAt
}
