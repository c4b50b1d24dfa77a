package game

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/economy"
)

func TestPlacePot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "potter")
	potID := f.givePot(t, userID, domain.PotBasic)

	require.NoError(t, f.svc.PlacePot(ctx, userID, floorID, 1, potID))

	plot, err := f.store.GetPlotBySlot(ctx, floorID, 1)
	require.NoError(t, err)
	require.True(t, plot.HasPot())
	assert.Equal(t, domain.PotBasic, *plot.PotType)
	assert.Equal(t, domain.StageEmpty, plot.Stage)

	// placed pot leaves the inventory
	_, err = f.store.GetPot(ctx, potID, userID)
	assert.ErrorIs(t, err, domain.ErrPotNotFound)
}

func TestPlacePotRejectsOccupiedPlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "potter")
	f.pottedPlot(t, userID, floorID, domain.PotBasic)

	secondPot := f.givePot(t, userID, domain.PotGold)
	err := f.svc.PlacePot(ctx, userID, floorID, 1, secondPot)
	assert.ErrorIs(t, err, domain.ErrPlotOccupied)

	// the rejected pot stays in the inventory
	_, err = f.store.GetPot(ctx, secondPot, userID)
	assert.NoError(t, err)
}

func TestPlacePotRejectsForeignFloor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "potter")
	_, otherFloorID := f.newUser(t, "other")
	potID := f.givePot(t, userID, domain.PotBasic)

	err := f.svc.PlacePot(ctx, userID, otherFloorID, 1, potID)
	assert.ErrorIs(t, err, domain.ErrNotYourFloor)
}

func TestPlantBasicPot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "planter")
	f.pottedPlot(t, userID, floorID, domain.PotBasic)
	seedID := f.giveSeed(t, userID, "water", 100, false)

	plantedAt := f.clock.Now()
	matureAt, err := f.svc.Plant(ctx, userID, floorID, 1, seedID)
	require.NoError(t, err)
	assert.Equal(t, plantedAt+economy.PrimordialGrowMillis, matureAt)

	plot, err := f.store.GetPlotBySlot(ctx, floorID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StagePlanted, plot.Stage)
	require.NotNil(t, plot.Class)
	assert.Equal(t, "water", *plot.Class)
	require.NotNil(t, plot.MatureAt)
	assert.Equal(t, matureAt, *plot.MatureAt)

	// the planted seed leaves the inventory
	_, err = f.store.GetSeed(ctx, seedID, userID)
	assert.ErrorIs(t, err, domain.ErrSeedNotFound)
}

func TestPlantTimeskipPotSpeedsGrowth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "planter")
	f.pottedPlot(t, userID, floorID, domain.PotTimeskip)
	seedID := f.giveSeed(t, userID, "water", 100, false)

	plantedAt := f.clock.Now()
	matureAt, err := f.svc.Plant(ctx, userID, floorID, 1, seedID)
	require.NoError(t, err)
	// 5 min * 0.67 = 201000 ms
	assert.Equal(t, plantedAt+201_000, matureAt)
}

func TestPlantBredClassGrowsSlower(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "planter")
	f.pottedPlot(t, userID, floorID, domain.PotBasic)
	seedID := f.giveSeed(t, userID, "steam", 160, false)

	plantedAt := f.clock.Now()
	matureAt, err := f.svc.Plant(ctx, userID, floorID, 1, seedID)
	require.NoError(t, err)
	assert.Equal(t, plantedAt+economy.BredGrowMillis, matureAt)
}

func TestPlantRejectsMatureSeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "planter")
	f.pottedPlot(t, userID, floorID, domain.PotBasic)
	seedID := f.giveSeed(t, userID, "water", 100, true)

	_, err := f.svc.Plant(ctx, userID, floorID, 1, seedID)
	assert.ErrorIs(t, err, domain.ErrSeedNotPlantable)
}

func TestPlantRejectsPotlessPlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "planter")
	seedID := f.giveSeed(t, userID, "water", 100, false)

	_, err := f.svc.Plant(ctx, userID, floorID, 1, seedID)
	assert.ErrorIs(t, err, domain.ErrPlotHasNoPot)
}

func TestPlantRejectsBusyPlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "planter")
	f.plantedPlot(t, userID, floorID, "water")

	secondSeed := f.giveSeed(t, userID, "fire", 100, false)
	_, err := f.svc.Plant(ctx, userID, floorID, 1, secondSeed)
	assert.ErrorIs(t, err, domain.ErrPlotBusy)

	// the losing seed is untouched
	_, err = f.store.GetSeed(ctx, secondSeed, userID)
	assert.NoError(t, err)
}

func TestPlantConcurrentSamePlotOneWinner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "planter")
	f.pottedPlot(t, userID, floorID, domain.PotBasic)

	const attempts = 8
	seedIDs := make([]int64, attempts)
	for i := range seedIDs {
		seedIDs[i] = f.giveSeed(t, userID, "water", 100, false)
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Plant(ctx, userID, floorID, 1, seedIDs[i])
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrPlotBusy)
		}
	}
	assert.Equal(t, 1, wins, "exactly one plant lands")

	seeds, err := f.store.ListSeeds(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, seeds, attempts-1, "only the winner's seed is consumed")
}

func TestHarvestMaturePlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "farmer")
	plotID, matureAt := f.plantedPlot(t, userID, floorID, "water")

	f.clock.Advance(matureAt - f.clock.Now())
	require.NoError(t, f.svc.SweepGrowth(ctx))

	require.NoError(t, f.svc.Harvest(ctx, userID, plotID))

	seeds, err := f.store.ListSeeds(ctx, userID)
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, "water", seeds[0].Class)
	assert.Equal(t, economy.DefaultBasePrice, seeds[0].BasePrice)
	assert.True(t, seeds[0].Mature, "harvested seeds are mature")

	// the pot stays, ready for the next crop
	plot, err := f.store.GetPlot(ctx, plotID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageEmpty, plot.Stage)
	assert.True(t, plot.HasPot())
	assert.False(t, plot.HasCrop())
	assert.Nil(t, plot.MatureAt)
}

func TestHarvestRejectsNotMature(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "farmer")
	plotID, _ := f.plantedPlot(t, userID, floorID, "water")

	err := f.svc.Harvest(ctx, userID, plotID)
	assert.ErrorIs(t, err, domain.ErrPlotNotMature)

	plot, err := f.store.GetPlot(ctx, plotID)
	require.NoError(t, err)
	assert.Equal(t, domain.StagePlanted, plot.Stage)
}

func TestHarvestForeignPlotNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "farmer")
	otherID, otherFloorID := f.newUser(t, "other")
	plotID, matureAt := f.plantedPlot(t, otherID, otherFloorID, "water")
	f.clock.Advance(matureAt - f.clock.Now())
	require.NoError(t, f.svc.SweepGrowth(ctx))

	err := f.svc.Harvest(ctx, userID, plotID)
	assert.ErrorIs(t, err, domain.ErrPlotNotFound)
}

func TestHarvestAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "farmer")

	// three potted slots, two planted, one left fallow
	for slot := 1; slot <= 3; slot++ {
		potID := f.givePot(t, userID, domain.PotBasic)
		require.NoError(t, f.svc.PlacePot(ctx, userID, floorID, slot, potID))
	}
	var lastMature int64
	for slot := 1; slot <= 2; slot++ {
		seedID := f.giveSeed(t, userID, "fire", 100, false)
		matureAt, err := f.svc.Plant(ctx, userID, floorID, slot, seedID)
		require.NoError(t, err)
		lastMature = matureAt
	}

	f.clock.Advance(lastMature - f.clock.Now())
	require.NoError(t, f.svc.SweepGrowth(ctx))

	count, err := f.svc.HarvestAll(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	seeds, err := f.store.ListSeeds(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, seeds, 2)

	// nothing left to harvest
	count, err = f.svc.HarvestAll(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRemovePlotDestroysPotAndCrop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "farmer")
	plotID, _ := f.plantedPlot(t, userID, floorID, "water")

	require.NoError(t, f.svc.RemovePlot(ctx, userID, floorID, 1))

	plot, err := f.store.GetPlot(ctx, plotID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageEmpty, plot.Stage)
	assert.False(t, plot.HasPot())
	assert.False(t, plot.HasCrop())

	// neither pot nor seed comes back to the inventory
	pots, err := f.store.ListPots(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, pots)
	seeds, err := f.store.ListSeeds(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestRemovePlotForeignFloor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "farmer")
	_, otherFloorID := f.newUser(t, "other")

	err := f.svc.RemovePlot(ctx, userID, otherFloorID, 1)
	assert.ErrorIs(t, err, domain.ErrNotYourFloor)
}
