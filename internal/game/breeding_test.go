package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
)

func TestBreedSteam(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "breeder")
	seedA := f.giveSeed(t, userID, "water", 100, true)
	seedB := f.giveSeed(t, userID, "fire", 100, true)

	result, err := f.svc.Breed(ctx, userID, seedA, seedB)
	require.NoError(t, err)
	assert.Equal(t, "steam", result.OutClass)
	// floor((100+100) * 0.8)
	assert.Equal(t, int64(160), result.Base)

	// both inputs consumed, one not-mature output
	seeds, err := f.store.ListSeeds(ctx, userID)
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, "steam", seeds[0].Class)
	assert.Equal(t, int64(160), seeds[0].BasePrice)
	assert.False(t, seeds[0].Mature, "bred output must be planted before use")

	// the output class lands in the catalog
	price, ok, err := f.store.BasePrice(ctx, "steam")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(160), price)
}

func TestBreedOrderDoesNotMatter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "breeder")
	seedA := f.giveSeed(t, userID, "fire", 100, true)
	seedB := f.giveSeed(t, userID, "water", 100, true)

	result, err := f.svc.Breed(ctx, userID, seedA, seedB)
	require.NoError(t, err)
	assert.Equal(t, "steam", result.OutClass)
}

func TestBreedNoRecipeKeepsInputs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "breeder")
	seedA := f.giveSeed(t, userID, "fire", 100, true)
	seedB := f.giveSeed(t, userID, "wind", 100, true)

	_, err := f.svc.Breed(ctx, userID, seedA, seedB)
	assert.ErrorIs(t, err, domain.ErrNoBreedRecipe)

	seeds, err := f.store.ListSeeds(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, seeds, 2)
}

func TestBreedRejectsNotMatureInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "breeder")
	seedA := f.giveSeed(t, userID, "water", 100, true)
	seedB := f.giveSeed(t, userID, "fire", 100, false)

	_, err := f.svc.Breed(ctx, userID, seedA, seedB)
	assert.ErrorIs(t, err, domain.ErrSeedNotMature)

	seeds, err := f.store.ListSeeds(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, seeds, 2)
}

func TestBreedRejectsForeignSeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "breeder")
	otherID, _ := f.newUser(t, "other")
	seedA := f.giveSeed(t, userID, "water", 100, true)
	seedB := f.giveSeed(t, otherID, "fire", 100, true)

	_, err := f.svc.Breed(ctx, userID, seedA, seedB)
	assert.ErrorIs(t, err, domain.ErrSeedNotFound)
}

func TestBreedSecondGeneration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "breeder")
	steam := f.giveSeed(t, userID, "steam", 160, true)
	water := f.giveSeed(t, userID, "water", 100, true)

	result, err := f.svc.Breed(ctx, userID, steam, water)
	require.NoError(t, err)
	assert.Equal(t, "cloud", result.OutClass)
	// floor((160+100) * 0.8)
	assert.Equal(t, int64(208), result.Base)
}
