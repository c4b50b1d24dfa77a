package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/economy"
)

func TestBuyShopItemSeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "buyer")

	err := f.svc.BuyShopItem(ctx, userID, ItemTypeSeed, "water", 3)
	require.NoError(t, err)

	assert.Equal(t, StartingCoins-3*economy.DefaultBasePrice, f.coins(t, userID))

	seeds, err := f.store.ListSeeds(ctx, userID)
	require.NoError(t, err)
	require.Len(t, seeds, 3)
	for _, s := range seeds {
		assert.Equal(t, "water", s.Class)
		assert.Equal(t, economy.DefaultBasePrice, s.BasePrice)
		assert.False(t, s.Mature, "shop seeds start not-mature")
	}
	assert.Equal(t, 1, f.notifier.callsFor(userID))
}

func TestBuyShopItemPot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "buyer")

	err := f.svc.BuyShopItem(ctx, userID, ItemTypePot, domain.PotGold, 2)
	require.NoError(t, err)

	assert.Equal(t, StartingCoins-2*domain.PotSpecs[domain.PotGold].Price, f.coins(t, userID))

	pots, err := f.store.ListPots(ctx, userID)
	require.NoError(t, err)
	require.Len(t, pots, 2)
	assert.Equal(t, domain.PotGold, pots[0].Type)
	assert.Equal(t, 1.5, pots[0].YieldMult)
}

func TestBuyShopItemValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "buyer")

	err := f.svc.BuyShopItem(ctx, userID, ItemTypeSeed, "water", 0)
	assert.ErrorIs(t, err, domain.ErrQtyOutOfRange)

	err = f.svc.BuyShopItem(ctx, userID, ItemTypeSeed, "water", MaxShopQuantity+1)
	assert.ErrorIs(t, err, domain.ErrQtyOutOfRange)

	err = f.svc.BuyShopItem(ctx, userID, "tractor", "water", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidItemType)

	err = f.svc.BuyShopItem(ctx, userID, ItemTypePot, "diamond", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidPotType)

	// failed purchases must not touch the balance or inventory
	assert.Equal(t, StartingCoins, f.coins(t, userID))
	seeds, err := f.store.ListSeeds(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestBuyShopItemInsufficientCoins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "broke")
	require.NoError(t, f.store.AddCoins(ctx, userID, -(StartingCoins - 50)))

	err := f.svc.BuyShopItem(ctx, userID, ItemTypeSeed, "fire", 1)
	assert.ErrorIs(t, err, domain.ErrNotEnoughCoins)
	assert.Equal(t, int64(50), f.coins(t, userID))
}

func TestBuyTrap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, floorID := f.newUser(t, "trapper")

	require.NoError(t, f.svc.BuyTrap(ctx, userID))

	floor, err := f.store.GetFloor(ctx, floorID)
	require.NoError(t, err)
	assert.Equal(t, 1, floor.TrapCount)
	// one floor unlocked: price is 1 * TrapUnitPrice
	assert.Equal(t, StartingCoins-economy.TrapUnitPrice, f.coins(t, userID))
}

func TestBuyTrapCapacity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "trapper")
	require.NoError(t, f.store.AddCoins(ctx, userID, 100_000))

	for i := 0; i < economy.TrapsPerFloor; i++ {
		require.NoError(t, f.svc.BuyTrap(ctx, userID))
	}

	err := f.svc.BuyTrap(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrTrapCapacity)
}

func TestBuyTrapSpillsToSecondFloor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, firstFloorID := f.newUser(t, "trapper")
	require.NoError(t, f.store.AddCoins(ctx, userID, 100_000))

	second, err := f.svc.BuyFloor(ctx, userID)
	require.NoError(t, err)

	// fill the first floor, then one more lands on the second
	for i := 0; i < economy.TrapsPerFloor+1; i++ {
		require.NoError(t, f.svc.BuyTrap(ctx, userID))
	}

	first, err := f.store.GetFloor(ctx, firstFloorID)
	require.NoError(t, err)
	assert.Equal(t, economy.TrapsPerFloor, first.TrapCount)

	secondFloor, err := f.store.GetFloor(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, secondFloor.TrapCount)
}

func TestBuyFloorPricing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "builder")

	before := f.coins(t, userID)
	second, err := f.svc.BuyFloor(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Idx)
	assert.Equal(t, before-2*economy.FloorPriceStep, f.coins(t, userID))

	plots, err := f.store.ListPlots(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, plots, PlotsPerFloor)
	for _, p := range plots {
		assert.Equal(t, domain.StageEmpty, p.Stage)
		assert.False(t, p.HasPot())
	}

	before = f.coins(t, userID)
	third, err := f.svc.BuyFloor(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, third.Idx)
	assert.Equal(t, before-3*economy.FloorPriceStep, f.coins(t, userID))
}

func TestBuyFloorInsufficientCoins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "builder")
	require.NoError(t, f.store.AddCoins(ctx, userID, -StartingCoins))

	_, err := f.svc.BuyFloor(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrNotEnoughCoins)

	count, err := f.store.CountUnlockedFloors(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSellToShop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "seller")
	seedID := f.giveSeed(t, userID, "water", 100, true)

	paid, err := f.svc.SellToShop(ctx, userID, seedID)
	require.NoError(t, err)
	assert.Equal(t, int64(110), paid)
	assert.Equal(t, StartingCoins+110, f.coins(t, userID))

	_, err = f.store.GetSeed(ctx, seedID, userID)
	assert.ErrorIs(t, err, domain.ErrSeedNotFound)
}

func TestSellToShopRejectsNotMature(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "seller")
	seedID := f.giveSeed(t, userID, "water", 100, false)

	_, err := f.svc.SellToShop(ctx, userID, seedID)
	assert.ErrorIs(t, err, domain.ErrSeedNotMature)

	// the seed survives the rejected sale
	_, err = f.store.GetSeed(ctx, seedID, userID)
	assert.NoError(t, err)
	assert.Equal(t, StartingCoins, f.coins(t, userID))
}

func TestSellToShopForeignSeedNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID, _ := f.newUser(t, "seller")
	otherID, _ := f.newUser(t, "other")
	seedID := f.giveSeed(t, otherID, "water", 100, true)

	_, err := f.svc.SellToShop(ctx, userID, seedID)
	assert.ErrorIs(t, err, domain.ErrSeedNotFound)
}
