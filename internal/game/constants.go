package game

import "time"

// Gameplay constants
const (
	// StartingCoins is every new user's balance
	StartingCoins int64 = 10000

	// PlotsPerFloor is the fixed plot count of every floor
	PlotsPerFloor = 10

	// Shop purchases accept 1..50 items per request
	MinShopQuantity = 1
	MaxShopQuantity = 50

	// MarketPageLimit caps how many open listings a snapshot carries
	MarketPageLimit = 100

	// OnlineLimit caps the recent-users list
	OnlineLimit = 50

	// DefaultTickInterval is how often the growth sweep runs
	DefaultTickInterval = 2 * time.Second
)

// Shop item types
const (
	ItemTypeSeed = "seed"
	ItemTypePot  = "pot"
)

// Audit action names
const (
	actionStateFetch  = "state_fetch"
	actionBuySeed     = "shop_buy_seed"
	actionBuyPot      = "shop_buy_pot"
	actionBuyTrap     = "shop_buy_trap"
	actionBuyFloor    = "shop_buy_floor"
	actionPlacePot    = "place_pot"
	actionPlant       = "plant"
	actionHarvest     = "harvest"
	actionHarvestAll  = "harvest_all"
	actionPlotRemove  = "plot_remove"
	actionBreed       = "breed"
	actionSellShop    = "sell_shop"
	actionMarketList  = "market_list"
	actionMarketBuy   = "market_buy"
	actionTrapFired   = "trap_triggered"
	actionStealFail   = "steal_fail"
	actionStealOK     = "steal_success"
)

// StealFailNotMature is the soft-failure reason for stealing from an
// unready plot. It is an expected outcome, not an error.
const StealFailNotMature = "not mature"
