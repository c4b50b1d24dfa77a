package economy

import (
	"github.com/hieuluvjingliu/GardenBred/internal/domain"
)

// DefaultBasePrice is the base price of the four primordial classes and the
// fallback for any class missing from the catalog.
const DefaultBasePrice int64 = 100

// Per-floor sizing and pricing constants
const (
	// FloorPriceStep scales the cost of each additional floor: floor N
	// costs N * FloorPriceStep coins. Floor 1 is free.
	FloorPriceStep int64 = 1000

	// TrapUnitPrice is multiplied by the user's unlocked floor count
	TrapUnitPrice int64 = 1000

	// TrapsPerFloor caps how many traps a single floor can hold
	TrapsPerFloor = 5
)

// BreedOutputPrice computes the catalog base price of a bred class:
// floor((a+b) * 0.8). Integer arithmetic keeps the floor exact.
func BreedOutputPrice(baseA, baseB int64) int64 {
	return (baseA + baseB) * 4 / 5
}

// ShopSellValue is what the shop pays for a mature seed: floor(base * 1.1)
func ShopSellValue(base int64) int64 {
	return base * 11 / 10
}

// MarketBounds returns the inclusive [min, max] range an ask price must lie
// in: [floor(base*0.9), floor(base*1.5)].
func MarketBounds(base int64) (min, max int64) {
	return base * 9 / 10, base * 3 / 2
}

// NextFloorPrice is the cost of the next floor given the highest floor index
// the user owns. The first floor is free.
func NextFloorPrice(maxOwnedIdx int) int64 {
	if maxOwnedIdx == 0 {
		return 0
	}
	return int64(maxOwnedIdx+1) * FloorPriceStep
}

// TrapPrice is the cost of one trap for a user with the given number of
// unlocked floors.
func TrapPrice(unlockedFloors int) int64 {
	return TrapUnitPrice * int64(unlockedFloors)
}

// TrapCapacity is the total traps a user may hold across all floors
func TrapCapacity(unlockedFloors int) int {
	return TrapsPerFloor * unlockedFloors
}

// StealPenalty charges 5% of the attacker's coins, minimum 1, when a trap
// fires.
func StealPenalty(attackerCoins int64) int64 {
	p := attackerCoins / 20
	if p < 1 {
		return 1
	}
	return p
}

// Base grow durations in milliseconds. Bred classes grow slower than the
// four primordials. Configuration constants, not computed.
const (
	PrimordialGrowMillis int64 = 5 * 60 * 1000
	BredGrowMillis       int64 = 10 * 60 * 1000
)

// BaseGrowMillis returns the unmodified grow duration for a seed class
func BaseGrowMillis(class string) int64 {
	if domain.IsPrimordial(class) {
		return PrimordialGrowMillis
	}
	return BredGrowMillis
}

// GrowMillis applies the pot's speed multiplier to the class base grow time,
// floored to whole milliseconds.
func GrowMillis(class string, speedMult float64) int64 {
	return int64(float64(BaseGrowMillis(class)) * speedMult)
}
