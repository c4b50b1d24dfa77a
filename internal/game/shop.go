package game

import (
	"context"
	"fmt"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/economy"
	"github.com/hieuluvjingliu/GardenBred/internal/logger"
	"github.com/hieuluvjingliu/GardenBred/internal/metrics"
)

// BuyShopItem purchases qty seeds of a class or qty pots of a type. Seeds
// are sold at their catalog base price, pots at their fixed spec price.
func (s *service) BuyShopItem(ctx context.Context, userID int64, itemType, classOrType string, qty int) error {
	if qty < MinShopQuantity || qty > MaxShopQuantity {
		return domain.ErrQtyOutOfRange
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	switch itemType {
	case ItemTypeSeed:
		base, err := s.basePrice(ctx, classOrType)
		if err != nil {
			return err
		}
		cost := base * int64(qty)
		if err := s.debit(ctx, userID, cost); err != nil {
			return err
		}
		for i := 0; i < qty; i++ {
			if _, err := s.store.AddSeed(ctx, userID, classOrType, base, false); err != nil {
				return fmt.Errorf("add seed: %w", err)
			}
		}
		metrics.ShopPurchases.WithLabelValues(ItemTypeSeed).Add(float64(qty))
		s.audit(ctx, userID, actionBuySeed, map[string]any{"class": classOrType, "qty": qty, "cost": cost})

	case ItemTypePot:
		spec, ok := domain.PotSpecs[classOrType]
		if !ok {
			return domain.ErrInvalidPotType
		}
		cost := spec.Price * int64(qty)
		if err := s.debit(ctx, userID, cost); err != nil {
			return err
		}
		for i := 0; i < qty; i++ {
			if _, err := s.store.AddPot(ctx, userID, classOrType, spec.SpeedMult, spec.YieldMult); err != nil {
				return fmt.Errorf("add pot: %w", err)
			}
		}
		metrics.ShopPurchases.WithLabelValues(ItemTypePot).Add(float64(qty))
		s.audit(ctx, userID, actionBuyPot, map[string]any{"type": classOrType, "qty": qty, "cost": cost})

	default:
		return domain.ErrInvalidItemType
	}

	s.signal(userID)
	return nil
}

// BuyTrap buys one trap and stores it on the first floor with spare trap
// room. Price and capacity both scale with the unlocked floor count.
func (s *service) BuyTrap(ctx context.Context, userID int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	floorCount, err := s.store.CountUnlockedFloors(ctx, userID)
	if err != nil {
		return err
	}
	price := economy.TrapPrice(floorCount)
	capacity := economy.TrapCapacity(floorCount)

	floors, err := s.store.ListFloors(ctx, userID)
	if err != nil {
		return err
	}
	owned := 0
	for _, f := range floors {
		owned += f.TrapCount
	}
	if owned >= capacity {
		return domain.ErrTrapCapacity
	}

	var target *domain.Floor
	for i := range floors {
		if floors[i].TrapCount < economy.TrapsPerFloor {
			target = &floors[i]
			break
		}
	}
	if target == nil {
		return domain.ErrNoEligibleFloor
	}

	if err := s.debit(ctx, userID, price); err != nil {
		return err
	}
	if err := s.store.AddTrap(ctx, target.ID); err != nil {
		return err
	}

	s.audit(ctx, userID, actionBuyTrap, map[string]any{"floorId": target.ID, "price": price})
	s.signal(userID)
	return nil
}

// BuyFloor unlocks the next floor of the caller's tower, with 10 empty
// plots, no pots, no traps.
func (s *service) BuyFloor(ctx context.Context, userID int64) (*domain.Floor, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	floors, err := s.store.ListFloors(ctx, userID)
	if err != nil {
		return nil, err
	}
	maxIdx := 0
	for _, f := range floors {
		if f.Idx > maxIdx {
			maxIdx = f.Idx
		}
	}

	price := economy.NextFloorPrice(maxIdx)
	if err := s.debit(ctx, userID, price); err != nil {
		return nil, err
	}

	floor, err := s.store.CreateFloor(ctx, userID, maxIdx+1, PlotsPerFloor)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, userID, actionBuyFloor, map[string]any{"floorId": floor.ID, "idx": floor.Idx, "price": price})
	s.signal(userID)
	return floor, nil
}

// SellToShop sells one mature seed back to the shop for floor(base * 1.1)
func (s *service) SellToShop(ctx context.Context, userID, seedID int64) (int64, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	seed, err := s.store.GetSeed(ctx, seedID, userID)
	if err != nil {
		return 0, err
	}
	if !seed.Mature {
		return 0, domain.ErrSeedNotMature
	}

	paid := economy.ShopSellValue(seed.BasePrice)
	if err := s.store.RemoveSeed(ctx, seedID, userID); err != nil {
		return 0, err
	}
	if err := s.store.AddCoins(ctx, userID, paid); err != nil {
		return 0, err
	}

	metrics.SeedsSold.WithLabelValues("shop").Inc()
	s.audit(ctx, userID, actionSellShop, map[string]any{"seedId": seedID, "class": seed.Class, "paid": paid})
	s.signal(userID)
	return paid, nil
}

// debit checks affordability and subtracts coins. Failing actions must be
// no-ops, so the check happens before any other write.
func (s *service) debit(ctx context.Context, userID, cost int64) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Coins < cost {
		logger.FromContext(ctx).Debug("Debit rejected", "user_id", userID, "cost", cost, "coins", user.Coins)
		return domain.ErrNotEnoughCoins
	}
	return s.store.AddCoins(ctx, userID, -cost)
}
