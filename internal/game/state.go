package game

import (
	"context"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/economy"
)

// FetchState assembles the full per-user snapshot: user, floors with plots,
// both inventories, open market listings and trap pricing. Push
// notifications use the identical shape.
func (s *service) FetchState(ctx context.Context, userID int64) (*domain.StateSnapshot, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	floors, err := s.store.ListFloors(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.FloorView, 0, len(floors))
	for _, f := range floors {
		view, err := s.floorView(ctx, f)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	pots, err := s.store.ListPots(ctx, userID)
	if err != nil {
		return nil, err
	}
	seeds, err := s.store.ListSeeds(ctx, userID)
	if err != nil {
		return nil, err
	}
	market, err := s.store.ListOpenListings(ctx, MarketPageLimit)
	if err != nil {
		return nil, err
	}
	floorCount, err := s.store.CountUnlockedFloors(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, userID, actionStateFetch, map[string]any{})

	return &domain.StateSnapshot{
		Me:        *user,
		Floors:    views,
		PotInv:    pots,
		SeedInv:   seeds,
		Market:    market,
		TrapPrice: economy.TrapPrice(floorCount),
		TrapMax:   economy.TrapCapacity(floorCount),
	}, nil
}

// OnlineUsers lists recently created users, newest first
func (s *service) OnlineUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.ListRecentUsers(ctx, OnlineLimit)
}

// VisitFloors lists another user's floors, the entry point for raids
func (s *service) VisitFloors(ctx context.Context, targetUserID int64) ([]domain.Floor, error) {
	if _, err := s.store.GetUserByID(ctx, targetUserID); err != nil {
		return nil, err
	}
	return s.store.ListFloors(ctx, targetUserID)
}

// VisitFloor renders a read-only view of any user's floor with its plots
func (s *service) VisitFloor(ctx context.Context, floorID int64) (*domain.FloorView, error) {
	floor, err := s.store.GetFloor(ctx, floorID)
	if err != nil {
		return nil, err
	}
	return s.floorView(ctx, *floor)
}

// floorView builds a FloorView, resolving crop base prices from the catalog
func (s *service) floorView(ctx context.Context, floor domain.Floor) (*domain.FloorView, error) {
	plots, err := s.store.ListPlots(ctx, floor.ID)
	if err != nil {
		return nil, err
	}
	views := make([]domain.PlotView, 0, len(plots))
	for _, p := range plots {
		view := domain.PlotView{
			ID:        p.ID,
			Slot:      p.Slot,
			Stage:     p.Stage,
			Class:     p.Class,
			PlantedAt: p.PlantedAt,
			MatureAt:  p.MatureAt,
			PotID:     p.PotID,
			PotType:   p.PotType,
		}
		if p.Class != nil {
			base, err := s.basePrice(ctx, *p.Class)
			if err != nil {
				return nil, err
			}
			view.BasePrice = &base
		}
		views = append(views, view)
	}
	return &domain.FloorView{Floor: floor, Plots: views}, nil
}
