package game

import (
	"context"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/economy"
	"github.com/hieuluvjingliu/GardenBred/internal/metrics"
)

// PlacePot moves a pot from the caller's inventory into an empty plot. The
// pot instance is consumed; it comes back only as the plot's pot reference.
func (s *service) PlacePot(ctx context.Context, userID, floorID int64, slot int, potID int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	pot, err := s.store.GetPot(ctx, potID, userID)
	if err != nil {
		return err
	}
	if _, err := s.ownedFloor(ctx, userID, floorID); err != nil {
		return err
	}
	plot, err := s.store.GetPlotBySlot(ctx, floorID, slot)
	if err != nil {
		return err
	}
	if plot.HasPot() {
		return domain.ErrPlotOccupied
	}

	if err := s.store.SetPlotPot(ctx, plot.ID, pot.ID, pot.Type); err != nil {
		return err
	}
	if err := s.store.RemovePot(ctx, potID, userID); err != nil {
		return err
	}

	s.audit(ctx, userID, actionPlacePot, map[string]any{"floorId": floorID, "slot": slot, "potId": potID, "type": pot.Type})
	s.signal(userID)
	return nil
}

// Plant moves a not-mature seed from inventory into a potted, empty plot
// and starts its growth clock. Returns the mature-at timestamp.
func (s *service) Plant(ctx context.Context, userID, floorID int64, slot int, seedID int64) (int64, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	seed, err := s.store.GetSeed(ctx, seedID, userID)
	if err != nil {
		return 0, err
	}
	if seed.Mature {
		return 0, domain.ErrSeedNotPlantable
	}
	if _, err := s.ownedFloor(ctx, userID, floorID); err != nil {
		return 0, err
	}
	plot, err := s.store.GetPlotBySlot(ctx, floorID, slot)
	if err != nil {
		return 0, err
	}
	if !plot.HasPot() {
		return 0, domain.ErrPlotHasNoPot
	}
	if plot.Stage != domain.StageEmpty {
		return 0, domain.ErrPlotBusy
	}

	speed := 1.0
	if plot.PotType != nil {
		if spec, ok := domain.PotSpecs[*plot.PotType]; ok {
			speed = spec.SpeedMult
		}
	}
	plantedAt := s.now()
	matureAt := plantedAt + economy.GrowMillis(seed.Class, speed)

	if err := s.store.SetPlotPlanted(ctx, plot.ID, seedID, seed.Class, plantedAt, matureAt); err != nil {
		return 0, err
	}
	if err := s.store.RemoveSeed(ctx, seedID, userID); err != nil {
		return 0, err
	}

	metrics.SeedsPlanted.Inc()
	s.audit(ctx, userID, actionPlant, map[string]any{
		"floorId": floorID, "slot": slot, "seedId": seedID, "class": seed.Class, "mature_at": matureAt,
	})
	s.signal(userID)
	return matureAt, nil
}

// Harvest collects a mature crop: a fresh mature seed materializes in the
// caller's inventory and the plot keeps its pot, ready to plant again.
func (s *service) Harvest(ctx context.Context, userID, plotID int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.harvestPlot(ctx, userID, plotID); err != nil {
		return err
	}
	s.signal(userID)
	return nil
}

// harvestPlot is Harvest without locking or push, shared with HarvestAll.
// Caller holds the user's lock.
func (s *service) harvestPlot(ctx context.Context, userID, plotID int64) error {
	plot, err := s.store.GetPlot(ctx, plotID)
	if err != nil {
		return err
	}
	floor, err := s.store.GetFloor(ctx, plot.FloorID)
	if err != nil {
		return err
	}
	if floor.UserID != userID {
		// other users' plots are invisible to harvest
		return domain.ErrPlotNotFound
	}
	if plot.Stage != domain.StageMature || plot.Class == nil {
		return domain.ErrPlotNotMature
	}

	base, err := s.basePrice(ctx, *plot.Class)
	if err != nil {
		return err
	}
	if _, err := s.store.AddSeed(ctx, userID, *plot.Class, base, true); err != nil {
		return err
	}
	if err := s.store.ClearPlotCrop(ctx, plot.ID); err != nil {
		return err
	}

	metrics.Harvests.Inc()
	s.audit(ctx, userID, actionHarvest, map[string]any{"plotId": plot.ID, "class": *plot.Class, "base": base})
	return nil
}

// HarvestAll harvests every mature plot the caller owns, returning the count
func (s *service) HarvestAll(ctx context.Context, userID int64) (int, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	floors, err := s.store.ListFloors(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, f := range floors {
		plots, err := s.store.ListPlots(ctx, f.ID)
		if err != nil {
			return count, err
		}
		for _, p := range plots {
			if p.Stage != domain.StageMature {
				continue
			}
			if err := s.harvestPlot(ctx, userID, p.ID); err != nil {
				return count, err
			}
			count++
		}
	}

	s.audit(ctx, userID, actionHarvestAll, map[string]any{"harvested": count})
	if count > 0 {
		s.signal(userID)
	}
	return count, nil
}

// RemovePlot wipes a plot back to bare ground. The pot is destroyed, not
// returned, and any in-progress crop is lost with it. This is the only way
// to free a slot for a different pot.
func (s *service) RemovePlot(ctx context.Context, userID, floorID int64, slot int) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if _, err := s.ownedFloor(ctx, userID, floorID); err != nil {
		return err
	}
	plot, err := s.store.GetPlotBySlot(ctx, floorID, slot)
	if err != nil {
		return err
	}

	if err := s.store.ClearPlot(ctx, plot.ID); err != nil {
		return err
	}

	s.audit(ctx, userID, actionPlotRemove, map[string]any{"floorId": floorID, "slot": slot, "plotId": plot.ID})
	s.signal(userID)
	return nil
}
