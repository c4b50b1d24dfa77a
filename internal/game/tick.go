package game

import (
	"context"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/logger"
)

// SweepGrowth promotes every in-progress plot through its automatic stage
// transitions: planted -> growing at the halfway point, growing -> mature at
// mature-at. It is the sole writer of these transitions. A plot whose
// halfway point and maturity have both passed is promoted straight to
// mature, which keeps the sweep idempotent: a second immediate run is a
// no-op.
//
// Each plot is re-read and promoted under its owner's lock, one owner at a
// time, so a slow or contended user never stalls the whole sweep and the
// sweep never races a concurrent harvest or remove.
func (s *service) SweepGrowth(ctx context.Context) error {
	inProgress, err := s.store.ListInProgressPlots(ctx)
	if err != nil {
		return err
	}
	if len(inProgress) == 0 {
		return nil
	}

	// group by owner so each lock is taken once per sweep
	byOwner := make(map[int64][]int64)
	for _, gp := range inProgress {
		byOwner[gp.OwnerID] = append(byOwner[gp.OwnerID], gp.Plot.ID)
	}

	now := s.now()
	for ownerID, plotIDs := range byOwner {
		changed, err := s.sweepOwner(ctx, ownerID, plotIDs, now)
		if err != nil {
			logger.FromContext(ctx).Error("Growth sweep failed for user", "user_id", ownerID, "error", err)
			continue
		}
		if changed {
			s.signal(ownerID)
		}
	}
	return nil
}

func (s *service) sweepOwner(ctx context.Context, ownerID int64, plotIDs []int64, now int64) (bool, error) {
	unlock := s.locks.Lock(ownerID)
	defer unlock()

	changed := false
	for _, plotID := range plotIDs {
		// re-read under the lock: a harvest or remove may have landed
		// between the snapshot and now
		plot, err := s.store.GetPlot(ctx, plotID)
		if err != nil {
			return changed, err
		}
		next, ok := nextStage(plot, now)
		if !ok {
			continue
		}
		if err := s.store.SetPlotStage(ctx, plotID, next); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// nextStage computes the stage a plot should be in at time now, or false
// when no promotion is due
func nextStage(plot *domain.Plot, now int64) (domain.Stage, bool) {
	if plot.PlantedAt == nil || plot.MatureAt == nil {
		return "", false
	}
	switch plot.Stage {
	case domain.StagePlanted:
		if now >= *plot.MatureAt {
			return domain.StageMature, true
		}
		half := *plot.PlantedAt + (*plot.MatureAt-*plot.PlantedAt)/2
		if now >= half {
			return domain.StageGrowing, true
		}
	case domain.StageGrowing:
		if now >= *plot.MatureAt {
			return domain.StageMature, true
		}
	}
	return "", false
}
