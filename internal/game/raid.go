package game

import (
	"context"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/economy"
	"github.com/hieuluvjingliu/GardenBred/internal/metrics"
)

// StealPlot attempts to take a mature crop from another user's plot.
// The floor's traps fire before the plot is even looked at: a trapped floor
// wastes the attempt and fines the attacker even when the target plot is
// empty. With no trap, an unready plot is a soft failure, and a mature one
// yields its crop to the attacker exactly like a harvest.
func (s *service) StealPlot(ctx context.Context, userID, targetUserID, floorID, plotID int64) (*domain.StealOutcome, error) {
	if targetUserID == userID {
		return nil, domain.ErrStealSelf
	}

	floor, err := s.store.GetFloor(ctx, floorID)
	if err != nil {
		return nil, err
	}
	if floor.UserID != targetUserID {
		return nil, domain.ErrFloorNotFound
	}

	unlock := s.locks.LockPair(userID, targetUserID)
	defer unlock()

	consumed, err := s.store.ConsumeTrap(ctx, floorID)
	if err != nil {
		return nil, err
	}
	if consumed {
		attacker, err := s.store.GetUserByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		penalty := economy.StealPenalty(attacker.Coins)
		if err := s.store.AddCoins(ctx, userID, -penalty); err != nil {
			return nil, err
		}
		metrics.Steals.WithLabelValues("trapped").Inc()
		s.audit(ctx, userID, actionTrapFired, map[string]any{
			"targetUserId": targetUserID, "floorId": floorID, "penalty": penalty, "plotId": plotID,
		})
		s.signal(userID)
		s.signal(targetUserID)
		return &domain.StealOutcome{Trap: true, Penalty: penalty}, nil
	}

	plot, err := s.store.GetPlot(ctx, plotID)
	if err != nil {
		return nil, err
	}
	if plot.FloorID != floorID {
		return nil, domain.ErrPlotNotFound
	}
	if plot.Stage != domain.StageMature || plot.Class == nil {
		metrics.Steals.WithLabelValues("unready").Inc()
		s.audit(ctx, userID, actionStealFail, map[string]any{
			"targetUserId": targetUserID, "floorId": floorID, "plotId": plotID, "reason": StealFailNotMature,
		})
		return &domain.StealOutcome{Reason: StealFailNotMature}, nil
	}

	base, err := s.basePrice(ctx, *plot.Class)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.AddSeed(ctx, userID, *plot.Class, base, true); err != nil {
		return nil, err
	}
	if err := s.store.ClearPlotCrop(ctx, plot.ID); err != nil {
		return nil, err
	}

	metrics.Steals.WithLabelValues("success").Inc()
	s.audit(ctx, userID, actionStealOK, map[string]any{
		"targetUserId": targetUserID, "floorId": floorID, "plotId": plot.ID, "class": *plot.Class,
	})
	s.signal(userID)
	s.signal(targetUserID)
	return &domain.StealOutcome{OK: true, Class: *plot.Class}, nil
}
