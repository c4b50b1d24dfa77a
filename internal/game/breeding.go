package game

import (
	"context"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/economy"
	"github.com/hieuluvjingliu/GardenBred/internal/metrics"
)

// Breed combines two mature seeds into one not-mature seed of the recipe's
// output class. Both inputs are destroyed. The output class's base price is
// recorded in the catalog the first time it is produced (and refreshed on
// later breeds, matching the catalog's upsert semantics).
func (s *service) Breed(ctx context.Context, userID, seedAID, seedBID int64) (*domain.BreedResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	seedA, err := s.store.GetSeed(ctx, seedAID, userID)
	if err != nil {
		return nil, err
	}
	seedB, err := s.store.GetSeed(ctx, seedBID, userID)
	if err != nil {
		return nil, err
	}
	if !seedA.Mature || !seedB.Mature {
		return nil, domain.ErrSeedNotMature
	}

	outClass, ok := s.breeds.Current().Lookup(seedA.Class, seedB.Class)
	if !ok {
		// no recipe: both inputs stay untouched
		return nil, domain.ErrNoBreedRecipe
	}

	baseOut := economy.BreedOutputPrice(seedA.BasePrice, seedB.BasePrice)
	if err := s.store.UpsertBasePrice(ctx, outClass, baseOut); err != nil {
		return nil, err
	}
	if err := s.store.RemoveSeed(ctx, seedAID, userID); err != nil {
		return nil, err
	}
	if err := s.store.RemoveSeed(ctx, seedBID, userID); err != nil {
		return nil, err
	}
	if _, err := s.store.AddSeed(ctx, userID, outClass, baseOut, false); err != nil {
		return nil, err
	}

	metrics.Breeds.Inc()
	s.audit(ctx, userID, actionBreed, map[string]any{
		"in": []string{seedA.Class, seedB.Class}, "out": outClass, "base": baseOut,
	})
	s.signal(userID)
	return &domain.BreedResult{OutClass: outClass, Base: baseOut}, nil
}
