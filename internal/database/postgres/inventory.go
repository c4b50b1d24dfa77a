package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
)

func (s *Store) AddSeed(ctx context.Context, userID int64, class string, basePrice int64, mature bool) (*domain.SeedInstance, error) {
	query := `
		INSERT INTO seeds (user_id, class, base_price, mature)
		VALUES ($1, $2, $3, $4)
		RETURNING seed_id, user_id, class, base_price, mature
	`
	var seed domain.SeedInstance
	err := s.db.QueryRow(ctx, query, userID, class, basePrice, mature).Scan(
		&seed.ID, &seed.UserID, &seed.Class, &seed.BasePrice, &seed.Mature)
	if err != nil {
		return nil, fmt.Errorf("failed to insert seed: %w", err)
	}
	return &seed, nil
}

func (s *Store) GetSeed(ctx context.Context, seedID, userID int64) (*domain.SeedInstance, error) {
	query := `
		SELECT seed_id, user_id, class, base_price, mature
		FROM seeds
		WHERE seed_id = $1 AND user_id = $2
	`
	var seed domain.SeedInstance
	err := s.db.QueryRow(ctx, query, seedID, userID).Scan(
		&seed.ID, &seed.UserID, &seed.Class, &seed.BasePrice, &seed.Mature)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSeedNotFound
		}
		return nil, fmt.Errorf("failed to get seed %d: %w", seedID, err)
	}
	return &seed, nil
}

func (s *Store) ListSeeds(ctx context.Context, userID int64) ([]domain.SeedInstance, error) {
	query := `
		SELECT seed_id, user_id, class, base_price, mature
		FROM seeds
		WHERE user_id = $1
		ORDER BY seed_id
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seeds: %w", err)
	}
	defer rows.Close()

	out := []domain.SeedInstance{}
	for rows.Next() {
		var seed domain.SeedInstance
		if err := rows.Scan(&seed.ID, &seed.UserID, &seed.Class, &seed.BasePrice, &seed.Mature); err != nil {
			return nil, fmt.Errorf("failed to scan seed: %w", err)
		}
		out = append(out, seed)
	}
	return out, rows.Err()
}

func (s *Store) RemoveSeed(ctx context.Context, seedID, userID int64) error {
	query := `DELETE FROM seeds WHERE seed_id = $1 AND user_id = $2`
	tag, err := s.db.Exec(ctx, query, seedID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove seed %d: %w", seedID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSeedNotFound
	}
	return nil
}

func (s *Store) AddPot(ctx context.Context, userID int64, potType string, speedMult, yieldMult float64) (*domain.PotInstance, error) {
	query := `
		INSERT INTO pots (user_id, pot_type, speed_mult, yield_mult)
		VALUES ($1, $2, $3, $4)
		RETURNING pot_id, user_id, pot_type, speed_mult, yield_mult
	`
	var pot domain.PotInstance
	err := s.db.QueryRow(ctx, query, userID, potType, speedMult, yieldMult).Scan(
		&pot.ID, &pot.UserID, &pot.Type, &pot.SpeedMult, &pot.YieldMult)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pot: %w", err)
	}
	return &pot, nil
}

func (s *Store) GetPot(ctx context.Context, potID, userID int64) (*domain.PotInstance, error) {
	query := `
		SELECT pot_id, user_id, pot_type, speed_mult, yield_mult
		FROM pots
		WHERE pot_id = $1 AND user_id = $2
	`
	var pot domain.PotInstance
	err := s.db.QueryRow(ctx, query, potID, userID).Scan(
		&pot.ID, &pot.UserID, &pot.Type, &pot.SpeedMult, &pot.YieldMult)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPotNotFound
		}
		return nil, fmt.Errorf("failed to get pot %d: %w", potID, err)
	}
	return &pot, nil
}

func (s *Store) ListPots(ctx context.Context, userID int64) ([]domain.PotInstance, error) {
	query := `
		SELECT pot_id, user_id, pot_type, speed_mult, yield_mult
		FROM pots
		WHERE user_id = $1
		ORDER BY pot_id
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pots: %w", err)
	}
	defer rows.Close()

	out := []domain.PotInstance{}
	for rows.Next() {
		var pot domain.PotInstance
		if err := rows.Scan(&pot.ID, &pot.UserID, &pot.Type, &pot.SpeedMult, &pot.YieldMult); err != nil {
			return nil, fmt.Errorf("failed to scan pot: %w", err)
		}
		out = append(out, pot)
	}
	return out, rows.Err()
}

func (s *Store) RemovePot(ctx context.Context, potID, userID int64) error {
	query := `DELETE FROM pots WHERE pot_id = $1 AND user_id = $2`
	tag, err := s.db.Exec(ctx, query, potID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove pot %d: %w", potID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPotNotFound
	}
	return nil
}
