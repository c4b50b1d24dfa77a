package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
)

const plotColumns = `plot_id, floor_id, slot, stage, pot_id, pot_type, seed_id, class, planted_at, mature_at`

func scanPlot(row pgx.Row) (*domain.Plot, error) {
	var p domain.Plot
	err := row.Scan(&p.ID, &p.FloorID, &p.Slot, &p.Stage,
		&p.PotID, &p.PotType, &p.SeedID, &p.Class, &p.PlantedAt, &p.MatureAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateFloor(ctx context.Context, userID int64, idx, plots int) (*domain.Floor, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Floor indexes are unique per user; re-creating an existing index
	// returns the existing floor without adding plots.
	var floor domain.Floor
	insert := `
		INSERT INTO floors (user_id, idx, unlocked)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (user_id, idx) DO NOTHING
		RETURNING floor_id, user_id, idx, unlocked, trap_count
	`
	err = tx.QueryRow(ctx, insert, userID, idx).Scan(
		&floor.ID, &floor.UserID, &floor.Idx, &floor.Unlocked, &floor.TrapCount)
	if errors.Is(err, pgx.ErrNoRows) {
		query := `
			SELECT floor_id, user_id, idx, unlocked, trap_count
			FROM floors
			WHERE user_id = $1 AND idx = $2
		`
		err = tx.QueryRow(ctx, query, userID, idx).Scan(
			&floor.ID, &floor.UserID, &floor.Idx, &floor.Unlocked, &floor.TrapCount)
		if err != nil {
			return nil, fmt.Errorf("failed to get floor: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit: %w", err)
		}
		return &floor, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert floor: %w", err)
	}

	plotInsert := `
		INSERT INTO plots (floor_id, slot)
		SELECT $1, generate_series(1, $2)
	`
	if _, err := tx.Exec(ctx, plotInsert, floor.ID, plots); err != nil {
		return nil, fmt.Errorf("failed to insert plots: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return &floor, nil
}

func (s *Store) GetFloor(ctx context.Context, floorID int64) (*domain.Floor, error) {
	query := `
		SELECT floor_id, user_id, idx, unlocked, trap_count
		FROM floors
		WHERE floor_id = $1
	`
	var floor domain.Floor
	err := s.db.QueryRow(ctx, query, floorID).Scan(
		&floor.ID, &floor.UserID, &floor.Idx, &floor.Unlocked, &floor.TrapCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFloorNotFound
		}
		return nil, fmt.Errorf("failed to get floor %d: %w", floorID, err)
	}
	return &floor, nil
}

func (s *Store) ListFloors(ctx context.Context, userID int64) ([]domain.Floor, error) {
	query := `
		SELECT floor_id, user_id, idx, unlocked, trap_count
		FROM floors
		WHERE user_id = $1
		ORDER BY idx
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list floors: %w", err)
	}
	defer rows.Close()

	out := []domain.Floor{}
	for rows.Next() {
		var floor domain.Floor
		if err := rows.Scan(&floor.ID, &floor.UserID, &floor.Idx, &floor.Unlocked, &floor.TrapCount); err != nil {
			return nil, fmt.Errorf("failed to scan floor: %w", err)
		}
		out = append(out, floor)
	}
	return out, rows.Err()
}

func (s *Store) CountUnlockedFloors(ctx context.Context, userID int64) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM floors WHERE user_id = $1 AND unlocked`
	if err := s.db.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count floors: %w", err)
	}
	return n, nil
}

func (s *Store) GetPlot(ctx context.Context, plotID int64) (*domain.Plot, error) {
	query := `SELECT ` + plotColumns + ` FROM plots WHERE plot_id = $1`
	p, err := scanPlot(s.db.QueryRow(ctx, query, plotID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlotNotFound
		}
		return nil, fmt.Errorf("failed to get plot %d: %w", plotID, err)
	}
	return p, nil
}

func (s *Store) GetPlotBySlot(ctx context.Context, floorID int64, slot int) (*domain.Plot, error) {
	query := `SELECT ` + plotColumns + ` FROM plots WHERE floor_id = $1 AND slot = $2`
	p, err := scanPlot(s.db.QueryRow(ctx, query, floorID, slot))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlotNotFound
		}
		return nil, fmt.Errorf("failed to get plot at floor %d slot %d: %w", floorID, slot, err)
	}
	return p, nil
}

func (s *Store) ListPlots(ctx context.Context, floorID int64) ([]domain.Plot, error) {
	query := `SELECT ` + plotColumns + ` FROM plots WHERE floor_id = $1 ORDER BY slot`
	rows, err := s.db.Query(ctx, query, floorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plots: %w", err)
	}
	defer rows.Close()

	out := []domain.Plot{}
	for rows.Next() {
		p, err := scanPlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plot: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) ListInProgressPlots(ctx context.Context) ([]domain.GrowingPlot, error) {
	query := `
		SELECT p.plot_id, p.floor_id, p.slot, p.stage, p.pot_id, p.pot_type,
		       p.seed_id, p.class, p.planted_at, p.mature_at, f.user_id
		FROM plots p
		JOIN floors f ON p.floor_id = f.floor_id
		WHERE p.stage IN ('planted', 'growing')
		ORDER BY p.plot_id
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-progress plots: %w", err)
	}
	defer rows.Close()

	out := []domain.GrowingPlot{}
	for rows.Next() {
		var gp domain.GrowingPlot
		p := &gp.Plot
		err := rows.Scan(&p.ID, &p.FloorID, &p.Slot, &p.Stage,
			&p.PotID, &p.PotType, &p.SeedID, &p.Class, &p.PlantedAt, &p.MatureAt,
			&gp.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan in-progress plot: %w", err)
		}
		out = append(out, gp)
	}
	return out, rows.Err()
}

func (s *Store) SetPlotPot(ctx context.Context, plotID, potID int64, potType string) error {
	query := `UPDATE plots SET pot_id = $2, pot_type = $3 WHERE plot_id = $1`
	return s.execPlot(ctx, query, plotID, potID, potType)
}

func (s *Store) SetPlotPlanted(ctx context.Context, plotID, seedID int64, class string, plantedAt, matureAt int64) error {
	query := `
		UPDATE plots
		SET seed_id = $2, class = $3, stage = 'planted', planted_at = $4, mature_at = $5
		WHERE plot_id = $1
	`
	return s.execPlot(ctx, query, plotID, seedID, class, plantedAt, matureAt)
}

func (s *Store) SetPlotStage(ctx context.Context, plotID int64, stage domain.Stage) error {
	query := `UPDATE plots SET stage = $2 WHERE plot_id = $1`
	return s.execPlot(ctx, query, plotID, string(stage))
}

func (s *Store) ClearPlotCrop(ctx context.Context, plotID int64) error {
	query := `
		UPDATE plots
		SET seed_id = NULL, class = NULL, stage = 'empty', planted_at = NULL, mature_at = NULL
		WHERE plot_id = $1
	`
	return s.execPlot(ctx, query, plotID)
}

func (s *Store) ClearPlot(ctx context.Context, plotID int64) error {
	query := `
		UPDATE plots
		SET pot_id = NULL, pot_type = NULL, seed_id = NULL, class = NULL,
		    stage = 'empty', planted_at = NULL, mature_at = NULL
		WHERE plot_id = $1
	`
	return s.execPlot(ctx, query, plotID)
}

func (s *Store) execPlot(ctx context.Context, query string, plotID int64, args ...any) error {
	tag, err := s.db.Exec(ctx, query, append([]any{plotID}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update plot %d: %w", plotID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlotNotFound
	}
	return nil
}

func (s *Store) AddTrap(ctx context.Context, floorID int64) error {
	query := `UPDATE floors SET trap_count = trap_count + 1 WHERE floor_id = $1`
	tag, err := s.db.Exec(ctx, query, floorID)
	if err != nil {
		return fmt.Errorf("failed to add trap to floor %d: %w", floorID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFloorNotFound
	}
	return nil
}

func (s *Store) ConsumeTrap(ctx context.Context, floorID int64) (bool, error) {
	// The trap_count > 0 guard makes the decrement atomic under
	// concurrent steals; at most one caller consumes the last trap.
	query := `UPDATE floors SET trap_count = trap_count - 1 WHERE floor_id = $1 AND trap_count > 0`
	tag, err := s.db.Exec(ctx, query, floorID)
	if err != nil {
		return false, fmt.Errorf("failed to consume trap on floor %d: %w", floorID, err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	check := `SELECT EXISTS(SELECT 1 FROM floors WHERE floor_id = $1)`
	if err := s.db.QueryRow(ctx, check, floorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check floor %d: %w", floorID, err)
	}
	if !exists {
		return false, domain.ErrFloorNotFound
	}
	return false, nil
}
