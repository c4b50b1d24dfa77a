package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
)

func (s *Store) BasePrice(ctx context.Context, class string) (int64, bool, error) {
	var price int64
	query := `SELECT base_price FROM catalog WHERE class = $1`
	err := s.db.QueryRow(ctx, query, strings.ToLower(class)).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get base price for %q: %w", class, err)
	}
	return price, true, nil
}

func (s *Store) UpsertBasePrice(ctx context.Context, class string, price int64) error {
	query := `
		INSERT INTO catalog (class, base_price)
		VALUES ($1, $2)
		ON CONFLICT (class) DO UPDATE SET base_price = EXCLUDED.base_price
	`
	if _, err := s.db.Exec(ctx, query, strings.ToLower(class), price); err != nil {
		return fmt.Errorf("failed to upsert base price for %q: %w", class, err)
	}
	return nil
}

func (s *Store) CreateSession(ctx context.Context, token string, userID int64, now int64) error {
	query := `INSERT INTO sessions (token, user_id, created_at) VALUES ($1, $2, $3)`
	if _, err := s.db.Exec(ctx, query, token, userID, now); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, token string) (int64, error) {
	var userID int64
	query := `SELECT user_id FROM sessions WHERE token = $1`
	err := s.db.QueryRow(ctx, query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrSessionNotFound
		}
		return 0, fmt.Errorf("failed to get session: %w", err)
	}
	return userID, nil
}

func (s *Store) LogAction(ctx context.Context, userID int64, action string, payload []byte, at int64) error {
	query := `INSERT INTO audit_log (user_id, action, payload, at) VALUES ($1, $2, $3, $4)`
	if _, err := s.db.Exec(ctx, query, userID, action, payload, at); err != nil {
		return fmt.Errorf("failed to log action %q: %w", action, err)
	}
	return nil
}
