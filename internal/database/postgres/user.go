package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
)

func (s *Store) GetOrCreateUser(ctx context.Context, username string, startingCoins int64, now int64) (*domain.User, error) {
	// Usernames are unique case-insensitively; a concurrent first login
	// loses the insert and falls through to the select.
	insert := `
		INSERT INTO users (username, coins, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`
	if _, err := s.db.Exec(ctx, insert, username, startingCoins, now); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	query := `
		SELECT user_id, username, coins, created_at
		FROM users
		WHERE username_lower = LOWER($1)
	`
	var user domain.User
	err := s.db.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username, &user.Coins, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `
		SELECT user_id, username, coins, created_at
		FROM users
		WHERE user_id = $1
	`
	var user domain.User
	err := s.db.QueryRow(ctx, query, userID).Scan(&user.ID, &user.Username, &user.Coins, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return &user, nil
}

func (s *Store) AddCoins(ctx context.Context, userID int64, delta int64) error {
	// Balances never go negative; the engine validates affordability and
	// the clamp absorbs penalty deductions that exceed the balance.
	query := `
		UPDATE users
		SET coins = GREATEST(coins + $2, 0)
		WHERE user_id = $1
	`
	tag, err := s.db.Exec(ctx, query, userID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust coins for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *Store) ListRecentUsers(ctx context.Context, limit int) ([]domain.User, error) {
	query := `
		SELECT user_id, username, coins, created_at
		FROM users
		ORDER BY user_id DESC
		LIMIT $1
	`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Coins, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		out = append(out, user)
	}
	return out, rows.Err()
}
