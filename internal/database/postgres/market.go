package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
)

func (s *Store) CreateListing(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	query := `
		INSERT INTO listings (seller_id, seed_id, class, base_price, ask_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, 'open', $6)
		RETURNING listing_id, seller_id, seed_id, class, base_price, ask_price, status, created_at
	`
	var out domain.Listing
	err := s.db.QueryRow(ctx, query,
		l.SellerID, l.SeedID, l.Class, l.BasePrice, l.AskPrice, l.CreatedAt).Scan(
		&out.ID, &out.SellerID, &out.SeedID, &out.Class, &out.BasePrice, &out.AskPrice, &out.Status, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert listing: %w", err)
	}
	return &out, nil
}

func (s *Store) GetListing(ctx context.Context, listingID int64) (*domain.Listing, error) {
	query := `
		SELECT listing_id, seller_id, seed_id, class, base_price, ask_price, status, created_at
		FROM listings
		WHERE listing_id = $1
	`
	var l domain.Listing
	err := s.db.QueryRow(ctx, query, listingID).Scan(
		&l.ID, &l.SellerID, &l.SeedID, &l.Class, &l.BasePrice, &l.AskPrice, &l.Status, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing %d: %w", listingID, err)
	}
	return &l, nil
}

func (s *Store) ListOpenListings(ctx context.Context, limit int) ([]domain.Listing, error) {
	query := `
		SELECT listing_id, seller_id, seed_id, class, base_price, ask_price, status, created_at
		FROM listings
		WHERE status = 'open'
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	out := []domain.Listing{}
	for rows.Next() {
		var l domain.Listing
		err := rows.Scan(&l.ID, &l.SellerID, &l.SeedID, &l.Class, &l.BasePrice, &l.AskPrice, &l.Status, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) CloseListing(ctx context.Context, listingID int64) (bool, error) {
	// The status guard makes the flip atomic; of two concurrent buyers
	// exactly one sees a row affected.
	query := `UPDATE listings SET status = 'sold' WHERE listing_id = $1 AND status = 'open'`
	tag, err := s.db.Exec(ctx, query, listingID)
	if err != nil {
		return false, fmt.Errorf("failed to close listing %d: %w", listingID, err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	check := `SELECT EXISTS(SELECT 1 FROM listings WHERE listing_id = $1)`
	if err := s.db.QueryRow(ctx, check, listingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check listing %d: %w", listingID, err)
	}
	if !exists {
		return false, domain.ErrListingNotFound
	}
	return false, nil
}
