// Package postgres implements the repository interfaces on PostgreSQL.
// It is the durable store; the engine's per-user locks provide the
// transactional grouping, so statements here are individually atomic
// record operations mirroring the in-memory store.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hieuluvjingliu/GardenBred/internal/repository"
)

// Store implements repository.Store on a pgx connection pool
type Store struct {
	db *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore creates a postgres-backed store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}
