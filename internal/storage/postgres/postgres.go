// Package postgres implements the storage.Store interface backed by
// PostgreSQL via pgx connection pooling. It mirrors the SQLite backend
// and is intended for deployments where the ledger outgrows a single
// file database.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qarzdaftar/qarzdaftar/internal/storage"
)

// PostgresStore implements the storage.Store interface using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Compile-time check that PostgresStore implements storage.Store.
var _ storage.Store = (*PostgresStore)(nil)

// New creates a connection pool for the given DSN, runs migrations and
// returns a ready store.
func New(ctx context.Context, dsn string) (*PostgresStore, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	conf.HealthCheckPeriod = 15 * time.Second
	conf.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
