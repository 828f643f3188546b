package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists mapped chain records. It only ever inserts; schema
// provisioning is the migration binary's job and a missing schema surfaces
// as a DatabaseError on first use.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("postgres: dsn is required")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() {
	r.pool.Close()
}

// DatabaseError marks a failure inside the relational store. The sync engine
// treats it like any non-pruning failure: abort the pass, retry next pass.
type DatabaseError struct {
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("postgres: %s: %s", e.Operation, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}
