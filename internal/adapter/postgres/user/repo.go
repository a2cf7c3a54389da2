// Package user implements the minimal user repository. Accounts are
// provisioned by the external identity service; this backend only needs
// lookups to anchor ownership.
package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/daypulse-backend/internal/adapter/postgres"
	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByIDSQL = `
SELECT id, email, name, timezone, created_at
FROM users
WHERE id = $1`

const createSQL = `
INSERT INTO users (id, email, name, timezone)
VALUES ($1, $2, $3, $4)
RETURNING id, email, name, timezone, created_at`

const existsSQL = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

// GetByID returns a user by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err := querier.QueryRow(ctx, getByIDSQL, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.Timezone, &u.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return &u, nil
}

// Create inserts a user row (used by provisioning and tests).
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var created domain.User
	err := querier.QueryRow(ctx, createSQL, u.ID, u.Email, u.Name, u.Timezone).
		Scan(&created.ID, &created.Email, &created.Name, &created.Timezone, &created.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}
	return &created, nil
}

// Exists reports whether a user row exists.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsSQL, id).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "user", id)
	}
	return exists, nil
}
