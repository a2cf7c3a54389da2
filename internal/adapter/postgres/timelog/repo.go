// Package timelog implements the time-log repository using PostgreSQL.
//
// Overlap protection is enforced twice: the service runs the interval
// predicate for a friendly error, and the time_logs_no_overlap exclusion
// constraint (owner_id, day, tstzrange) arbitrates concurrent writes.
// A constraint violation surfaces as domain.ErrConflict.
package timelog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/daypulse-backend/internal/adapter/postgres"
	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// Repo provides time-log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new time-log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const entryColumns = `id, owner_id, day, start_at, end_at, duration_min, category, activity,
productivity, mood, energy, notes, todo_id, is_planned, created_at, updated_at`

const createSQL = `
INSERT INTO time_logs (id, owner_id, day, start_at, end_at, duration_min, category, activity,
    productivity, mood, energy, notes, todo_id, is_planned)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + entryColumns

const updateSQL = `
UPDATE time_logs
SET day = $3, start_at = $4, end_at = $5, duration_min = $6, category = $7, activity = $8,
    productivity = $9, mood = $10, energy = $11, notes = $12, todo_id = $13, is_planned = $14,
    updated_at = now()
WHERE id = $1 AND owner_id = $2
RETURNING ` + entryColumns

const getByIDSQL = `
SELECT ` + entryColumns + `
FROM time_logs
WHERE id = $1 AND owner_id = $2`

const listByDaySQL = `
SELECT ` + entryColumns + `
FROM time_logs
WHERE owner_id = $1 AND day = $2
ORDER BY start_at`

const deleteSQL = `DELETE FROM time_logs WHERE id = $1 AND owner_id = $2`

// Create inserts a new entry and returns the persisted row.
// Returns domain.ErrConflict when the interval violates the no-overlap constraint.
func (r *Repo) Create(ctx context.Context, e *domain.TimeLogEntry) (*domain.TimeLogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		e.ID, e.OwnerID, e.Day, e.Start, e.End, e.DurationMin, string(e.Category), e.Activity,
		e.Productivity, e.Mood, e.Energy, e.Notes, e.TodoID, e.IsPlanned,
	)

	entry, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "time_log", e.ID)
	}
	return entry, nil
}

// Update rewrites a mutable entry (owner and id fixed) and returns the new row.
// The day column is part of the update so edits that move an entry across
// days are revalidated against the constraint on the new day.
func (r *Repo) Update(ctx context.Context, e *domain.TimeLogEntry) (*domain.TimeLogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL,
		e.ID, e.OwnerID, e.Day, e.Start, e.End, e.DurationMin, string(e.Category), e.Activity,
		e.Productivity, e.Mood, e.Energy, e.Notes, e.TodoID, e.IsPlanned,
	)

	entry, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "time_log", e.ID)
	}
	return entry, nil
}

// GetByID returns an owner's entry by id.
func (r *Repo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.TimeLogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	entry, err := scanEntry(querier.QueryRow(ctx, getByIDSQL, id, ownerID))
	if err != nil {
		return nil, postgres.MapError(err, "time_log", id)
	}
	return entry, nil
}

// ListByDay returns all of an owner's entries for a day key, ordered by start.
func (r *Repo) ListByDay(ctx context.Context, ownerID uuid.UUID, day time.Time) ([]domain.TimeLogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByDaySQL, ownerID, day)
	if err != nil {
		return nil, fmt.Errorf("list time_logs by day: %w", err)
	}
	defer rows.Close()

	entries := []domain.TimeLogEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time_log: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time_logs: %w", err)
	}

	return entries, nil
}

// Delete removes an owner's entry by id.
// Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id, ownerID)
	if err != nil {
		return postgres.MapError(err, "time_log", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("time_log %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// scanEntry reads one time_logs row in entryColumns order.
func scanEntry(row pgx.Row) (*domain.TimeLogEntry, error) {
	var (
		e        domain.TimeLogEntry
		category string
		notes    pgtype.Text
		todoID   *uuid.UUID
	)

	err := row.Scan(
		&e.ID, &e.OwnerID, &e.Day, &e.Start, &e.End, &e.DurationMin, &category, &e.Activity,
		&e.Productivity, &e.Mood, &e.Energy, &notes, &todoID, &e.IsPlanned, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Category = domain.TimeLogCategory(category)
	if notes.Valid {
		e.Notes = &notes.String
	}
	e.TodoID = todoID

	// date columns scan as midnight UTC, matching the day-key normalization
	e.Day = e.Day.UTC()

	return &e, nil
}
