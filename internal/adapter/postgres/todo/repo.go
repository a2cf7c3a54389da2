// Package todo implements the todo repository using PostgreSQL.
// Fixed-shape queries use raw SQL; the List filter is built with squirrel.
package todo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/daypulse-backend/internal/adapter/postgres"
	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// Repo provides todo persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new todo repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const todoColumns = `id, owner_id, title, due_date, completion_pct, completed, completed_at,
priority, bucket, is_recurring, recurrence_pattern, recurrence_end, parent_id, project_id,
created_at, updated_at`

const createSQL = `
INSERT INTO todos (id, owner_id, title, due_date, completion_pct, completed, completed_at,
    priority, bucket, is_recurring, recurrence_pattern, recurrence_end, parent_id, project_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + todoColumns

const updateSQL = `
UPDATE todos
SET title = $3, due_date = $4, completion_pct = $5, completed = $6, completed_at = $7,
    priority = $8, bucket = $9, is_recurring = $10, recurrence_pattern = $11,
    recurrence_end = $12, project_id = $13, updated_at = now()
WHERE id = $1 AND owner_id = $2
RETURNING ` + todoColumns

const getByIDSQL = `
SELECT ` + todoColumns + `
FROM todos
WHERE id = $1 AND owner_id = $2`

const listDueBetweenSQL = `
SELECT ` + todoColumns + `
FROM todos
WHERE owner_id = $1 AND due_date >= $2 AND due_date < $3
ORDER BY due_date`

const deleteSQL = `DELETE FROM todos WHERE id = $1 AND owner_id = $2`

// Create inserts a new todo and returns the persisted row.
func (r *Repo) Create(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	pattern, end := recurrenceCols(t.Recurrence)
	row := querier.QueryRow(ctx, createSQL,
		t.ID, t.OwnerID, t.Title, t.DueDate, t.CompletionPct, t.Completed, t.CompletedAt,
		string(t.Priority), string(t.Bucket), t.IsRecurring, pattern, end, t.ParentID, t.ProjectID,
	)

	created, err := scanTodo(row)
	if err != nil {
		return nil, postgres.MapError(err, "todo", t.ID)
	}
	return created, nil
}

// CreateBatch inserts generated occurrences in one round trip.
// All-or-nothing: the batch runs in an implicit transaction via SendBatch
// pipeline semantics; the caller treats failure as a unit.
func (r *Repo) CreateBatch(ctx context.Context, todos []domain.Todo) error {
	if len(todos) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, t := range todos {
		pattern, end := recurrenceCols(t.Recurrence)
		batch.Queue(createSQL,
			t.ID, t.OwnerID, t.Title, t.DueDate, t.CompletionPct, t.Completed, t.CompletedAt,
			string(t.Priority), string(t.Bucket), t.IsRecurring, pattern, end, t.ParentID, t.ProjectID,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := range todos {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(fmt.Errorf("occurrence %d: %w", i, err), "todo", todos[i].ID)
		}
	}
	return nil
}

// Update rewrites a todo's mutable fields and returns the new row.
// Completion flag, percentage, and timestamp travel in the same statement.
func (r *Repo) Update(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	pattern, end := recurrenceCols(t.Recurrence)
	row := querier.QueryRow(ctx, updateSQL,
		t.ID, t.OwnerID, t.Title, t.DueDate, t.CompletionPct, t.Completed, t.CompletedAt,
		string(t.Priority), string(t.Bucket), t.IsRecurring, pattern, end, t.ProjectID,
	)

	updated, err := scanTodo(row)
	if err != nil {
		return nil, postgres.MapError(err, "todo", t.ID)
	}
	return updated, nil
}

// GetByID returns an owner's todo by id.
func (r *Repo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Todo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTodo(querier.QueryRow(ctx, getByIDSQL, id, ownerID))
	if err != nil {
		return nil, postgres.MapError(err, "todo", id)
	}
	return t, nil
}

// List returns an owner's todos matching the filter plus the unpaginated total.
func (r *Repo) List(ctx context.Context, ownerID uuid.UUID, filter domain.TodoFilter) ([]domain.Todo, int, error) {
	filter = normalizeFilter(filter)

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	where := sq.And{sq.Eq{"owner_id": ownerID}}
	if filter.Bucket != nil {
		where = append(where, sq.Eq{"bucket": string(*filter.Bucket)})
	}
	if filter.Completed != nil {
		where = append(where, sq.Eq{"completed": *filter.Completed})
	}
	if filter.Priority != nil {
		where = append(where, sq.Eq{"priority": string(*filter.Priority)})
	}
	if filter.ProjectID != nil {
		where = append(where, sq.Eq{"project_id": *filter.ProjectID})
	}
	if filter.ParentID != nil {
		where = append(where, sq.Eq{"parent_id": *filter.ParentID})
	}

	countSQL, countArgs, err := psql.Select("count(*)").From("todos").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build todo count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count todos: %w", err)
	}

	listSQL, listArgs, err := psql.Select(todoColumns).
		From("todos").
		Where(where).
		OrderBy(filter.SortBy + " " + filter.SortOrder).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build todo list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate todos: %w", err)
	}

	return todos, total, nil
}

// ListDueBetween returns an owner's todos with due_date in [from, to),
// ordered by due date. Used by the metrics aggregator's day window.
func (r *Repo) ListDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.Todo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listDueBetweenSQL, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list todos due between: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}

	return todos, nil
}

// Delete removes an owner's todo by id. Occurrences cascade via FK.
// Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id, ownerID)
	if err != nil {
		return postgres.MapError(err, "todo", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("todo %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// recurrenceCols flattens an optional Recurrence into nullable columns.
func recurrenceCols(rec *domain.Recurrence) (*string, *time.Time) {
	if rec == nil {
		return nil, nil
	}
	p := string(rec.Pattern)
	end := rec.EndDate
	return &p, &end
}

// scanTodo reads one todos row in todoColumns order.
func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var (
		t           domain.Todo
		priority    string
		bucket      string
		pattern     pgtype.Text
		recurEnd    pgtype.Timestamptz
		completedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.DueDate, &t.CompletionPct, &t.Completed, &completedAt,
		&priority, &bucket, &t.IsRecurring, &pattern, &recurEnd, &t.ParentID, &t.ProjectID,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Priority = domain.TodoPriority(priority)
	t.Bucket = domain.TodoBucket(bucket)
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	if pattern.Valid && recurEnd.Valid {
		t.Recurrence = &domain.Recurrence{
			Pattern: domain.RecurrencePattern(pattern.String),
			EndDate: recurEnd.Time,
		}
	}

	return &t, nil
}
