// Package metrics implements the productivity-metrics repository using
// PostgreSQL. The daily row is a materialized aggregate keyed (owner_id, day);
// Upsert replaces the whole row so recomputation stays idempotent and the
// row is never partially patched.
package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/daypulse-backend/internal/adapter/postgres"
	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// Repo provides metrics and daily-goal persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new metrics repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const metricsColumns = `id, owner_id, day, total_todos, completed_todos, todo_completion_rate,
total_time_logged, productive_time, avg_productivity, avg_mood, avg_energy,
productivity_score, categories, daily_goal_hours, goal_achieved, streak_days, computed_at`

const upsertSQL = `
INSERT INTO productivity_metrics (id, owner_id, day, total_todos, completed_todos,
    todo_completion_rate, total_time_logged, productive_time, avg_productivity, avg_mood,
    avg_energy, productivity_score, categories, daily_goal_hours, goal_achieved, streak_days,
    computed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
ON CONFLICT (owner_id, day) DO UPDATE SET
    total_todos = EXCLUDED.total_todos,
    completed_todos = EXCLUDED.completed_todos,
    todo_completion_rate = EXCLUDED.todo_completion_rate,
    total_time_logged = EXCLUDED.total_time_logged,
    productive_time = EXCLUDED.productive_time,
    avg_productivity = EXCLUDED.avg_productivity,
    avg_mood = EXCLUDED.avg_mood,
    avg_energy = EXCLUDED.avg_energy,
    productivity_score = EXCLUDED.productivity_score,
    categories = EXCLUDED.categories,
    daily_goal_hours = EXCLUDED.daily_goal_hours,
    goal_achieved = EXCLUDED.goal_achieved,
    streak_days = EXCLUDED.streak_days,
    computed_at = EXCLUDED.computed_at
RETURNING ` + metricsColumns

const getByDaySQL = `
SELECT ` + metricsColumns + `
FROM productivity_metrics
WHERE owner_id = $1 AND day = $2`

const listRangeSQL = `
SELECT ` + metricsColumns + `
FROM productivity_metrics
WHERE owner_id = $1 AND day >= $2 AND day <= $3
ORDER BY day`

const getGoalSQL = `
SELECT owner_id, day, goal_hours, updated_at
FROM daily_goals
WHERE owner_id = $1 AND day = $2`

const upsertGoalSQL = `
INSERT INTO daily_goals (owner_id, day, goal_hours)
VALUES ($1, $2, $3)
ON CONFLICT (owner_id, day) DO UPDATE SET
    goal_hours = EXCLUDED.goal_hours,
    updated_at = now()
RETURNING owner_id, day, goal_hours, updated_at`

// Upsert inserts or fully replaces the daily row for (owner_id, day).
// Concurrent recomputations race benignly: last write wins, both derive
// from the same sources.
func (r *Repo) Upsert(ctx context.Context, m *domain.DailyMetrics) (*domain.DailyMetrics, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	categories, err := marshalCategories(m.Categories)
	if err != nil {
		return nil, fmt.Errorf("metrics %s: %w", m.ID, err)
	}

	row := querier.QueryRow(ctx, upsertSQL,
		m.ID, m.OwnerID, m.Day, m.TotalTodos, m.CompletedTodos, m.TodoCompletionRate,
		m.TotalTimeLogged, m.ProductiveTime, m.AvgProductivity, m.AvgMood, m.AvgEnergy,
		m.ProductivityScore, categories, m.DailyGoalHours, m.GoalAchieved, m.StreakDays,
		m.ComputedAt,
	)

	saved, err := scanMetrics(row)
	if err != nil {
		return nil, postgres.MapError(err, "metrics", m.ID)
	}
	return saved, nil
}

// GetByDay returns the stored daily row for (owner_id, day).
func (r *Repo) GetByDay(ctx context.Context, ownerID uuid.UUID, day time.Time) (*domain.DailyMetrics, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMetrics(querier.QueryRow(ctx, getByDaySQL, ownerID, day))
	if err != nil {
		return nil, postgres.MapError(err, "metrics", ownerID)
	}
	return m, nil
}

// ListRange returns daily rows for [startDay, endDay] inclusive, ordered by day.
func (r *Repo) ListRange(ctx context.Context, ownerID uuid.UUID, startDay, endDay time.Time) ([]domain.DailyMetrics, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listRangeSQL, ownerID, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("list metrics range: %w", err)
	}
	defer rows.Close()

	records := []domain.DailyMetrics{}
	for rows.Next() {
		m, err := scanMetrics(rows)
		if err != nil {
			return nil, fmt.Errorf("scan metrics: %w", err)
		}
		records = append(records, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metrics: %w", err)
	}

	return records, nil
}

// GetGoal returns the owner's goal row for a day.
// Returns domain.ErrNotFound when no goal is set (the caller falls back to
// the configured default).
func (r *Repo) GetGoal(ctx context.Context, ownerID uuid.UUID, day time.Time) (*domain.DailyGoal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var g domain.DailyGoal
	err := querier.QueryRow(ctx, getGoalSQL, ownerID, day).
		Scan(&g.OwnerID, &g.Day, &g.GoalHours, &g.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "daily_goal", ownerID)
	}
	g.Day = g.Day.UTC()
	return &g, nil
}

// UpsertGoal sets the owner's goal for a day.
func (r *Repo) UpsertGoal(ctx context.Context, ownerID uuid.UUID, day time.Time, goalHours float64) (*domain.DailyGoal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var g domain.DailyGoal
	err := querier.QueryRow(ctx, upsertGoalSQL, ownerID, day, goalHours).
		Scan(&g.OwnerID, &g.Day, &g.GoalHours, &g.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "daily_goal", ownerID)
	}
	g.Day = g.Day.UTC()
	return &g, nil
}

// ---------------------------------------------------------------------------
// JSONB serialization for the category breakdown
// ---------------------------------------------------------------------------

// categoryJSON is the storage shape of one breakdown bucket. Domain types
// carry no json tags; the repo layer owns serialization.
type categoryJSON struct {
	Category string `json:"category"`
	Minutes  int    `json:"minutes"`
	Percent  int    `json:"percent"`
}

func marshalCategories(cats []domain.CategoryBreakdown) ([]byte, error) {
	out := make([]categoryJSON, len(cats))
	for i, c := range cats {
		out[i] = categoryJSON{
			Category: string(c.Category),
			Minutes:  c.Minutes,
			Percent:  c.Percent,
		}
	}
	return json.Marshal(out)
}

func unmarshalCategories(data []byte) ([]domain.CategoryBreakdown, error) {
	if len(data) == 0 {
		return []domain.CategoryBreakdown{}, nil
	}

	var in []categoryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}

	out := make([]domain.CategoryBreakdown, len(in))
	for i, c := range in {
		out[i] = domain.CategoryBreakdown{
			Category: domain.TimeLogCategory(c.Category),
			Minutes:  c.Minutes,
			Percent:  c.Percent,
		}
	}
	return out, nil
}

// scanMetrics reads one productivity_metrics row in metricsColumns order.
func scanMetrics(row pgx.Row) (*domain.DailyMetrics, error) {
	var (
		m          domain.DailyMetrics
		categories []byte
	)

	err := row.Scan(
		&m.ID, &m.OwnerID, &m.Day, &m.TotalTodos, &m.CompletedTodos, &m.TodoCompletionRate,
		&m.TotalTimeLogged, &m.ProductiveTime, &m.AvgProductivity, &m.AvgMood, &m.AvgEnergy,
		&m.ProductivityScore, &categories, &m.DailyGoalHours, &m.GoalAchieved, &m.StreakDays,
		&m.ComputedAt,
	)
	if err != nil {
		return nil, err
	}

	cats, err := unmarshalCategories(categories)
	if err != nil {
		return nil, fmt.Errorf("metrics %s: %w", m.ID, err)
	}
	m.Categories = cats
	m.Day = m.Day.UTC()

	return &m, nil
}
