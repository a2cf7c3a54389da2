// Package metrics implements the productivity accounting logic: daily
// aggregate computation, range rollups, and trend classification.
package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type metricsRepo interface {
	Upsert(ctx context.Context, m *domain.DailyMetrics) (*domain.DailyMetrics, error)
	GetByDay(ctx context.Context, ownerID uuid.UUID, day time.Time) (*domain.DailyMetrics, error)
	ListRange(ctx context.Context, ownerID uuid.UUID, startDay, endDay time.Time) ([]domain.DailyMetrics, error)
	GetGoal(ctx context.Context, ownerID uuid.UUID, day time.Time) (*domain.DailyGoal, error)
	UpsertGoal(ctx context.Context, ownerID uuid.UUID, day time.Time, goalHours float64) (*domain.DailyGoal, error)
}

type todoReader interface {
	ListDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.Todo, error)
}

type entryReader interface {
	ListByDay(ctx context.Context, ownerID uuid.UUID, day time.Time) ([]domain.TimeLogEntry, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the metrics business logic. Daily rows are derived
// state: every read path recomputes the requested day from todos and time
// logs before returning it.
type Service struct {
	metrics metricsRepo
	todos   todoReader
	entries entryReader
	days    domain.DayPolicy

	defaultGoalHours float64
	maxTrendDays     int

	log *slog.Logger
	now func() time.Time
}

// NewService creates a new metrics service. defaultGoalHours is used for
// days without an explicit goal row; maxTrendDays bounds the trend query
// range.
func NewService(
	log *slog.Logger,
	metrics metricsRepo,
	todos todoReader,
	entries entryReader,
	days domain.DayPolicy,
	defaultGoalHours float64,
	maxTrendDays int,
) *Service {
	return &Service{
		metrics:          metrics,
		todos:            todos,
		entries:          entries,
		days:             days,
		defaultGoalHours: defaultGoalHours,
		maxTrendDays:     maxTrendDays,
		log:              log.With("service", "metrics"),
		now:              time.Now,
	}
}
