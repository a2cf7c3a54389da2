package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// ComputeDaily recomputes and stores the owner's daily aggregate for the
// calendar day the given instant falls on, returning the stored row.
// Recomputation is idempotent: the row is fully rebuilt from todos and time
// logs and upserted keyed by owner+day, so repeated calls converge on the
// same stored record.
func (s *Service) ComputeDaily(ctx context.Context, date time.Time) (*domain.DailyMetrics, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	day := s.days.DayKey(date)

	from, to := s.days.DayWindow(day)
	todos, err := s.todos.ListDueBetween(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load todos for day: %w", err)
	}

	entries, err := s.entries.ListByDay(ctx, ownerID, day)
	if err != nil {
		return nil, fmt.Errorf("load time logs for day: %w", err)
	}

	goalHours, err := s.goalForDay(ctx, ownerID, day)
	if err != nil {
		return nil, err
	}

	m := dayAggregate(todos, entries, goalHours)
	m.ID = uuid.New()
	m.OwnerID = ownerID
	m.Day = day
	m.ComputedAt = s.now()

	streak, err := s.streakForDay(ctx, ownerID, day, m.GoalAchieved)
	if err != nil {
		return nil, err
	}
	m.StreakDays = streak

	saved, err := s.metrics.Upsert(ctx, &m)
	if err != nil {
		return nil, fmt.Errorf("store daily metrics: %w", err)
	}

	s.log.InfoContext(ctx, "daily metrics computed",
		slog.String("owner_id", ownerID.String()),
		slog.Time("day", day),
		slog.Int("score", saved.ProductivityScore),
		slog.Bool("goal_achieved", saved.GoalAchieved),
	)

	return saved, nil
}

// goalForDay resolves the owner's goal for a day, falling back to the
// configured default when none is set.
func (s *Service) goalForDay(ctx context.Context, ownerID uuid.UUID, day time.Time) (float64, error) {
	goal, err := s.metrics.GetGoal(ctx, ownerID, day)
	if errors.Is(err, domain.ErrNotFound) {
		return s.defaultGoalHours, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load daily goal: %w", err)
	}
	return goal.GoalHours, nil
}

// streakForDay derives the day's streak counter from the previous day's
// stored row: a run of goal-achieved days extends by one, anything else
// resets to zero. A missing previous row counts as a broken run.
func (s *Service) streakForDay(ctx context.Context, ownerID uuid.UUID, day time.Time, achieved bool) (int, error) {
	if !achieved {
		return 0, nil
	}

	prev, err := s.metrics.GetByDay(ctx, ownerID, day.AddDate(0, 0, -1))
	if errors.Is(err, domain.ErrNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load previous day metrics: %w", err)
	}
	if !prev.GoalAchieved {
		return 1, nil
	}
	return prev.StreakDays + 1, nil
}
