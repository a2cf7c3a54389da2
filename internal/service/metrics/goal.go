package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// SetDailyGoal sets the owner's productive-hours target for a day.
func (s *Service) SetDailyGoal(ctx context.Context, date time.Time, goalHours float64) (*domain.DailyGoal, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if goalHours <= 0 || goalHours > 24 {
		return nil, domain.NewValidationError("goalHours", "must be greater than 0 and at most 24")
	}

	day := s.days.DayKey(date)

	goal, err := s.metrics.UpsertGoal(ctx, ownerID, day, goalHours)
	if err != nil {
		return nil, fmt.Errorf("set daily goal: %w", err)
	}

	s.log.InfoContext(ctx, "daily goal set",
		slog.String("owner_id", ownerID.String()),
		slog.Time("day", day),
		slog.Float64("goal_hours", goalHours),
	)

	return goal, nil
}

// GetDailyGoal returns the owner's goal for a day, synthesizing the
// configured default when none is stored.
func (s *Service) GetDailyGoal(ctx context.Context, date time.Time) (*domain.DailyGoal, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	day := s.days.DayKey(date)

	hours, err := s.goalForDay(ctx, ownerID, day)
	if err != nil {
		return nil, err
	}

	return &domain.DailyGoal{
		OwnerID:   ownerID,
		Day:       day,
		GoalHours: hours,
	}, nil
}
