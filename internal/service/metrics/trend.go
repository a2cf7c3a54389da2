package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// minTrendRecords is the smallest series for which a direction is computed;
// shorter series are always reported stable.
const minTrendRecords = 4

// trendThreshold is the score-difference band treated as stable.
const trendThreshold = 5.0

// TrendRange returns trend statistics for the owner's stored daily rows in
// the inclusive [start, end] day range.
func (s *Service) TrendRange(ctx context.Context, start, end time.Time) (*domain.TrendStats, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	startDay := s.days.DayKey(start)
	endDay := s.days.DayKey(end)

	if endDay.Before(startDay) {
		return nil, domain.NewValidationError("endDate", "must not be before start date")
	}
	if s.maxTrendDays > 0 && domain.DaysBetween(startDay, endDay)+1 > s.maxTrendDays {
		return nil, domain.NewValidationError("endDate",
			fmt.Sprintf("range must not exceed %d days", s.maxTrendDays))
	}

	records, err := s.metrics.ListRange(ctx, ownerID, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("load trend metrics: %w", err)
	}

	stats := trendStats(records)
	return &stats, nil
}

// trendStats is the pure computation over daily rows ordered by day
// ascending: series averages, the trailing goal streak, and the direction
// classification.
func trendStats(records []domain.DailyMetrics) domain.TrendStats {
	stats := domain.TrendStats{
		Trend:       domain.TrendStable,
		DaysTracked: len(records),
	}
	if len(records) == 0 {
		return stats
	}

	var sumScore, sumRate, sumProductiveMin int
	var sumMood, sumEnergy float64
	for _, r := range records {
		sumScore += r.ProductivityScore
		sumRate += r.TodoCompletionRate
		sumProductiveMin += r.ProductiveTime
		sumMood += r.AvgMood
		sumEnergy += r.AvgEnergy
	}

	n := float64(len(records))
	stats.AvgScore = roundInt(float64(sumScore) / n)
	stats.AvgCompletionRate = roundInt(float64(sumRate) / n)
	stats.AvgMood = round1(sumMood / n)
	stats.AvgEnergy = round1(sumEnergy / n)
	stats.ProductiveHours = round1(float64(sumProductiveMin) / 60)
	stats.StreakDays = trailingStreak(records)
	stats.Trend = classifyTrend(records)

	return stats
}

// trailingStreak counts consecutive goal-achieved days scanning backward
// from the most recent record, stopping at the first miss.
func trailingStreak(records []domain.DailyMetrics) int {
	streak := 0
	for i := len(records) - 1; i >= 0; i-- {
		if !records[i].GoalAchieved {
			break
		}
		streak++
	}
	return streak
}

// classifyTrend splits the series at its midpoint and compares half-average
// scores. The difference must clear the threshold in either direction to
// leave stable.
func classifyTrend(records []domain.DailyMetrics) domain.Trend {
	if len(records) < minTrendRecords {
		return domain.TrendStable
	}

	mid := len(records) / 2
	diff := avgScore(records[mid:]) - avgScore(records[:mid])

	switch {
	case diff > trendThreshold:
		return domain.TrendImproving
	case diff < -trendThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

func avgScore(records []domain.DailyMetrics) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, r := range records {
		sum += r.ProductivityScore
	}
	return float64(sum) / float64(len(records))
}
