package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// WeeklySummary rolls the Sunday-to-Saturday week containing the given
// instant into one summary. The target day itself is recomputed first so
// the rollup never serves a stale row for the day being asked about.
func (s *Service) WeeklySummary(ctx context.Context, date time.Time) (*domain.RangeSummary, error) {
	if _, err := s.ComputeDaily(ctx, date); err != nil {
		return nil, err
	}

	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	start, end := s.days.WeekWindow(s.days.DayKey(date))
	records, err := s.metrics.ListRange(ctx, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load weekly metrics: %w", err)
	}

	summary := summarizeRange(records, start, end)
	return &summary, nil
}

// MonthlySummary rolls the calendar month containing the given instant into
// one summary plus a week-aligned breakdown.
func (s *Service) MonthlySummary(ctx context.Context, date time.Time) (*domain.MonthlySummary, error) {
	if _, err := s.ComputeDaily(ctx, date); err != nil {
		return nil, err
	}

	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	start, end := s.days.MonthWindow(s.days.DayKey(date))
	records, err := s.metrics.ListRange(ctx, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load monthly metrics: %w", err)
	}

	return &domain.MonthlySummary{
		RangeSummary: summarizeRange(records, start, end),
		Weeks:        weekBuckets(records, s.days.WeekStart(start)),
	}, nil
}

// summarizeRange is the pure rollup over daily rows: sums the volume
// fields, averages the rate and rating fields, counts achieved goals.
// Averages are over days tracked, not calendar days in range.
func summarizeRange(records []domain.DailyMetrics, startDay, endDay time.Time) domain.RangeSummary {
	summary := domain.RangeSummary{
		StartDay:    startDay,
		EndDay:      endDay,
		DaysTracked: len(records),
	}
	if len(records) == 0 {
		return summary
	}

	var sumScore, sumRate int
	var sumProductivity, sumMood, sumEnergy float64
	for _, r := range records {
		sumScore += r.ProductivityScore
		sumRate += r.TodoCompletionRate
		sumProductivity += r.AvgProductivity
		sumMood += r.AvgMood
		sumEnergy += r.AvgEnergy
		summary.ProductiveTime += r.ProductiveTime
		summary.TotalTimeLogged += r.TotalTimeLogged
		summary.TotalTodos += r.TotalTodos
		summary.CompletedTodos += r.CompletedTodos
		if r.GoalAchieved {
			summary.GoalsAchieved++
		}
	}

	n := float64(len(records))
	summary.AvgScore = roundInt(float64(sumScore) / n)
	summary.AvgCompletionRate = roundInt(float64(sumRate) / n)
	summary.AvgProductivity = round1(sumProductivity / n)
	summary.AvgMood = round1(sumMood / n)
	summary.AvgEnergy = round1(sumEnergy / n)

	return summary
}

// weekBuckets groups daily rows into week-aligned slices of a month.
// weekAlignedStart is the Sunday on or before the first of the month; a
// row's bucket index is its whole-week distance from that Sunday. Weeks
// with no tracked days are omitted.
func weekBuckets(records []domain.DailyMetrics, weekAlignedStart time.Time) []domain.WeekBucket {
	byIndex := map[int][]domain.DailyMetrics{}
	for _, r := range records {
		idx := domain.DaysBetween(weekAlignedStart, r.Day) / 7
		byIndex[idx] = append(byIndex[idx], r)
	}

	maxIdx := -1
	for idx := range byIndex {
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	buckets := []domain.WeekBucket{}
	for idx := 0; idx <= maxIdx; idx++ {
		rows, ok := byIndex[idx]
		if !ok {
			continue
		}
		start := weekAlignedStart.AddDate(0, 0, 7*idx)
		buckets = append(buckets, domain.WeekBucket{
			Index:   idx,
			Start:   start,
			Summary: summarizeRange(rows, start, start.AddDate(0, 0, 6)),
		})
	}

	return buckets
}
