package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

func TestSummarizeRange_Empty(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	summary := summarizeRange(nil, start, end)

	assert.Equal(t, start, summary.StartDay)
	assert.Equal(t, end, summary.EndDay)
	assert.Zero(t, summary.DaysTracked)
	assert.Zero(t, summary.AvgScore)
	assert.Zero(t, summary.TotalTimeLogged)
}

func TestSummarizeRange_SumsAndAverages(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.DailyMetrics{
		{
			Day: start, ProductivityScore: 80, TodoCompletionRate: 100,
			AvgProductivity: 4, AvgMood: 3, AvgEnergy: 4,
			ProductiveTime: 300, TotalTimeLogged: 400,
			TotalTodos: 5, CompletedTodos: 5, GoalAchieved: true,
		},
		{
			Day: start.AddDate(0, 0, 1), ProductivityScore: 41, TodoCompletionRate: 50,
			AvgProductivity: 3, AvgMood: 4, AvgEnergy: 3,
			ProductiveTime: 100, TotalTimeLogged: 250,
			TotalTodos: 4, CompletedTodos: 2,
		},
	}

	summary := summarizeRange(records, start, start.AddDate(0, 0, 6))

	assert.Equal(t, 2, summary.DaysTracked)
	assert.Equal(t, 61, summary.AvgScore)
	assert.Equal(t, 75, summary.AvgCompletionRate)
	assert.InDelta(t, 3.5, summary.AvgProductivity, 1e-9)
	assert.InDelta(t, 3.5, summary.AvgMood, 1e-9)
	assert.InDelta(t, 3.5, summary.AvgEnergy, 1e-9)
	assert.Equal(t, 400, summary.ProductiveTime)
	assert.Equal(t, 650, summary.TotalTimeLogged)
	assert.Equal(t, 9, summary.TotalTodos)
	assert.Equal(t, 7, summary.CompletedTodos)
	assert.Equal(t, 1, summary.GoalsAchieved)
}

func TestWeekBuckets_GroupsByWeekAlignedIndex(t *testing.T) {
	t.Parallel()

	// June 2025 starts on a Sunday, so the week-aligned month start is
	// June 1 itself.
	monthStart := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	records := []domain.DailyMetrics{
		{Day: monthStart, ProductivityScore: 50},
		{Day: monthStart.AddDate(0, 0, 3), ProductivityScore: 70},
		{Day: monthStart.AddDate(0, 0, 16), ProductivityScore: 90},
	}

	buckets := weekBuckets(records, monthStart)

	// Week 1 has no tracked days and is dropped.
	require.Len(t, buckets, 2)

	assert.Equal(t, 0, buckets[0].Index)
	assert.Equal(t, monthStart, buckets[0].Start)
	assert.Equal(t, 2, buckets[0].Summary.DaysTracked)
	assert.Equal(t, 60, buckets[0].Summary.AvgScore)

	assert.Equal(t, 2, buckets[1].Index)
	assert.Equal(t, monthStart.AddDate(0, 0, 14), buckets[1].Start)
	assert.Equal(t, 1, buckets[1].Summary.DaysTracked)
	assert.Equal(t, 90, buckets[1].Summary.AvgScore)
}

func TestWeekBuckets_OffsetMonthStart(t *testing.T) {
	t.Parallel()

	// July 1 2025 is a Tuesday; the week-aligned start is Sunday June 29.
	alignedStart := time.Date(2025, time.June, 29, 0, 0, 0, 0, time.UTC)

	records := []domain.DailyMetrics{
		{Day: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), ProductivityScore: 40},
		{Day: time.Date(2025, time.July, 6, 0, 0, 0, 0, time.UTC), ProductivityScore: 60},
	}

	buckets := weekBuckets(records, alignedStart)

	require.Len(t, buckets, 2)
	assert.Equal(t, 0, buckets[0].Index)
	assert.Equal(t, 1, buckets[1].Index)
	assert.Equal(t, alignedStart.AddDate(0, 0, 7), buckets[1].Start)
}

func TestWeekBuckets_Empty(t *testing.T) {
	t.Parallel()

	buckets := weekBuckets(nil, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, buckets)
}
