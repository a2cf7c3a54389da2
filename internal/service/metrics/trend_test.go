package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

func dayRecord(day time.Time, score int, achieved bool) domain.DailyMetrics {
	return domain.DailyMetrics{
		Day:               day,
		ProductivityScore: score,
		GoalAchieved:      achieved,
	}
}

func series(scores []int, achieved []bool) []domain.DailyMetrics {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	records := make([]domain.DailyMetrics, len(scores))
	for i := range scores {
		records[i] = dayRecord(start.AddDate(0, 0, i), scores[i], achieved[i])
	}
	return records
}

func TestTrendStats_Empty(t *testing.T) {
	t.Parallel()

	stats := trendStats(nil)

	assert.Zero(t, stats.StreakDays)
	assert.Equal(t, domain.TrendStable, stats.Trend)
	assert.Zero(t, stats.DaysTracked)
}

func TestTrailingStreak_StopsAtFirstMiss(t *testing.T) {
	t.Parallel()

	records := series(
		[]int{50, 50, 50, 50, 50},
		[]bool{true, true, false, true, true},
	)

	assert.Equal(t, 2, trailingStreak(records))
}

func TestTrailingStreak_AllAchieved(t *testing.T) {
	t.Parallel()

	records := series([]int{50, 50, 50}, []bool{true, true, true})
	assert.Equal(t, 3, trailingStreak(records))
}

func TestTrailingStreak_LastMissed(t *testing.T) {
	t.Parallel()

	records := series([]int{50, 50}, []bool{true, false})
	assert.Zero(t, trailingStreak(records))
}

func TestClassifyTrend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []int
		want   domain.Trend
	}{
		{"improving", []int{40, 42, 80, 85}, domain.TrendImproving},
		{"declining", []int{80, 85, 40, 42}, domain.TrendDeclining},
		{"stable within threshold", []int{50, 52, 53, 55}, domain.TrendStable},
		{"too few records", []int{10, 90, 90}, domain.TrendStable},
		{"odd length splits at floor midpoint", []int{40, 40, 80, 80, 80}, domain.TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			achieved := make([]bool, len(tt.scores))
			assert.Equal(t, tt.want, classifyTrend(series(tt.scores, achieved)))
		})
	}
}

func TestTrendStats_Averages(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.DailyMetrics{
		{Day: start, ProductivityScore: 60, TodoCompletionRate: 50, AvgMood: 3, AvgEnergy: 4, ProductiveTime: 90, GoalAchieved: true},
		{Day: start.AddDate(0, 0, 1), ProductivityScore: 71, TodoCompletionRate: 75, AvgMood: 4, AvgEnergy: 3, ProductiveTime: 45, GoalAchieved: true},
	}

	stats := trendStats(records)

	assert.Equal(t, 66, stats.AvgScore)
	assert.Equal(t, 63, stats.AvgCompletionRate)
	assert.InDelta(t, 3.5, stats.AvgMood, 1e-9)
	assert.InDelta(t, 3.5, stats.AvgEnergy, 1e-9)
	assert.InDelta(t, 2.3, stats.ProductiveHours, 1e-9)
	assert.Equal(t, 2, stats.StreakDays)
	assert.Equal(t, 2, stats.DaysTracked)
}
