package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyMetrics is the materialized daily aggregate for one owner+day.
// It is derived state: fully recomputed from todos and time logs on every
// refresh, never patched in place. Todos and time logs remain the source
// of truth.
type DailyMetrics struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	Day                time.Time
	TotalTodos         int
	CompletedTodos     int
	TodoCompletionRate int
	TotalTimeLogged    int
	ProductiveTime     int
	AvgProductivity    float64
	AvgMood            float64
	AvgEnergy          float64
	ProductivityScore  int
	Categories         []CategoryBreakdown
	DailyGoalHours     float64
	GoalAchieved       bool
	StreakDays         int
	ComputedAt         time.Time
}

// CategoryBreakdown is one bucket of the per-day category duration split.
type CategoryBreakdown struct {
	Category TimeLogCategory
	Minutes  int
	Percent  int
}

// DailyGoal is the per-day target of productive hours for an owner.
type DailyGoal struct {
	OwnerID   uuid.UUID
	Day       time.Time
	GoalHours float64
	UpdatedAt time.Time
}

// RangeSummary aggregates daily metrics over an inclusive day range.
type RangeSummary struct {
	StartDay          time.Time
	EndDay            time.Time
	AvgScore          int
	AvgCompletionRate int
	AvgProductivity   float64
	AvgMood           float64
	AvgEnergy         float64
	ProductiveTime    int
	TotalTimeLogged   int
	TotalTodos        int
	CompletedTodos    int
	GoalsAchieved     int
	DaysTracked       int
}

// WeekBucket is one week-aligned slice of a monthly summary.
type WeekBucket struct {
	Index   int
	Start   time.Time
	Summary RangeSummary
}

// MonthlySummary is a calendar-month rollup with a week-by-week breakdown.
type MonthlySummary struct {
	RangeSummary
	Weeks []WeekBucket
}

// TrendStats summarizes an ordered series of daily metrics.
type TrendStats struct {
	AvgScore          int
	AvgCompletionRate int
	AvgMood           float64
	AvgEnergy         float64
	ProductiveHours   float64
	StreakDays        int
	Trend             Trend
	DaysTracked       int
}
