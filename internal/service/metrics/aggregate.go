package metrics

import (
	"math"
	"sort"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// Score weights. Fixed constants of the formula, not configuration.
const (
	weightCompletion = 0.3
	weightTime       = 0.3
	weightQuality    = 0.4
)

// productiveRatingMin is the productivity rating at which an entry's
// minutes count as productive time.
const productiveRatingMin = 4

// dayAggregate is the pure per-day computation over one day's todos and
// time-log entries. Streak and identity fields are filled in by the caller.
func dayAggregate(todos []domain.Todo, entries []domain.TimeLogEntry, goalHours float64) domain.DailyMetrics {
	m := domain.DailyMetrics{
		TotalTodos:     len(todos),
		DailyGoalHours: goalHours,
	}

	for _, t := range todos {
		if t.Completed {
			m.CompletedTodos++
		}
	}
	if m.TotalTodos > 0 {
		m.TodoCompletionRate = roundInt(100 * float64(m.CompletedTodos) / float64(m.TotalTodos))
	}

	var sumProductivity, sumMood, sumEnergy int
	for _, e := range entries {
		m.TotalTimeLogged += e.DurationMin
		if e.Productivity >= productiveRatingMin {
			m.ProductiveTime += e.DurationMin
		}
		sumProductivity += e.Productivity
		sumMood += e.Mood
		sumEnergy += e.Energy
	}
	if n := len(entries); n > 0 {
		m.AvgProductivity = float64(sumProductivity) / float64(n)
		m.AvgMood = float64(sumMood) / float64(n)
		m.AvgEnergy = float64(sumEnergy) / float64(n)
	}

	m.Categories = categoryBreakdown(entries, m.TotalTimeLogged)
	m.ProductivityScore = productivityScore(m.TodoCompletionRate, m.ProductiveTime, goalHours, m.AvgProductivity)
	m.GoalAchieved = float64(m.ProductiveTime)/60 >= goalHours

	return m
}

// productivityScore computes the weighted 0-100 composite. The time
// component is rounded before weighting, matching the reported per-component
// values.
func productivityScore(completionRate, productiveMin int, goalHours, avgProductivity float64) int {
	timeScore := 0
	if goalHours > 0 {
		timeScore = roundInt(math.Min(100, 100*float64(productiveMin)/(goalHours*60)))
	}
	qualityScore := 100 * avgProductivity / 5

	return roundInt(weightCompletion*float64(completionRate) +
		weightTime*float64(timeScore) +
		weightQuality*qualityScore)
}

// categoryBreakdown groups entries by category summing duration, ordered by
// minutes descending for stable presentation.
func categoryBreakdown(entries []domain.TimeLogEntry, totalMin int) []domain.CategoryBreakdown {
	byCategory := map[domain.TimeLogCategory]int{}
	for _, e := range entries {
		byCategory[e.Category] += e.DurationMin
	}

	buckets := make([]domain.CategoryBreakdown, 0, len(byCategory))
	for category, minutes := range byCategory {
		pct := 0
		if totalMin > 0 {
			pct = roundInt(100 * float64(minutes) / float64(totalMin))
		}
		buckets = append(buckets, domain.CategoryBreakdown{
			Category: category,
			Minutes:  minutes,
			Percent:  pct,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Minutes != buckets[j].Minutes {
			return buckets[i].Minutes > buckets[j].Minutes
		}
		return buckets[i].Category < buckets[j].Category
	})

	return buckets
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
