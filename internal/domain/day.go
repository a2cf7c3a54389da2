package domain

import "time"

// DayPolicy is the single day-bucketing rule for the whole system.
// Every call site that needs to answer "which calendar day does this
// instant belong to" goes through one DayPolicy instance, configured
// once at startup. Day keys are normalized to midnight UTC of the civil
// date observed in the policy's location, so they compare and subtract
// cleanly regardless of the location's offset.
type DayPolicy struct {
	loc *time.Location
}

// NewDayPolicy creates a DayPolicy for the given location.
// A nil location means UTC.
func NewDayPolicy(loc *time.Location) DayPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return DayPolicy{loc: loc}
}

// Location returns the policy's location.
func (p DayPolicy) Location() *time.Location {
	if p.loc == nil {
		return time.UTC
	}
	return p.loc
}

// DayKey returns the normalized day key for an instant: midnight UTC of
// the civil date the instant falls on in the policy's location.
func (p DayPolicy) DayKey(t time.Time) time.Time {
	lt := t.In(p.Location())
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

// DayWindow returns the half-open instant range [start, end) covering the
// given day key in the policy's location.
func (p DayPolicy) DayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, p.Location())
	// AddDate handles DST transitions; Add(24h) does not.
	return start, start.AddDate(0, 0, 1)
}

// WeekStart returns the day key of the Sunday on or before the given day key.
func (p DayPolicy) WeekStart(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeekWindow returns the inclusive Sunday–Saturday day-key range containing day.
func (p DayPolicy) WeekWindow(day time.Time) (time.Time, time.Time) {
	start := p.WeekStart(day)
	return start, start.AddDate(0, 0, 6)
}

// MonthWindow returns the inclusive first-to-last day-key range of the
// calendar month containing day.
func (p DayPolicy) MonthWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// DaysBetween returns the whole number of days from day key a to day key b.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
