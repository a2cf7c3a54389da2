package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeLogEntry is a logged activity interval on a single calendar day.
// Day is the normalized day key (see DayPolicy); Start/End are instants.
// DurationMin is always derived server-side from Start/End and never
// taken from client input.
type TimeLogEntry struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Day          time.Time
	Start        time.Time
	End          time.Time
	DurationMin  int
	Category     TimeLogCategory
	Activity     string
	Productivity int
	Mood         int
	Energy       int
	Notes        *string
	TodoID       *uuid.UUID
	IsPlanned    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Overlaps reports whether the entry's [Start, End) interval intersects
// the given half-open interval.
func (e TimeLogEntry) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}
