package timelog

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// IntervalDuration validates the time range and derives its duration in
// whole minutes. The stored duration is always this value; client-supplied
// durations are never trusted.
func IntervalDuration(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, domain.NewValidationError("endTime", "end must be after start")
	}
	return int(math.Round(end.Sub(start).Minutes())), nil
}

// CheckOverlap rejects [start, end) if it intersects any existing interval,
// skipping excludeID (the entry being edited). Intervals are half-open:
// an entry ending exactly at start does not conflict.
//
// This predicate is the single source of overlap truth for both create and
// update paths; the storage exclusion constraint enforces the same rule for
// concurrent writers.
func CheckOverlap(existing []domain.TimeLogEntry, start, end time.Time, excludeID uuid.UUID) error {
	for _, e := range existing {
		if e.ID == excludeID {
			continue
		}
		if e.Overlaps(start, end) {
			return &domain.OverlapError{
				ExistingStart: e.Start.Format(time.RFC3339),
				ExistingEnd:   e.End.Format(time.RFC3339),
			}
		}
	}
	return nil
}

// ValidateInterval runs the full check-and-compute: range validation,
// duration derivation, and overlap rejection against the given day's
// entries. Pure — persistence is the caller's job.
func ValidateInterval(existing []domain.TimeLogEntry, start, end time.Time, excludeID uuid.UUID) (int, error) {
	duration, err := IntervalDuration(start, end)
	if err != nil {
		return 0, err
	}
	if err := CheckOverlap(existing, start, end, excludeID); err != nil {
		return 0, err
	}
	return duration, nil
}
