package todo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// maxOccurrences bounds a single expansion. A daily pattern over ten years
// stays well under it; anything larger is almost certainly a client mistake.
const maxOccurrences = 1000

// ExpandOccurrences generates the concrete occurrence rows for a recurring
// parent: one todo per step of the pattern after the parent's own due date,
// up to and including the recurrence end date. The parent's due date itself
// is not duplicated. Monthly and yearly steps are computed from the parent's
// due date as a fixed anchor, clamping to the last valid day of the target
// month (Jan 31 + 1 month is Feb 28 or 29, + 2 months is Mar 31).
func ExpandOccurrences(parent *domain.Todo) ([]domain.Todo, error) {
	if parent.Recurrence == nil {
		return nil, fmt.Errorf("todo %s: no recurrence to expand", parent.ID)
	}

	pattern := parent.Recurrence.Pattern
	end := parent.Recurrence.EndDate

	occurrences := []domain.Todo{}
	for step := 1; ; step++ {
		due, err := occurrenceDue(parent.DueDate, pattern, step)
		if err != nil {
			return nil, err
		}
		if due.After(end) {
			break
		}
		if len(occurrences) >= maxOccurrences {
			return nil, fmt.Errorf("todo %s: recurrence expands to more than %d occurrences", parent.ID, maxOccurrences)
		}
		occurrences = append(occurrences, makeOccurrence(parent, due))
	}

	return occurrences, nil
}

// occurrenceDue returns the due date of the step-th occurrence after the
// anchor. Every pattern must be handled explicitly; an unknown pattern is
// an error, never a silent no-op.
func occurrenceDue(anchor time.Time, pattern domain.RecurrencePattern, step int) (time.Time, error) {
	switch pattern {
	case domain.RecurDaily:
		return anchor.AddDate(0, 0, step), nil
	case domain.RecurWeekly:
		return anchor.AddDate(0, 0, 7*step), nil
	case domain.RecurMonthly:
		return addMonthsClamped(anchor, step), nil
	case domain.RecurYearly:
		return addMonthsClamped(anchor, 12*step), nil
	default:
		return time.Time{}, fmt.Errorf("unknown recurrence pattern %q", pattern)
	}
}

// addMonthsClamped adds months keeping the anchor's day-of-month where the
// target month has it, otherwise clamping to the target month's last day.
// time.AddDate would normalize Jan 31 + 1 month to Mar 2/3 instead.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	firstOfTarget := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// makeOccurrence builds one occurrence row carrying the parent's snapshot.
// Occurrences are plain todos: not recurring themselves, linked via ParentID.
func makeOccurrence(parent *domain.Todo, due time.Time) domain.Todo {
	parentID := parent.ID
	return domain.Todo{
		ID:        uuid.New(),
		OwnerID:   parent.OwnerID,
		Title:     parent.Title,
		DueDate:   due,
		Priority:  parent.Priority,
		Bucket:    parent.Bucket,
		ParentID:  &parentID,
		ProjectID: parent.ProjectID,
	}
}
