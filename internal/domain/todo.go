package domain

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a dated task owned by a single user.
//
// A recurring todo (IsRecurring with Recurrence set) acts as the defining
// parent; its generated occurrences are independent rows carrying the
// parent's snapshot data with IsRecurring=false and ParentID set.
// Completed is derived: true iff CompletionPct >= 100. CompletedAt is set
// in the same write that crosses the boundary.
type Todo struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	DueDate       time.Time
	CompletionPct int
	Completed     bool
	CompletedAt   *time.Time
	Priority      TodoPriority
	Bucket        TodoBucket
	IsRecurring   bool
	Recurrence    *Recurrence
	ParentID      *uuid.UUID
	ProjectID     *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Recurrence describes how a recurring todo repeats.
type Recurrence struct {
	Pattern RecurrencePattern
	EndDate time.Time
}

// IsOccurrence reports whether the todo is a generated instance of a
// recurring parent.
func (t Todo) IsOccurrence() bool { return t.ParentID != nil }

// TodoFilter defines parameters for listing an owner's todos.
// Sorting and pagination defaults are applied by the repository.
type TodoFilter struct {
	Bucket    *TodoBucket
	Completed *bool
	Priority  *TodoPriority
	ProjectID *uuid.UUID
	ParentID  *uuid.UUID
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// ApplyCompletion sets CompletionPct (clamped to [0,100]) and keeps the
// derived Completed flag and CompletedAt timestamp consistent with it.
// now is used only when the 100 boundary is crossed upward.
func (t *Todo) ApplyCompletion(pct int, now time.Time) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	t.CompletionPct = pct

	wasCompleted := t.Completed
	t.Completed = pct >= 100

	switch {
	case t.Completed && !wasCompleted:
		t.CompletedAt = &now
	case !t.Completed && wasCompleted:
		t.CompletedAt = nil
	}
}
