package todo

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// TodoFields holds the client-settable fields shared by create and update.
// Completed and CompletedAt are deliberately absent: both are derived from
// CompletionPct server-side.
type TodoFields struct {
	Title         string
	DueDate       time.Time
	CompletionPct int
	Priority      domain.TodoPriority
	Bucket        domain.TodoBucket
	IsRecurring   bool
	Recurrence    *domain.Recurrence
	ProjectID     *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (f *TodoFields) Validate() error {
	var errs []domain.FieldError

	if f.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if f.DueDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "dueDate", Message: "required"})
	}
	if f.CompletionPct < 0 || f.CompletionPct > 100 {
		errs = append(errs, domain.FieldError{Field: "completionPct", Message: "must be between 0 and 100"})
	}
	if !f.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}
	if !f.Bucket.IsValid() {
		errs = append(errs, domain.FieldError{Field: "bucket", Message: "unknown bucket"})
	}

	errs = f.validateRecurrence(errs)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (f *TodoFields) validateRecurrence(errs []domain.FieldError) []domain.FieldError {
	if !f.IsRecurring {
		if f.Recurrence != nil {
			errs = append(errs, domain.FieldError{Field: "recurrence", Message: "only allowed on recurring todos"})
		}
		return errs
	}

	if f.Recurrence == nil {
		return append(errs, domain.FieldError{Field: "recurrence", Message: "required for recurring todos"})
	}
	if !f.Recurrence.Pattern.IsValid() {
		errs = append(errs, domain.FieldError{Field: "recurrence.pattern", Message: "unknown pattern"})
	}
	if f.Recurrence.EndDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "recurrence.endDate", Message: "required"})
	} else if !f.DueDate.IsZero() && !f.Recurrence.EndDate.After(f.DueDate) {
		errs = append(errs, domain.FieldError{Field: "recurrence.endDate", Message: "must be after due date"})
	}
	return errs
}

// CreateTodoInput holds the parameters for creating a todo.
type CreateTodoInput struct {
	TodoFields
}

// UpdateTodoInput holds the parameters for rewriting an existing todo.
type UpdateTodoInput struct {
	ID uuid.UUID
	TodoFields
}

// Validate checks all fields and collects all errors.
func (i *UpdateTodoInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return i.TodoFields.Validate()
}
