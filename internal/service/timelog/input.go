package timelog

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// EntryFields holds the client-settable fields shared by create and update.
// Duration is deliberately absent: it is always derived server-side.
type EntryFields struct {
	Start        time.Time
	End          time.Time
	Category     domain.TimeLogCategory
	Activity     string
	Productivity int
	Mood         int
	Energy       int
	Notes        *string
	TodoID       *uuid.UUID
	IsPlanned    bool
}

// Validate checks all fields and collects all errors.
func (f *EntryFields) Validate() error {
	var errs []domain.FieldError

	if f.Start.IsZero() {
		errs = append(errs, domain.FieldError{Field: "startTime", Message: "required"})
	}
	if f.End.IsZero() {
		errs = append(errs, domain.FieldError{Field: "endTime", Message: "required"})
	}
	if !f.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if f.Activity == "" {
		errs = append(errs, domain.FieldError{Field: "activity", Message: "required"})
	}
	errs = appendRatingError(errs, "productivity", f.Productivity)
	errs = appendRatingError(errs, "mood", f.Mood)
	errs = appendRatingError(errs, "energy", f.Energy)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func appendRatingError(errs []domain.FieldError, field string, v int) []domain.FieldError {
	if v < 1 || v > 5 {
		errs = append(errs, domain.FieldError{Field: field, Message: "must be between 1 and 5"})
	}
	return errs
}

// CreateEntryInput holds the parameters for logging a new interval.
type CreateEntryInput struct {
	EntryFields
}

// UpdateEntryInput holds the parameters for rewriting an existing entry.
type UpdateEntryInput struct {
	ID uuid.UUID
	EntryFields
}

// Validate checks all fields and collects all errors.
func (i *UpdateEntryInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return i.EntryFields.Validate()
}
