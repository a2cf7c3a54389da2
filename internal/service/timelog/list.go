package timelog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// ListByDate returns the owner's entries for the calendar day the given
// instant falls on, ordered by start time.
func (s *Service) ListByDate(ctx context.Context, date time.Time) ([]domain.TimeLogEntry, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	entries, err := s.entries.ListByDay(ctx, ownerID, s.days.DayKey(date))
	if err != nil {
		return nil, fmt.Errorf("list time logs: %w", err)
	}
	return entries, nil
}

// GetEntry returns one of the owner's entries by id.
func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (*domain.TimeLogEntry, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	entry, err := s.entries.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("get time log: %w", err)
	}
	return entry, nil
}
