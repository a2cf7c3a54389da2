package timelog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// CreateEntry validates and persists a new time-log interval. The calendar
// day is derived from the start instant via the day policy, and the stored
// duration is recomputed from start/end.
func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.TimeLogEntry, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	day := s.days.DayKey(input.Start)

	// The overlap check and the insert run on one snapshot; the exclusion
	// constraint still arbitrates concurrent writers.
	var created *domain.TimeLogEntry
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.entries.ListByDay(txCtx, ownerID, day)
		if err != nil {
			return fmt.Errorf("load day entries: %w", err)
		}

		duration, err := ValidateInterval(existing, input.Start, input.End, uuid.Nil)
		if err != nil {
			return err
		}

		entry := &domain.TimeLogEntry{
			ID:           uuid.New(),
			OwnerID:      ownerID,
			Day:          day,
			Start:        input.Start,
			End:          input.End,
			DurationMin:  duration,
			Category:     input.Category,
			Activity:     input.Activity,
			Productivity: input.Productivity,
			Mood:         input.Mood,
			Energy:       input.Energy,
			Notes:        input.Notes,
			TodoID:       input.TodoID,
			IsPlanned:    input.IsPlanned,
		}

		created, err = s.entries.Create(txCtx, entry)
		if err != nil {
			return fmt.Errorf("create time log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "time log created",
		slog.String("owner_id", ownerID.String()),
		slog.String("entry_id", created.ID.String()),
		slog.Int("duration_min", created.DurationMin),
		slog.String("category", created.Category.String()),
	)

	return created, nil
}
