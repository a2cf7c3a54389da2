package timelog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// UpdateEntry rewrites an existing entry after full revalidation. The day
// is re-derived from the new start instant, so overlap checking always runs
// against the day the edited interval actually lands on — never a stale
// day value.
func (s *Service) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*domain.TimeLogEntry, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Ownership check; 404 for other owners' entries.
	current, err := s.entries.GetByID(ctx, ownerID, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get time log: %w", err)
	}

	day := s.days.DayKey(input.Start)

	var updated *domain.TimeLogEntry
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.entries.ListByDay(txCtx, ownerID, day)
		if err != nil {
			return fmt.Errorf("load day entries: %w", err)
		}

		duration, err := ValidateInterval(existing, input.Start, input.End, input.ID)
		if err != nil {
			return err
		}

		entry := &domain.TimeLogEntry{
			ID:           current.ID,
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

		updated, err = s.entries.Update(txCtx, entry)
		if err != nil {
			return fmt.Errorf("update time log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "time log updated",
		slog.String("owner_id", ownerID.String()),
		slog.String("entry_id", updated.ID.String()),
		slog.Int("duration_min", updated.DurationMin),
	)

	return updated, nil
}
