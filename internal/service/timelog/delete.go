package timelog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// DeleteEntry removes one of the owner's entries.
func (s *Service) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.entries.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete time log: %w", err)
	}

	s.log.InfoContext(ctx, "time log deleted",
		slog.String("owner_id", ownerID.String()),
		slog.String("entry_id", id.String()),
	)

	return nil
}
