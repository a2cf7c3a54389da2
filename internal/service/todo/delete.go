package todo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// DeleteTodo removes one of the owner's todos. Deleting a recurring parent
// cascades to its generated occurrences at the database level.
func (s *Service) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.todos.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	s.log.InfoContext(ctx, "todo deleted",
		slog.String("owner_id", ownerID.String()),
		slog.String("todo_id", id.String()),
	)

	return nil
}
