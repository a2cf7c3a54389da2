package todo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// UpdateTodo rewrites an existing todo after full revalidation. The derived
// completion state (flag and timestamp) is recomputed from the submitted
// percentage and travels in the same write. Editing a recurring parent does
// not regenerate its occurrences; already-materialized occurrences keep
// their snapshot data.
func (s *Service) UpdateTodo(ctx context.Context, input UpdateTodoInput) (*domain.Todo, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Ownership check; 404 for other owners' todos.
	current, err := s.todos.GetByID(ctx, ownerID, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}

	if current.IsOccurrence() && input.IsRecurring {
		return nil, domain.NewValidationError("isRecurring", "an occurrence cannot become recurring")
	}

	t := &domain.Todo{
		ID:            current.ID,
		OwnerID:       ownerID,
		Title:         input.Title,
		DueDate:       input.DueDate,
		CompletionPct: current.CompletionPct,
		Completed:     current.Completed,
		CompletedAt:   current.CompletedAt,
		Priority:      input.Priority,
		Bucket:        input.Bucket,
		IsRecurring:   input.IsRecurring,
		Recurrence:    input.Recurrence,
		ParentID:      current.ParentID,
		ProjectID:     input.ProjectID,
	}
	t.ApplyCompletion(input.CompletionPct, s.now())

	updated, err := s.todos.Update(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}

	s.log.InfoContext(ctx, "todo updated",
		slog.String("owner_id", ownerID.String()),
		slog.String("todo_id", updated.ID.String()),
		slog.Int("completion_pct", updated.CompletionPct),
		slog.Bool("completed", updated.Completed),
	)

	return updated, nil
}
