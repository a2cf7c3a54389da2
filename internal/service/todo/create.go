package todo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// CreateTodo validates and persists a new todo. For a recurring todo the
// parent row is committed first, then its occurrences are generated and
// inserted in a second step. Expansion failure never rolls back the parent:
// the parent is returned and the failure is logged.
func (s *Service) CreateTodo(ctx context.Context, input CreateTodoInput) (*domain.Todo, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	t := &domain.Todo{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       input.Title,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Bucket:      input.Bucket,
		IsRecurring: input.IsRecurring,
		Recurrence:  input.Recurrence,
		ProjectID:   input.ProjectID,
	}
	t.ApplyCompletion(input.CompletionPct, s.now())

	created, err := s.todos.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.log.InfoContext(ctx, "todo created",
		slog.String("owner_id", ownerID.String()),
		slog.String("todo_id", created.ID.String()),
		slog.Bool("recurring", created.IsRecurring),
	)

	if created.IsRecurring {
		s.expandOccurrences(ctx, created)
	}

	return created, nil
}

// expandOccurrences generates and inserts occurrence rows for a freshly
// created recurring parent. Best effort: the parent already exists, so any
// failure here is logged and swallowed.
func (s *Service) expandOccurrences(ctx context.Context, parent *domain.Todo) {
	occurrences, err := ExpandOccurrences(parent)
	if err != nil {
		s.log.ErrorContext(ctx, "expand recurring todo",
			slog.String("todo_id", parent.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	if len(occurrences) == 0 {
		return
	}

	if err := s.todos.CreateBatch(ctx, occurrences); err != nil {
		s.log.ErrorContext(ctx, "insert todo occurrences",
			slog.String("todo_id", parent.ID.String()),
			slog.Int("count", len(occurrences)),
			slog.String("error", err.Error()),
		)
		return
	}

	s.log.InfoContext(ctx, "todo occurrences created",
		slog.String("todo_id", parent.ID.String()),
		slog.Int("count", len(occurrences)),
	)
}
