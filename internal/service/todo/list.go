package todo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// ListResult is a page of todos plus the unpaginated total.
type ListResult struct {
	Todos []domain.Todo
	Total int
}

// ListTodos returns the owner's todos matching the filter.
func (s *Service) ListTodos(ctx context.Context, filter domain.TodoFilter) (*ListResult, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if filter.Bucket != nil && !filter.Bucket.IsValid() {
		return nil, domain.NewValidationError("bucket", "unknown bucket")
	}
	if filter.Priority != nil && !filter.Priority.IsValid() {
		return nil, domain.NewValidationError("priority", "unknown priority")
	}

	todos, total, err := s.todos.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return &ListResult{Todos: todos, Total: total}, nil
}

// GetTodo returns one of the owner's todos by id.
func (s *Service) GetTodo(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	t, err := s.todos.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return t, nil
}
