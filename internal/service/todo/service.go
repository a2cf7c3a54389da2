// Package todo implements todo business logic: CRUD, list filtering, and
// recurrence expansion into concrete occurrences.
package todo

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type todoRepo interface {
	Create(ctx context.Context, t *domain.Todo) (*domain.Todo, error)
	CreateBatch(ctx context.Context, todos []domain.Todo) error
	Update(ctx context.Context, t *domain.Todo) (*domain.Todo, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Todo, error)
	List(ctx context.Context, ownerID uuid.UUID, filter domain.TodoFilter) ([]domain.Todo, int, error)
	ListDueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.Todo, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the todo business logic.
type Service struct {
	todos todoRepo
	days  domain.DayPolicy
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a new todo service.
func NewService(log *slog.Logger, todos todoRepo, days domain.DayPolicy) *Service {
	return &Service{
		todos: todos,
		days:  days,
		log:   log.With("service", "todo"),
		now:   time.Now,
	}
}
