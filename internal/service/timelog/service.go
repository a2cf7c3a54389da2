// Package timelog implements time-log business logic: interval validation,
// duration derivation, and entry CRUD.
package timelog

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

type entryRepo interface {
	Create(ctx context.Context, e *domain.TimeLogEntry) (*domain.TimeLogEntry, error)
	Update(ctx context.Context, e *domain.TimeLogEntry) (*domain.TimeLogEntry, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.TimeLogEntry, error)
	ListByDay(ctx context.Context, ownerID uuid.UUID, day time.Time) ([]domain.TimeLogEntry, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// txManager defines the transaction manager interface needed by the service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the time-log business logic.
type Service struct {
	entries entryRepo
	tx      txManager
	days    domain.DayPolicy
	log     *slog.Logger
}

// NewService creates a new time-log service.
func NewService(log *slog.Logger, entries entryRepo, tx txManager, days domain.DayPolicy) *Service {
	return &Service{
		entries: entries,
		tx:      tx,
		days:    days,
		log:     log.With("service", "timelog"),
	}
}
