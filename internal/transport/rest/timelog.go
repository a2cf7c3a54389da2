package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/internal/service/timelog"
)

// timelogService defines the minimal interface needed by TimeLogHandler.
type timelogService interface {
	CreateEntry(ctx context.Context, input timelog.CreateEntryInput) (*domain.TimeLogEntry, error)
	UpdateEntry(ctx context.Context, input timelog.UpdateEntryInput) (*domain.TimeLogEntry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*domain.TimeLogEntry, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.TimeLogEntry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

// TimeLogHandler serves time-log REST endpoints.
type TimeLogHandler struct {
	svc timelogService
	log *slog.Logger
}

// NewTimeLogHandler creates a TimeLogHandler.
func NewTimeLogHandler(svc timelogService, logger *slog.Logger) *TimeLogHandler {
	return &TimeLogHandler{svc: svc, log: logger.With("handler", "timelog")}
}

type timeLogRequest struct {
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Category     string  `json:"category"`
	Activity     string  `json:"activity"`
	Productivity int     `json:"productivity"`
	Mood         int     `json:"mood"`
	Energy       int     `json:"energy"`
	Notes        *string `json:"notes,omitempty"`
	LinkedTodoID *string `json:"linkedTodoId,omitempty"`
	IsPlanned    bool    `json:"isPlanned,omitempty"`
}

type timeLogResponse struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Duration     int     `json:"duration"`
	Category     string  `json:"category"`
	Activity     string  `json:"activity"`
	Productivity int     `json:"productivity"`
	Mood         int     `json:"mood"`
	Energy       int     `json:"energy"`
	Notes        *string `json:"notes,omitempty"`
	LinkedTodoID *string `json:"linkedTodoId,omitempty"`
	IsPlanned    bool    `json:"isPlanned"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// Create handles POST /api/v1/time-logs.
func (h *TimeLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req timeLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := req.toFields()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.CreateEntry(r.Context(), timelog.CreateEntryInput{EntryFields: fields})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTimeLogResponse(created))
}

// Update handles PUT /api/v1/time-logs/{id}.
func (h *TimeLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req timeLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := req.toFields()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.UpdateEntry(r.Context(), timelog.UpdateEntryInput{ID: id, EntryFields: fields})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimeLogResponse(updated))
}

// Get handles GET /api/v1/time-logs/{id}.
func (h *TimeLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.svc.GetEntry(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimeLogResponse(entry))
}

// List handles GET /api/v1/time-logs?date=.
func (h *TimeLogHandler) List(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.svc.ListByDate(r.Context(), date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]timeLogResponse, len(entries))
	for i := range entries {
		out[i] = toTimeLogResponse(&entries[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"timeLogs": out})
}

// Delete handles DELETE /api/v1/time-logs/{id}.
func (h *TimeLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.DeleteEntry(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (req *timeLogRequest) toFields() (timelog.EntryFields, error) {
	fields := timelog.EntryFields{
		Category:     domain.TimeLogCategory(req.Category),
		Activity:     req.Activity,
		Productivity: req.Productivity,
		Mood:         req.Mood,
		Energy:       req.Energy,
		Notes:        req.Notes,
		IsPlanned:    req.IsPlanned,
	}

	if req.StartTime != "" {
		start, err := parseTimestamp(req.StartTime)
		if err != nil {
			return timelog.EntryFields{}, err
		}
		fields.Start = start
	}
	if req.EndTime != "" {
		end, err := parseTimestamp(req.EndTime)
		if err != nil {
			return timelog.EntryFields{}, err
		}
		fields.End = end
	}
	if req.LinkedTodoID != nil {
		todoID, err := uuid.Parse(*req.LinkedTodoID)
		if err != nil {
			return timelog.EntryFields{}, err
		}
		fields.TodoID = &todoID
	}

	return fields, nil
}

func toTimeLogResponse(e *domain.TimeLogEntry) timeLogResponse {
	resp := timeLogResponse{
		ID:           e.ID.String(),
		Date:         e.Day.Format("2006-01-02"),
		StartTime:    e.Start.Format(time.RFC3339),
		EndTime:      e.End.Format(time.RFC3339),
		Duration:     e.DurationMin,
		Category:     e.Category.String(),
		Activity:     e.Activity,
		Productivity: e.Productivity,
		Mood:         e.Mood,
		Energy:       e.Energy,
		Notes:        e.Notes,
		IsPlanned:    e.IsPlanned,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    e.UpdatedAt.Format(time.RFC3339),
	}
	if e.TodoID != nil {
		s := e.TodoID.String()
		resp.LinkedTodoID = &s
	}
	return resp
}
