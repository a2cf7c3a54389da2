package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/internal/service/todo"
)

// todoService defines the minimal interface needed by TodoHandler.
type todoService interface {
	CreateTodo(ctx context.Context, input todo.CreateTodoInput) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, input todo.UpdateTodoInput) (*domain.Todo, error)
	GetTodo(ctx context.Context, id uuid.UUID) (*domain.Todo, error)
	ListTodos(ctx context.Context, filter domain.TodoFilter) (*todo.ListResult, error)
	DeleteTodo(ctx context.Context, id uuid.UUID) error
}

// TodoHandler serves todo REST endpoints.
type TodoHandler struct {
	svc todoService
	log *slog.Logger
}

// NewTodoHandler creates a TodoHandler.
func NewTodoHandler(svc todoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, log: logger.With("handler", "todo")}
}

type todoRequest struct {
	Title         string          `json:"title"`
	DueDate       string          `json:"dueDate"`
	CompletionPct int             `json:"completionPct"`
	Priority      string          `json:"priority"`
	Bucket        string          `json:"bucket"`
	IsRecurring   bool            `json:"isRecurring"`
	Recurrence    *recurrenceBody `json:"recurrence,omitempty"`
	ProjectID     *string         `json:"projectId,omitempty"`
}

type recurrenceBody struct {
	Pattern string `json:"pattern"`
	EndDate string `json:"endDate"`
}

type todoResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	DueDate       string          `json:"dueDate"`
	CompletionPct int             `json:"completionPct"`
	Completed     bool            `json:"completed"`
	CompletedAt   *string         `json:"completedAt,omitempty"`
	Priority      string          `json:"priority"`
	Bucket        string          `json:"bucket"`
	IsRecurring   bool            `json:"isRecurring"`
	Recurrence    *recurrenceBody `json:"recurrence,omitempty"`
	ParentID      *string         `json:"parentId,omitempty"`
	ProjectID     *string         `json:"projectId,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

type todoListResponse struct {
	Todos []todoResponse `json:"todos"`
	Total int            `json:"total"`
}

// Create handles POST /api/v1/todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := req.toFields()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.CreateTodo(r.Context(), todo.CreateTodoInput{TodoFields: fields})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTodoResponse(created))
}

// Update handles PUT /api/v1/todos/{id}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := req.toFields()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.UpdateTodo(r.Context(), todo.UpdateTodoInput{ID: id, TodoFields: fields})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(updated))
}

// Get handles GET /api/v1/todos/{id}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.svc.GetTodo(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(t))
}

// List handles GET /api/v1/todos with filter query parameters.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTodoFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.ListTodos(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]todoResponse, len(result.Todos))
	for i := range result.Todos {
		out[i] = toTodoResponse(&result.Todos[i])
	}
	writeJSON(w, http.StatusOK, todoListResponse{Todos: out, Total: result.Total})
}

// Delete handles DELETE /api/v1/todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.DeleteTodo(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseTodoFilter(r *http.Request) (domain.TodoFilter, error) {
	q := r.URL.Query()
	filter := domain.TodoFilter{
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	if v := q.Get("bucket"); v != "" {
		bucket := domain.TodoBucket(v)
		filter.Bucket = &bucket
	}
	if v := q.Get("priority"); v != "" {
		priority := domain.TodoPriority(v)
		filter.Priority = &priority
	}
	if v := q.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return domain.TodoFilter{}, err
		}
		filter.Completed = &completed
	}
	if v := q.Get("projectId"); v != "" {
		projectID, err := uuid.Parse(v)
		if err != nil {
			return domain.TodoFilter{}, err
		}
		filter.ProjectID = &projectID
	}
	if v := q.Get("parentId"); v != "" {
		parentID, err := uuid.Parse(v)
		if err != nil {
			return domain.TodoFilter{}, err
		}
		filter.ParentID = &parentID
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return domain.TodoFilter{}, err
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return domain.TodoFilter{}, err
		}
		filter.Offset = offset
	}

	return filter, nil
}

func (req *todoRequest) toFields() (todo.TodoFields, error) {
	fields := todo.TodoFields{
		Title:         req.Title,
		CompletionPct: req.CompletionPct,
		Priority:      domain.TodoPriority(req.Priority),
		Bucket:        domain.TodoBucket(req.Bucket),
		IsRecurring:   req.IsRecurring,
	}

	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			return todo.TodoFields{}, err
		}
		fields.DueDate = due
	}
	if req.Recurrence != nil {
		end, err := parseDate(req.Recurrence.EndDate)
		if err != nil {
			return todo.TodoFields{}, err
		}
		fields.Recurrence = &domain.Recurrence{
			Pattern: domain.RecurrencePattern(req.Recurrence.Pattern),
			EndDate: end,
		}
	}
	if req.ProjectID != nil {
		projectID, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return todo.TodoFields{}, err
		}
		fields.ProjectID = &projectID
	}

	return fields, nil
}

func toTodoResponse(t *domain.Todo) todoResponse {
	resp := todoResponse{
		ID:            t.ID.String(),
		Title:         t.Title,
		DueDate:       t.DueDate.Format(time.RFC3339),
		CompletionPct: t.CompletionPct,
		Completed:     t.Completed,
		Priority:      t.Priority.String(),
		Bucket:        t.Bucket.String(),
		IsRecurring:   t.IsRecurring,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	if t.Recurrence != nil {
		resp.Recurrence = &recurrenceBody{
			Pattern: t.Recurrence.Pattern.String(),
			EndDate: t.Recurrence.EndDate.Format(time.RFC3339),
		}
	}
	if t.ParentID != nil {
		s := t.ParentID.String()
		resp.ParentID = &s
	}
	if t.ProjectID != nil {
		s := t.ProjectID.String()
		resp.ProjectID = &s
	}
	return resp
}
