package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/internal/service/todo"
)

type todoServiceMock struct {
	CreateTodoFunc func(ctx context.Context, input todo.CreateTodoInput) (*domain.Todo, error)
	UpdateTodoFunc func(ctx context.Context, input todo.UpdateTodoInput) (*domain.Todo, error)
	GetTodoFunc    func(ctx context.Context, id uuid.UUID) (*domain.Todo, error)
	ListTodosFunc  func(ctx context.Context, filter domain.TodoFilter) (*todo.ListResult, error)
	DeleteTodoFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *todoServiceMock) CreateTodo(ctx context.Context, input todo.CreateTodoInput) (*domain.Todo, error) {
	return m.CreateTodoFunc(ctx, input)
}

func (m *todoServiceMock) UpdateTodo(ctx context.Context, input todo.UpdateTodoInput) (*domain.Todo, error) {
	return m.UpdateTodoFunc(ctx, input)
}

func (m *todoServiceMock) GetTodo(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	return m.GetTodoFunc(ctx, id)
}

func (m *todoServiceMock) ListTodos(ctx context.Context, filter domain.TodoFilter) (*todo.ListResult, error) {
	return m.ListTodosFunc(ctx, filter)
}

func (m *todoServiceMock) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	return m.DeleteTodoFunc(ctx, id)
}

func newTodoServer(svc *todoServiceMock) *http.ServeMux {
	return NewRouter(Handlers{
		Health:  NewHealthHandler(&dbPingerMock{}, "test"),
		TimeLog: NewTimeLogHandler(&timelogServiceMock{}, testLogger()),
		Todo:    NewTodoHandler(svc, testLogger()),
		Metrics: NewMetricsHandler(&metricsServiceMock{}, testLogger()),
	})
}

func sampleTodo() *domain.Todo {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return &domain.Todo{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Title:     "write report",
		DueDate:   time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Priority:  domain.PriorityHigh,
		Bucket:    domain.BucketWeek,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTodoCreate_Success(t *testing.T) {
	t.Parallel()

	created := sampleTodo()
	var gotInput todo.CreateTodoInput
	svc := &todoServiceMock{
		CreateTodoFunc: func(_ context.Context, input todo.CreateTodoInput) (*domain.Todo, error) {
			gotInput = input
			return created, nil
		},
	}
	mux := newTodoServer(svc)

	body := `{
		"title": "write report",
		"dueDate": "2025-06-20",
		"priority": "high",
		"bucket": "week"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/todos", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotInput.Title != "write report" {
		t.Errorf("expected title passed through, got %q", gotInput.Title)
	}
	if gotInput.Priority != domain.PriorityHigh {
		t.Errorf("expected priority high, got %q", gotInput.Priority)
	}

	var resp todoResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != created.ID.String() {
		t.Errorf("expected id %s, got %s", created.ID, resp.ID)
	}
}

func TestTodoCreate_RecurrenceParsed(t *testing.T) {
	t.Parallel()

	var gotInput todo.CreateTodoInput
	svc := &todoServiceMock{
		CreateTodoFunc: func(_ context.Context, input todo.CreateTodoInput) (*domain.Todo, error) {
			gotInput = input
			return sampleTodo(), nil
		},
	}
	mux := newTodoServer(svc)

	body := `{
		"title": "standup",
		"dueDate": "2025-06-02",
		"priority": "medium",
		"bucket": "today",
		"isRecurring": true,
		"recurrence": {"pattern": "daily", "endDate": "2025-06-30"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/todos", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotInput.Recurrence == nil {
		t.Fatal("expected recurrence to be parsed")
	}
	if gotInput.Recurrence.Pattern != domain.RecurDaily {
		t.Errorf("expected pattern daily, got %q", gotInput.Recurrence.Pattern)
	}
	wantEnd := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	if !gotInput.Recurrence.EndDate.Equal(wantEnd) {
		t.Errorf("expected end date %v, got %v", wantEnd, gotInput.Recurrence.EndDate)
	}
}

func TestTodoCreate_InvalidDueDate(t *testing.T) {
	t.Parallel()

	mux := newTodoServer(&todoServiceMock{})

	body := `{"title": "x", "dueDate": "20th of June", "priority": "low", "bucket": "today"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/todos", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestTodoUpdate_PassesPathID(t *testing.T) {
	t.Parallel()

	updated := sampleTodo()
	var gotID uuid.UUID
	svc := &todoServiceMock{
		UpdateTodoFunc: func(_ context.Context, input todo.UpdateTodoInput) (*domain.Todo, error) {
			gotID = input.ID
			return updated, nil
		},
	}
	mux := newTodoServer(svc)

	body := `{"title": "write report", "dueDate": "2025-06-20", "priority": "high", "bucket": "week"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/todos/"+updated.ID.String(), strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotID != updated.ID {
		t.Errorf("expected id %s, got %s", updated.ID, gotID)
	}
}

func TestTodoList_FilterFromQuery(t *testing.T) {
	t.Parallel()

	var gotFilter domain.TodoFilter
	svc := &todoServiceMock{
		ListTodosFunc: func(_ context.Context, filter domain.TodoFilter) (*todo.ListResult, error) {
			gotFilter = filter
			return &todo.ListResult{Todos: []domain.Todo{*sampleTodo()}, Total: 1}, nil
		},
	}
	mux := newTodoServer(svc)

	url := "/api/v1/todos?bucket=week&priority=high&completed=false&sortBy=due_date&sortOrder=asc&limit=10&offset=20"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotFilter.Bucket == nil || *gotFilter.Bucket != domain.BucketWeek {
		t.Errorf("expected bucket filter week, got %v", gotFilter.Bucket)
	}
	if gotFilter.Priority == nil || *gotFilter.Priority != domain.PriorityHigh {
		t.Errorf("expected priority filter high, got %v", gotFilter.Priority)
	}
	if gotFilter.Completed == nil || *gotFilter.Completed {
		t.Errorf("expected completed=false filter, got %v", gotFilter.Completed)
	}
	if gotFilter.Limit != 10 || gotFilter.Offset != 20 {
		t.Errorf("expected limit 10 offset 20, got %d/%d", gotFilter.Limit, gotFilter.Offset)
	}

	var resp todoListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Todos) != 1 {
		t.Errorf("expected 1 todo with total 1, got %d/%d", len(resp.Todos), resp.Total)
	}
}

func TestTodoList_BadCompletedValue(t *testing.T) {
	t.Parallel()

	mux := newTodoServer(&todoServiceMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos?completed=maybe", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestTodoGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &todoServiceMock{
		GetTodoFunc: func(_ context.Context, _ uuid.UUID) (*domain.Todo, error) {
			return nil, domain.ErrNotFound
		},
	}
	mux := newTodoServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestTodoDelete_NoContent(t *testing.T) {
	t.Parallel()

	svc := &todoServiceMock{
		DeleteTodoFunc: func(_ context.Context, _ uuid.UUID) error {
			return nil
		},
	}
	mux := newTodoServer(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/todos/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestTodoResponse_CompletedAtOmittedWhenNil(t *testing.T) {
	t.Parallel()

	svc := &todoServiceMock{
		GetTodoFunc: func(_ context.Context, _ uuid.UUID) (*domain.Todo, error) {
			return sampleTodo(), nil
		},
	}
	mux := newTodoServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "completedAt") {
		t.Errorf("expected completedAt to be omitted, got %s", rec.Body.String())
	}
}
