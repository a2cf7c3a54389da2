package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/internal/service/timelog"
)

type timelogServiceMock struct {
	CreateEntryFunc func(ctx context.Context, input timelog.CreateEntryInput) (*domain.TimeLogEntry, error)
	UpdateEntryFunc func(ctx context.Context, input timelog.UpdateEntryInput) (*domain.TimeLogEntry, error)
	GetEntryFunc    func(ctx context.Context, id uuid.UUID) (*domain.TimeLogEntry, error)
	ListByDateFunc  func(ctx context.Context, date time.Time) ([]domain.TimeLogEntry, error)
	DeleteEntryFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *timelogServiceMock) CreateEntry(ctx context.Context, input timelog.CreateEntryInput) (*domain.TimeLogEntry, error) {
	return m.CreateEntryFunc(ctx, input)
}

func (m *timelogServiceMock) UpdateEntry(ctx context.Context, input timelog.UpdateEntryInput) (*domain.TimeLogEntry, error) {
	return m.UpdateEntryFunc(ctx, input)
}

func (m *timelogServiceMock) GetEntry(ctx context.Context, id uuid.UUID) (*domain.TimeLogEntry, error) {
	return m.GetEntryFunc(ctx, id)
}

func (m *timelogServiceMock) ListByDate(ctx context.Context, date time.Time) ([]domain.TimeLogEntry, error) {
	return m.ListByDateFunc(ctx, date)
}

func (m *timelogServiceMock) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return m.DeleteEntryFunc(ctx, id)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTimeLogServer mounts the handler on the real route table so path
// parameters go through ServeMux pattern matching.
func newTimeLogServer(svc *timelogServiceMock) *http.ServeMux {
	return NewRouter(Handlers{
		Health:  NewHealthHandler(&dbPingerMock{}, "test"),
		TimeLog: NewTimeLogHandler(svc, testLogger()),
		Todo:    NewTodoHandler(&todoServiceMock{}, testLogger()),
		Metrics: NewMetricsHandler(&metricsServiceMock{}, testLogger()),
	})
}

func sampleEntry() *domain.TimeLogEntry {
	start := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	return &domain.TimeLogEntry{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Day:          time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Start:        start,
		End:          start.Add(90 * time.Minute),
		DurationMin:  90,
		Category:     domain.CategoryWork,
		Activity:     "code review",
		Productivity: 4,
		Mood:         3,
		Energy:       4,
		CreatedAt:    start,
		UpdatedAt:    start,
	}
}

func TestTimeLogCreate_Success(t *testing.T) {
	t.Parallel()

	entry := sampleEntry()
	var gotInput timelog.CreateEntryInput
	svc := &timelogServiceMock{
		CreateEntryFunc: func(_ context.Context, input timelog.CreateEntryInput) (*domain.TimeLogEntry, error) {
			gotInput = input
			return entry, nil
		},
	}
	mux := newTimeLogServer(svc)

	body := `{
		"startTime": "2025-06-15T09:00:00Z",
		"endTime": "2025-06-15T10:30:00Z",
		"category": "work",
		"activity": "code review",
		"productivity": 4,
		"mood": 3,
		"energy": 4
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/time-logs", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if gotInput.Activity != "code review" {
		t.Errorf("expected activity passed through, got %q", gotInput.Activity)
	}
	if !gotInput.Start.Equal(entry.Start) {
		t.Errorf("expected start %v, got %v", entry.Start, gotInput.Start)
	}

	var resp timeLogResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Duration != 90 {
		t.Errorf("expected duration 90, got %d", resp.Duration)
	}
	if resp.Date != "2025-06-15" {
		t.Errorf("expected date 2025-06-15, got %q", resp.Date)
	}
}

func TestTimeLogCreate_InvalidBody(t *testing.T) {
	t.Parallel()

	mux := newTimeLogServer(&timelogServiceMock{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/time-logs", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestTimeLogCreate_ValidationErrorsCarryFields(t *testing.T) {
	t.Parallel()

	svc := &timelogServiceMock{
		CreateEntryFunc: func(_ context.Context, _ timelog.CreateEntryInput) (*domain.TimeLogEntry, error) {
			return nil, domain.NewValidationError("activity", "required")
		},
	}
	mux := newTimeLogServer(svc)

	body := `{"startTime": "2025-06-15T09:00:00Z", "endTime": "2025-06-15T10:00:00Z", "category": "work"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/time-logs", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Fields) != 1 || resp.Fields[0].Field != "activity" {
		t.Errorf("expected field error for activity, got %+v", resp.Fields)
	}
}

func TestTimeLogCreate_OverlapIs409(t *testing.T) {
	t.Parallel()

	svc := &timelogServiceMock{
		CreateEntryFunc: func(_ context.Context, _ timelog.CreateEntryInput) (*domain.TimeLogEntry, error) {
			return nil, &domain.OverlapError{
				ExistingStart: "2025-06-15T09:00:00Z",
				ExistingEnd:   "2025-06-15T10:00:00Z",
			}
		},
	}
	mux := newTimeLogServer(svc)

	body := `{"startTime": "2025-06-15T09:00:00Z", "endTime": "2025-06-15T10:00:00Z", "category": "work", "activity": "x", "productivity": 3, "mood": 3, "energy": 3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/time-logs", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Error, "overlaps") {
		t.Errorf("expected overlap message, got %q", resp.Error)
	}
}

func TestTimeLogUpdate_PassesPathID(t *testing.T) {
	t.Parallel()

	entry := sampleEntry()
	var gotID uuid.UUID
	svc := &timelogServiceMock{
		UpdateEntryFunc: func(_ context.Context, input timelog.UpdateEntryInput) (*domain.TimeLogEntry, error) {
			gotID = input.ID
			return entry, nil
		},
	}
	mux := newTimeLogServer(svc)

	body := `{"startTime": "2025-06-15T09:00:00Z", "endTime": "2025-06-15T10:30:00Z", "category": "work", "activity": "code review", "productivity": 4, "mood": 3, "energy": 4}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/time-logs/"+entry.ID.String(), strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotID != entry.ID {
		t.Errorf("expected id %s, got %s", entry.ID, gotID)
	}
}

func TestTimeLogGet_InvalidID(t *testing.T) {
	t.Parallel()

	mux := newTimeLogServer(&timelogServiceMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/time-logs/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestTimeLogGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &timelogServiceMock{
		GetEntryFunc: func(_ context.Context, _ uuid.UUID) (*domain.TimeLogEntry, error) {
			return nil, domain.ErrNotFound
		},
	}
	mux := newTimeLogServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/time-logs/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestTimeLogList_ByDate(t *testing.T) {
	t.Parallel()

	var gotDate time.Time
	svc := &timelogServiceMock{
		ListByDateFunc: func(_ context.Context, date time.Time) ([]domain.TimeLogEntry, error) {
			gotDate = date
			return []domain.TimeLogEntry{*sampleEntry()}, nil
		},
	}
	mux := newTimeLogServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/time-logs?date=2025-06-15", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !gotDate.Equal(want) {
		t.Errorf("expected date %v, got %v", want, gotDate)
	}

	var resp struct {
		TimeLogs []timeLogResponse `json:"timeLogs"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.TimeLogs) != 1 {
		t.Errorf("expected 1 entry, got %d", len(resp.TimeLogs))
	}
}

func TestTimeLogList_MissingDate(t *testing.T) {
	t.Parallel()

	mux := newTimeLogServer(&timelogServiceMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/time-logs", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestTimeLogDelete_NoContent(t *testing.T) {
	t.Parallel()

	svc := &timelogServiceMock{
		DeleteEntryFunc: func(_ context.Context, _ uuid.UUID) error {
			return nil
		},
	}
	mux := newTimeLogServer(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/time-logs/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestTimeLog_UnauthorizedIs401(t *testing.T) {
	t.Parallel()

	svc := &timelogServiceMock{
		ListByDateFunc: func(_ context.Context, _ time.Time) ([]domain.TimeLogEntry, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	mux := newTimeLogServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/time-logs?date=2025-06-15", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
