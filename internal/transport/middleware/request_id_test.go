package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

func TestRequestID_ReusesIncomingID(t *testing.T) {
	incomingID := uuid.New().String()

	var ctxID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos", nil)
	req.Header.Set("X-Request-Id", incomingID)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if ctxID != incomingID {
		t.Errorf("context request ID = %q, want %q", ctxID, incomingID)
	}
	if got := rec.Header().Get("X-Request-Id"); got != incomingID {
		t.Errorf("response header = %q, want %q", got, incomingID)
	}
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var ctxID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/todos", nil))

	if _, err := uuid.Parse(ctxID); err != nil {
		t.Errorf("context request ID %q is not a UUID: %v", ctxID, err)
	}
	if got := rec.Header().Get("X-Request-Id"); got != ctxID {
		t.Errorf("response header = %q, want context ID %q", got, ctxID)
	}
}
