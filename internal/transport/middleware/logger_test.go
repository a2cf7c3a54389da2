package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

func loggedRequest(t *testing.T, status int, mutate func(*http.Request)) string {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics/daily", nil)
	if mutate != nil {
		mutate(req)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	return buf.String()
}

func TestLogger_InfoLineForSuccess(t *testing.T) {
	out := loggedRequest(t, http.StatusOK, nil)

	for _, want := range []string{"http.request", "GET", "/api/v1/metrics/daily", `"status":200`, "duration", "INFO"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q: %q", want, out)
		}
	}
}

func TestLogger_ErrorLevelFor5xx(t *testing.T) {
	out := loggedRequest(t, http.StatusBadGateway, nil)

	if !strings.Contains(out, "ERROR") {
		t.Errorf("expected ERROR level for 502, got %q", out)
	}
	if !strings.Contains(out, `"status":502`) {
		t.Errorf("log line missing status 502: %q", out)
	}
}

func TestLogger_IncludesRequestID(t *testing.T) {
	out := loggedRequest(t, http.StatusOK, func(req *http.Request) {
		*req = *req.WithContext(ctxutil.WithRequestID(req.Context(), "req-abc-123"))
	})

	if !strings.Contains(out, "req-abc-123") {
		t.Errorf("log line missing request ID: %q", out)
	}
}

func TestLogger_UserIDOnlyWhenAuthenticated(t *testing.T) {
	anon := loggedRequest(t, http.StatusOK, nil)
	if strings.Contains(anon, "user_id") {
		t.Errorf("anonymous request should not log user_id: %q", anon)
	}

	ownerID := uuid.New()
	authed := loggedRequest(t, http.StatusOK, func(req *http.Request) {
		*req = *req.WithContext(ctxutil.WithUserID(req.Context(), ownerID))
	})
	if !strings.Contains(authed, ownerID.String()) {
		t.Errorf("authenticated request should log user_id: %q", authed)
	}
}
