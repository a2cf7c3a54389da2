package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/daypulse-backend/pkg/ctxutil"
)

// RequestID assigns each request a correlation ID, honoring one supplied by
// the caller. The ID is stored in the context and echoed in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
