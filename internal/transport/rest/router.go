package rest

import "net/http"

// Handlers groups the REST handlers mounted by NewRouter.
type Handlers struct {
	Health  *HealthHandler
	TimeLog *TimeLogHandler
	Todo    *TodoHandler
	Metrics *MetricsHandler
}

// NewRouter builds the HTTP route table. All API routes live under
// /api/v1; health probes are mounted at the root for orchestrators.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Health.Live)
	mux.HandleFunc("GET /readyz", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/v1/time-logs", h.TimeLog.Create)
	mux.HandleFunc("GET /api/v1/time-logs", h.TimeLog.List)
	mux.HandleFunc("GET /api/v1/time-logs/{id}", h.TimeLog.Get)
	mux.HandleFunc("PUT /api/v1/time-logs/{id}", h.TimeLog.Update)
	mux.HandleFunc("DELETE /api/v1/time-logs/{id}", h.TimeLog.Delete)

	mux.HandleFunc("POST /api/v1/todos", h.Todo.Create)
	mux.HandleFunc("GET /api/v1/todos", h.Todo.List)
	mux.HandleFunc("GET /api/v1/todos/{id}", h.Todo.Get)
	mux.HandleFunc("PUT /api/v1/todos/{id}", h.Todo.Update)
	mux.HandleFunc("DELETE /api/v1/todos/{id}", h.Todo.Delete)

	mux.HandleFunc("GET /api/v1/metrics/daily", h.Metrics.Daily)
	mux.HandleFunc("POST /api/v1/metrics/recompute", h.Metrics.Recompute)
	mux.HandleFunc("GET /api/v1/metrics/weekly", h.Metrics.Weekly)
	mux.HandleFunc("GET /api/v1/metrics/monthly", h.Metrics.Monthly)
	mux.HandleFunc("GET /api/v1/metrics/trends", h.Metrics.Trends)
	mux.HandleFunc("PUT /api/v1/metrics/goal", h.Metrics.SetGoal)
	mux.HandleFunc("GET /api/v1/metrics/goal", h.Metrics.GetGoal)

	return mux
}
