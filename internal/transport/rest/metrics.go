package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

// metricsService defines the minimal interface needed by MetricsHandler.
type metricsService interface {
	ComputeDaily(ctx context.Context, date time.Time) (*domain.DailyMetrics, error)
	WeeklySummary(ctx context.Context, date time.Time) (*domain.RangeSummary, error)
	MonthlySummary(ctx context.Context, date time.Time) (*domain.MonthlySummary, error)
	TrendRange(ctx context.Context, start, end time.Time) (*domain.TrendStats, error)
	SetDailyGoal(ctx context.Context, date time.Time, goalHours float64) (*domain.DailyGoal, error)
	GetDailyGoal(ctx context.Context, date time.Time) (*domain.DailyGoal, error)
}

// MetricsHandler serves productivity-metrics REST endpoints.
type MetricsHandler struct {
	svc metricsService
	log *slog.Logger
}

// NewMetricsHandler creates a MetricsHandler.
func NewMetricsHandler(svc metricsService, logger *slog.Logger) *MetricsHandler {
	return &MetricsHandler{svc: svc, log: logger.With("handler", "metrics")}
}

type dailyMetricsResponse struct {
	Date               string             `json:"date"`
	TotalTodos         int                `json:"totalTodos"`
	CompletedTodos     int                `json:"completedTodos"`
	TodoCompletionRate int                `json:"todoCompletionRate"`
	TotalTimeLogged    int                `json:"totalTimeLogged"`
	ProductiveTime     int                `json:"productiveTime"`
	AvgProductivity    float64            `json:"avgProductivity"`
	AvgMood            float64            `json:"avgMood"`
	AvgEnergy          float64            `json:"avgEnergy"`
	ProductivityScore  int                `json:"productivityScore"`
	Categories         []categoryResponse `json:"categories"`
	DailyGoalHours     float64            `json:"dailyGoalHours"`
	GoalAchieved       bool               `json:"goalAchieved"`
	StreakDays         int                `json:"streakDays"`
	ComputedAt         string             `json:"computedAt"`
}

type categoryResponse struct {
	Category string `json:"category"`
	Minutes  int    `json:"minutes"`
	Percent  int    `json:"percent"`
}

type rangeSummaryResponse struct {
	StartDate         string  `json:"startDate"`
	EndDate           string  `json:"endDate"`
	AvgScore          int     `json:"avgScore"`
	AvgCompletionRate int     `json:"avgCompletionRate"`
	AvgProductivity   float64 `json:"avgProductivity"`
	AvgMood           float64 `json:"avgMood"`
	AvgEnergy         float64 `json:"avgEnergy"`
	ProductiveTime    int     `json:"productiveTime"`
	TotalTimeLogged   int     `json:"totalTimeLogged"`
	TotalTodos        int     `json:"totalTodos"`
	CompletedTodos    int     `json:"completedTodos"`
	GoalsAchieved     int     `json:"goalsAchieved"`
	DaysTracked       int     `json:"daysTracked"`
}

type monthlySummaryResponse struct {
	rangeSummaryResponse
	Weeks []weekBucketResponse `json:"weeks"`
}

type weekBucketResponse struct {
	Index   int                  `json:"index"`
	Start   string               `json:"start"`
	Summary rangeSummaryResponse `json:"summary"`
}

type trendStatsResponse struct {
	AvgScore          int     `json:"avgScore"`
	AvgCompletionRate int     `json:"avgCompletionRate"`
	AvgMood           float64 `json:"avgMood"`
	AvgEnergy         float64 `json:"avgEnergy"`
	ProductiveHours   float64 `json:"productiveHours"`
	StreakDays        int     `json:"streakDays"`
	Trend             string  `json:"trend"`
	DaysTracked       int     `json:"daysTracked"`
}

type goalRequest struct {
	Date      string  `json:"date"`
	DailyGoal float64 `json:"dailyGoal"`
}

type goalResponse struct {
	Date      string  `json:"date"`
	DailyGoal float64 `json:"dailyGoal"`
}

type recomputeRequest struct {
	Date string `json:"date"`
}

// Daily handles GET /api/v1/metrics/daily?date=. The day is recomputed
// from its sources on every request.
func (h *MetricsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.svc.ComputeDaily(r.Context(), date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDailyMetricsResponse(m))
}

// Recompute handles POST /api/v1/metrics/recompute.
func (h *MetricsHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	var req recomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.svc.ComputeDaily(r.Context(), date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDailyMetricsResponse(m))
}

// Weekly handles GET /api/v1/metrics/weekly?date=.
func (h *MetricsHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.svc.WeeklySummary(r.Context(), date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRangeSummaryResponse(summary))
}

// Monthly handles GET /api/v1/metrics/monthly?date=.
func (h *MetricsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.svc.MonthlySummary(r.Context(), date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := monthlySummaryResponse{
		rangeSummaryResponse: toRangeSummaryResponse(&summary.RangeSummary),
		Weeks:                make([]weekBucketResponse, len(summary.Weeks)),
	}
	for i, wk := range summary.Weeks {
		resp.Weeks[i] = weekBucketResponse{
			Index:   wk.Index,
			Start:   wk.Start.Format("2006-01-02"),
			Summary: toRangeSummaryResponse(&wk.Summary),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Trends handles GET /api/v1/metrics/trends?startDate=&endDate=.
func (h *MetricsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	start, err := parseDate(r.URL.Query().Get("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseDate(r.URL.Query().Get("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.svc.TrendRange(r.Context(), start, end)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trendStatsResponse{
		AvgScore:          stats.AvgScore,
		AvgCompletionRate: stats.AvgCompletionRate,
		AvgMood:           stats.AvgMood,
		AvgEnergy:         stats.AvgEnergy,
		ProductiveHours:   stats.ProductiveHours,
		StreakDays:        stats.StreakDays,
		Trend:             stats.Trend.String(),
		DaysTracked:       stats.DaysTracked,
	})
}

// SetGoal handles PUT /api/v1/metrics/goal.
func (h *MetricsHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := h.svc.SetDailyGoal(r.Context(), date, req.DailyGoal)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goalResponse{
		Date:      goal.Day.Format("2006-01-02"),
		DailyGoal: goal.GoalHours,
	})
}

// GetGoal handles GET /api/v1/metrics/goal?date=.
func (h *MetricsHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := h.svc.GetDailyGoal(r.Context(), date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goalResponse{
		Date:      goal.Day.Format("2006-01-02"),
		DailyGoal: goal.GoalHours,
	})
}

func toDailyMetricsResponse(m *domain.DailyMetrics) dailyMetricsResponse {
	categories := make([]categoryResponse, len(m.Categories))
	for i, c := range m.Categories {
		categories[i] = categoryResponse{
			Category: c.Category.String(),
			Minutes:  c.Minutes,
			Percent:  c.Percent,
		}
	}

	return dailyMetricsResponse{
		Date:               m.Day.Format("2006-01-02"),
		TotalTodos:         m.TotalTodos,
		CompletedTodos:     m.CompletedTodos,
		TodoCompletionRate: m.TodoCompletionRate,
		TotalTimeLogged:    m.TotalTimeLogged,
		ProductiveTime:     m.ProductiveTime,
		AvgProductivity:    m.AvgProductivity,
		AvgMood:            m.AvgMood,
		AvgEnergy:          m.AvgEnergy,
		ProductivityScore:  m.ProductivityScore,
		Categories:         categories,
		DailyGoalHours:     m.DailyGoalHours,
		GoalAchieved:       m.GoalAchieved,
		StreakDays:         m.StreakDays,
		ComputedAt:         m.ComputedAt.Format(time.RFC3339),
	}
}

func toRangeSummaryResponse(s *domain.RangeSummary) rangeSummaryResponse {
	return rangeSummaryResponse{
		StartDate:         s.StartDay.Format("2006-01-02"),
		EndDate:           s.EndDay.Format("2006-01-02"),
		AvgScore:          s.AvgScore,
		AvgCompletionRate: s.AvgCompletionRate,
		AvgProductivity:   s.AvgProductivity,
		AvgMood:           s.AvgMood,
		AvgEnergy:         s.AvgEnergy,
		ProductiveTime:    s.ProductiveTime,
		TotalTimeLogged:   s.TotalTimeLogged,
		TotalTodos:        s.TotalTodos,
		CompletedTodos:    s.CompletedTodos,
		GoalsAchieved:     s.GoalsAchieved,
		DaysTracked:       s.DaysTracked,
	}
}
