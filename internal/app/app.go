package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/daypulse-backend/internal/adapter/postgres"
	metricsrepo "github.com/heartmarshall/daypulse-backend/internal/adapter/postgres/metrics"
	timelogrepo "github.com/heartmarshall/daypulse-backend/internal/adapter/postgres/timelog"
	todorepo "github.com/heartmarshall/daypulse-backend/internal/adapter/postgres/todo"
	userrepo "github.com/heartmarshall/daypulse-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/daypulse-backend/internal/auth"
	"github.com/heartmarshall/daypulse-backend/internal/config"
	"github.com/heartmarshall/daypulse-backend/internal/domain"
	"github.com/heartmarshall/daypulse-backend/internal/service/metrics"
	"github.com/heartmarshall/daypulse-backend/internal/service/timelog"
	"github.com/heartmarshall/daypulse-backend/internal/service/todo"
	"github.com/heartmarshall/daypulse-backend/internal/transport/middleware"
	"github.com/heartmarshall/daypulse-backend/internal/transport/rest"
	"github.com/heartmarshall/daypulse-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services and the HTTP transport, then
// serves until ctx is cancelled and shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(ctx, pool); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("migrations applied")
	}

	days := domain.NewDayPolicy(cfg.Metrics.DayLocation())

	timeLogRepo := timelogrepo.New(pool)
	todoRepo := todorepo.New(pool)
	metricsRepo := metricsrepo.New(pool)
	userRepo := userrepo.New(pool)

	txManager := postgres.NewTxManager(pool)

	timeLogService := timelog.NewService(logger, timeLogRepo, txManager, days)
	todoService := todo.NewService(logger, todoRepo, days)
	metricsService := metrics.NewService(
		logger,
		metricsRepo,
		todoRepo,
		timeLogRepo,
		days,
		cfg.Metrics.DefaultDailyGoalHours,
		cfg.Metrics.TrendMaxRangeDays,
	)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTTL)
	tokenValidator := auth.NewValidator(jwtManager, userRepo)

	mux := rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(pool, BuildVersion()),
		TimeLog: rest.NewTimeLogHandler(timeLogService, logger),
		Todo:    rest.NewTodoHandler(todoService, logger),
		Metrics: rest.NewMetricsHandler(metricsService, logger),
	})

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(tokenValidator),
	}
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter := middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.Server.RateLimitPerMinute))
	}
	handler := middleware.Chain(mws...)(mux)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
