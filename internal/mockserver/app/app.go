// Package app wires together the development backend.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hungrynow/hungrynow/internal/config"
	"github.com/hungrynow/hungrynow/internal/mockserver/auth"
	"github.com/hungrynow/hungrynow/internal/mockserver/handler"
	"github.com/hungrynow/hungrynow/internal/mockserver/migrations"
	"github.com/hungrynow/hungrynow/internal/mockserver/repository"
	"github.com/hungrynow/hungrynow/internal/mockserver/repository/memory"
	"github.com/hungrynow/hungrynow/internal/mockserver/repository/postgres"
	"github.com/hungrynow/hungrynow/internal/mockserver/service"
	"github.com/hungrynow/hungrynow/pkg/database"
	"github.com/hungrynow/hungrynow/pkg/health"
	"github.com/hungrynow/hungrynow/pkg/middleware"
	"github.com/hungrynow/hungrynow/pkg/tracing"
)

// Version is reported in traces.
const Version = "0.1.0"

// App wires together all dependencies and runs the development backend.
type App struct {
	cfg            *config.Server
	logger         *slog.Logger
	pool           *pgxpool.Pool // nil with in-memory storage
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Server, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		Component:   "hungrynow-mockserver",
		Version:     Version,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTelEndpoint,
		SampleRate:  cfg.OTelSampleRate,
		Enabled:     cfg.OTelEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	healthHandler := health.NewHandler()

	var (
		users     repository.UserRepository
		addresses repository.AddressRepository
		pool      *pgxpool.Pool
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		pgCfg := cfg.Postgres()
		pool, err = database.NewPostgresPool(ctx, &pgCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.PostgresHost),
			slog.Int("port", cfg.PostgresPort),
			slog.String("database", cfg.PostgresDB),
		)
		database.RegisterPoolMetrics(pool, "mockserver")

		if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations completed")

		healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
			return pool.Ping(ctx)
		})
		users = postgres.NewUserRepository(pool)
		addresses = postgres.NewAddressRepository(pool)
	default:
		logger.Warn("using in-memory storage; accounts are lost on restart")
		users = memory.NewUserRepository()
		addresses = memory.NewAddressRepository()
	}

	catalog := service.Catalog{}
	if cfg.Seed {
		catalog = service.DemoCatalog(time.Now())
	}

	// Build the dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	services := handler.Services{
		Users:  service.NewUserService(users, addresses, jwtManager, logger),
		Shop:   service.NewShopService(catalog, logger),
		Images: service.NewImageStore(),
	}

	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		cors.AllowedOrigins = cfg.CORSAllowedOrigins
	}
	router := handler.NewRouter(services, jwtManager, healthHandler, logger, handler.RouterConfig{
		PublicURL:         cfg.PublicURL,
		CORS:              cors,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("storage", a.cfg.Storage),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: the HTTP server
// drains in-flight requests, the tracer flushes their spans, then the
// PostgreSQL pool closes.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.pool != nil {
		a.pool.Close()
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
