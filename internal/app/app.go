// Package app wires the client library: transport, session persistence,
// the store and the optional analytics recorder.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/hungrynow/hungrynow/internal/analytics"
	"github.com/hungrynow/hungrynow/internal/api"
	"github.com/hungrynow/hungrynow/internal/config"
	"github.com/hungrynow/hungrynow/internal/session"
	"github.com/hungrynow/hungrynow/internal/store"
	"github.com/hungrynow/hungrynow/pkg/database"
	"github.com/hungrynow/hungrynow/pkg/httpclient"
	"github.com/hungrynow/hungrynow/pkg/kafka"
	"github.com/hungrynow/hungrynow/pkg/tracing"
)

// Version is reported in traces.
const Version = "0.1.0"

// App holds the wired client.
type App struct {
	Session *session.Manager
	Store   *store.Store

	logger         *slog.Logger
	redis          *redis.Client
	producer       *kafka.Producer
	detach         func()
	tracerShutdown func(context.Context) error
}

// New builds the client for component, e.g. "hungrynow-cli". It does not
// restore a persisted session; call Store.RestoreSession for that.
func New(ctx context.Context, cfg *config.Client, component string, logger *slog.Logger) (*App, error) {
	a := &App{logger: logger}

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		Component:   component,
		Version:     Version,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTelEndpoint,
		SampleRate:  cfg.OTelSampleRate,
		Enabled:     cfg.OTelEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Name = "hungrynow-api"
	httpCfg.Timeout = cfg.HTTPTimeout
	httpCfg.MaxRetries = cfg.HTTPMaxRetries
	var doer httpclient.Doer = httpclient.New(httpCfg)
	if cfg.CircuitBreakerEnabled {
		doer = httpclient.NewCircuitBreakerClient(doer, httpclient.DefaultCircuitBreakerConfig(httpCfg.Name), logger)
	}

	tokens, err := a.tokenStore(ctx, cfg)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	opts := api.Options{BaseURL: cfg.APIBaseURL, HTTP: doer, Logger: logger}
	manager, err := session.NewManager(tokens, func(cred session.Credential) (*api.Client, error) {
		return api.New(opts, cred)
	}, logger)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("create session: %w", err)
	}
	a.Session = manager
	a.Store = store.New(manager, logger)

	if cfg.AnalyticsEnabled {
		a.producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		recorder := analytics.NewRecorder(a.producer, analytics.Config{
			Topic:  cfg.AnalyticsTopic,
			Source: component,
		}, logger)
		a.detach = recorder.Attach(a.Store)
		logger.Debug("analytics enabled", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.AnalyticsTopic))
	}

	return a, nil
}

func (a *App) tokenStore(ctx context.Context, cfg *config.Client) (session.TokenStore, error) {
	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		return session.NewMemoryStore(), nil
	case config.SessionStoreRedis:
		client, err := database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			return nil, fmt.Errorf("connect session redis: %w", err)
		}
		a.redis = client
		return session.NewRedisStore(client, cfg.SessionProfile), nil
	default:
		path := cfg.SessionFile
		if path == "" {
			p, err := session.DefaultFilePath()
			if err != nil {
				return nil, fmt.Errorf("locate session file: %w", err)
			}
			path = p
		}
		return session.NewFileStore(path), nil
	}
}

// Close detaches the recorder, then flushes the producer and the tracer and
// closes the Redis connection.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.detach != nil {
		a.detach()
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close kafka producer: %w", err))
		}
	}
	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracer: %w", err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
