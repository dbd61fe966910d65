// Package config loads the CLI and development backend configuration from
// the environment.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	pkgconfig "github.com/hungrynow/hungrynow/pkg/config"
	"github.com/hungrynow/hungrynow/pkg/database"
)

// Session store kinds.
const (
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

// Client configures the CLI and anything else built on the client library.
type Client struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`

	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`

	// HTTP transport
	HTTPTimeout           time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	HTTPMaxRetries        int           `env:"HTTP_MAX_RETRIES" envDefault:"0"`
	CircuitBreakerEnabled bool          `env:"CIRCUIT_BREAKER_ENABLED" envDefault:"false"`

	// Session persistence
	SessionStore   string `env:"SESSION_STORE" envDefault:"file"`
	SessionFile    string `env:"SESSION_FILE"`
	SessionProfile string `env:"SESSION_PROFILE" envDefault:"default"`

	// Redis, used when SessionStore is "redis"
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Analytics
	AnalyticsEnabled bool     `env:"ANALYTICS_ENABLED" envDefault:"false"`
	KafkaBrokers     []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	AnalyticsTopic   string   `env:"ANALYTICS_TOPIC" envDefault:"hungrynow.client.actions"`

	// Tracing
	OTelEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTelSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// LoadClient reads the client configuration.
func LoadClient() (*Client, error) {
	cfg := &Client{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Client) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q", c.APIBaseURL)
	}
	if c.HTTPMaxRetries < 0 {
		return fmt.Errorf("HTTP_MAX_RETRIES must not be negative, got %d", c.HTTPMaxRetries)
	}
	if c.OTelSampleRate < 0 || c.OTelSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0 and 1, got %v", c.OTelSampleRate)
	}
	switch c.SessionStore {
	case SessionStoreFile, SessionStoreRedis, SessionStoreMemory:
	default:
		return fmt.Errorf("invalid SESSION_STORE %q: want file, redis or memory", c.SessionStore)
	}
	return nil
}

// Redis returns the connection settings for the Redis session store.
func (c *Client) Redis() database.RedisConfig {
	return database.RedisConfig{Host: c.RedisHost, Port: c.RedisPort, Password: c.RedisPassword, DB: c.RedisDB}
}

// ServerPrefix is prepended to every development backend variable.
const ServerPrefix = "MOCKSERVER_"

const defaultJWTSecret = "change-this-to-a-secure-secret"

// Storage kinds for the development backend.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Server configures the development backend. Every variable carries the
// MOCKSERVER_ prefix, e.g. MOCKSERVER_HTTP_PORT.
type Server struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`
	// PublicURL is the externally visible root used in upload URLs.
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`

	Storage string `env:"STORAGE" envDefault:"memory"`
	Seed    bool   `env:"SEED" envDefault:"true"`

	// PostgreSQL, used when Storage is "postgres"
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"hungrynow"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"hungrynow"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"hungrynow"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// JWT
	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	PprofAllowedCIDRs  []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32,::1/128" envSeparator:","`

	OTelEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTelSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// LoadServer reads the development backend configuration.
func LoadServer() (*Server, error) {
	cfg := &Server{}
	if err := pkgconfig.LoadWithPrefix(cfg, ServerPrefix); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.Storage != StorageMemory && cfg.Storage != StoragePostgres {
		return nil, fmt.Errorf("invalid storage %q: want memory or postgres", cfg.Storage)
	}
	if cfg.JWTExpiry <= 0 {
		return nil, fmt.Errorf("JWT expiry must be positive, got %s", cfg.JWTExpiry)
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	// Outside development the secret must be set explicitly and be strong.
	if cfg.Environment != "development" {
		if cfg.JWTSecret == defaultJWTSecret {
			return nil, fmt.Errorf("%sJWT_SECRET must be explicitly set in %q mode", ServerPrefix, cfg.Environment)
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("%sJWT_SECRET must be at least 32 characters long, got %d", ServerPrefix, len(cfg.JWTSecret))
		}
	}
	return cfg, nil
}

// Postgres returns pool settings for the configured database.
func (c *Server) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	return pg
}
