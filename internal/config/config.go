package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Catalog source kinds accepted by CATALOG_SOURCE_KIND.
const (
	SourceDocument = "document"
	SourcePostgres = "postgres"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_ENV"` specify the environment variable name.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"` // development, staging, production
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`      // debug, info, warn, error
	HttpServer ServerConfig
	GrpcServer GrpcServerConfig
	Catalog    CatalogConfig
	Postgres   PostgresConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
	CORSOrigins  []string      `envconfig:"HTTP_SERVER_CORS_ORIGINS" default:"*"`
}

// GrpcServerConfig holds gRPC server-specific configurations.
// Only the health and reflection services are exposed on it.
type GrpcServerConfig struct {
	Port string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// CatalogConfig selects where the product list is loaded from.
type CatalogConfig struct {
	SourceKind   string        `envconfig:"CATALOG_SOURCE_KIND" default:"document"`
	Source       string        `envconfig:"CATALOG_SOURCE" default:"products.json"` // file path or http(s) URL
	FetchTimeout time.Duration `envconfig:"CATALOG_FETCH_TIMEOUT" default:"5s"`
}

// PostgresConfig holds PostgreSQL connection details, used by the postgres source.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER"`
	Password string `envconfig:"POSTGRES_PASSWORD"`
	DBName   string `envconfig:"POSTGRES_DBNAME"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName, pc.SSLMode)
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Catalog.SourceKind = strings.ToLower(strings.TrimSpace(c.Catalog.SourceKind))
	switch c.Catalog.SourceKind {
	case SourceDocument:
		if strings.TrimSpace(c.Catalog.Source) == "" {
			return fmt.Errorf("invalid configuration: CATALOG_SOURCE must not be empty")
		}
	case SourcePostgres:
		var missing []string
		if c.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if c.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DBNAME")
		}
		if len(missing) > 0 {
			return fmt.Errorf("invalid configuration: postgres source requires %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("invalid configuration: unknown CATALOG_SOURCE_KIND %q", c.Catalog.SourceKind)
	}
	if c.Catalog.FetchTimeout <= 0 {
		return fmt.Errorf("invalid configuration: CATALOG_FETCH_TIMEOUT must be positive")
	}
	return nil
}
