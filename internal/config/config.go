package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Supported values for DATABASE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	BodyLimit       int
	CORSMaxAge      int // seconds
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

// RabbitMQConfig controls product event publishing. An empty URL disables it.
type RabbitMQConfig struct {
	URL   string
	Queue string
}

// IsProduction reports whether the service runs with production settings.
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the environment and an optional .env file
// in the working directory. Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_ADDR", "0.0.0.0:8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("BODY_LIMIT", 1<<20)
	v.SetDefault("CORS_MAX_AGE", 3600)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "products.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:            v.GetString("APP_ADDR"),
			Env:             v.GetString("APP_ENV"),
			BodyLimit:       v.GetInt("BODY_LIMIT"),
			CORSMaxAge:      v.GetInt("CORS_MAX_AGE"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("DATABASE_DRIVER"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
	}

	switch cfg.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.Server.BodyLimit <= 0 {
		return nil, fmt.Errorf("BODY_LIMIT must be positive, got %d", cfg.Server.BodyLimit)
	}

	return cfg, nil
}
