// Package config loads and validates application configuration from YAML
// files with environment-variable overrides. It provides typed structs for
// every subsystem (HTTP server, engine, query cache, logging, tracing,
// metrics).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration for the demo server.
// The engine's schema itself is not part of this file — it is supplied by
// the caller as Go data when constructing the engine.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Engine  EngineConfig  `yaml:"engine"`
	Redis   RedisConfig   `yaml:"redis"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds the demo HTTP server's settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// EngineConfig holds the settings `lyra.Create` reads when a Config is used
// to build an Engine, paralleling spec's `create(configuration)` options.
type EngineConfig struct {
	DefaultLanguage    string `yaml:"defaultLanguage"`
	Edge               bool   `yaml:"edge"`
	WriteQueueCapacity int    `yaml:"writeQueueCapacity"`
}

// RedisConfig holds the connection parameters for the demo server's
// optional query-result cache. The core engine never talks to Redis
// itself.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TracingConfig is loaded and overridable like every other section, but
// nothing reads it: spans are always recorded and there is no sampling.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate float64 `yaml:"sampleRate"`
}

// MetricsConfig is loaded but not read: the demo server always mounts the
// Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if provided) and applies
// environment-variable overrides. It returns a Config populated with
// sensible defaults for any missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults for local
// development.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Engine: EngineConfig{
			DefaultLanguage:    "english",
			Edge:               false,
			WriteQueueCapacity: 64,
		},
		Redis: RedisConfig{
			Enabled:  false,
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
			PoolSize: 10,
			CacheTTL: 60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			Enabled:    true,
			SampleRate: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// applyEnvOverrides reads LYRA_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LYRA_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LYRA_DEFAULT_LANGUAGE"); v != "" {
		cfg.Engine.DefaultLanguage = v
	}
	if v := os.Getenv("LYRA_EDGE"); v != "" {
		if edge, err := strconv.ParseBool(v); err == nil {
			cfg.Engine.Edge = edge
		}
	}
	if v := os.Getenv("LYRA_WRITE_QUEUE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.WriteQueueCapacity = n
		}
	}
	if v := os.Getenv("LYRA_REDIS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Redis.Enabled = enabled
		}
	}
	if v := os.Getenv("LYRA_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("LYRA_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("LYRA_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LYRA_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
