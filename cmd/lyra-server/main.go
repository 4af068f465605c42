// Command lyra-server runs a demo HTTP server over a single lyra.Engine.
//
// It is a thin operational shell: it loads configuration, constructs the
// engine against a document schema, wires the optional Redis-backed query
// cache, API-key auth, rate limiting, health checks, and Prometheus metrics,
// and serves the result over chi. None of the search semantics live here —
// they live in the root lyra package and its internal/ subpackages.
//
// Usage:
//
//	go run ./cmd/lyra-server [-config configs/development.yaml] [-schema configs/schema.json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanieleFedeli/lyra"
	"github.com/DanieleFedeli/lyra/internal/auth/apikey"
	"github.com/DanieleFedeli/lyra/internal/auth/ratelimit"
	"github.com/DanieleFedeli/lyra/internal/httpapi"
	"github.com/DanieleFedeli/lyra/internal/querycache"
	"github.com/DanieleFedeli/lyra/pkg/config"
	"github.com/DanieleFedeli/lyra/pkg/health"
	"github.com/DanieleFedeli/lyra/pkg/logger"
	"github.com/DanieleFedeli/lyra/pkg/metrics"
	pkgredis "github.com/DanieleFedeli/lyra/pkg/redis"
)

// demoSchema is used whenever -schema is not given: a small catalog schema
// exercising every leaf kind (text, number, boolean) at both the top level
// and nested under an object.
var demoSchema = map[string]any{
	"title":    "text",
	"year":     "number",
	"inStock":  "boolean",
	"category": "text",
	"author": map[string]any{
		"name": "text",
		"age":  "number",
	},
}

func main() {
	configPath := flag.String("config", "", "path to config file (optional, defaults are used otherwise)")
	schemaPath := flag.String("schema", "", "path to a JSON document schema (optional, a demo catalog schema is used otherwise)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting lyra-server",
		"port", cfg.Server.Port,
		"default_language", cfg.Engine.DefaultLanguage,
		"edge", cfg.Engine.Edge,
	)

	schema, err := loadSchema(*schemaPath)
	if err != nil {
		slog.Error("failed to load schema", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	engine, err := lyra.Create(lyra.Config{
		Schema:             schema,
		DefaultLanguage:    cfg.Engine.DefaultLanguage,
		Edge:               cfg.Engine.Edge,
		WriteQueueCapacity: cfg.Engine.WriteQueueCapacity,
		Metrics:            m,
	})
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close()
	slog.Info("engine ready", "text_paths", engine.Stats().TextPaths)

	var cache *querycache.QueryCache
	if cfg.Redis.Enabled {
		client, err := pkgredis.NewClient(cfg.Redis)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		cache = querycache.New(client, cfg.Redis)
		slog.Info("query cache enabled", "addr", cfg.Redis.Addr)
	}

	validator := apikey.NewValidator()
	demoKey, err := validator.CreateKey("demo", 1000, nil)
	if err != nil {
		slog.Error("failed to create demo api key", "error", err)
		os.Exit(1)
	}
	slog.Info("demo api key created — pass it as X-API-Key or Authorization: Bearer", "key", demoKey)

	limiter := ratelimit.New(time.Minute)

	checker := health.NewChecker()
	checker.Register("engine", engineHealthCheck(engine))
	if cache != nil {
		checker.Register("redis", redisHealthCheck(cache))
	}

	h := httpapi.New(engine, cache, m, slog.Default())
	router := httpapi.Router(h, validator, limiter, checker, m, cfg.Server.WriteTimeout)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("lyra-server listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("lyra-server stopped")
}

func loadSchema(path string) (map[string]any, error) {
	if path == "" {
		return demoSchema, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file %s: %w", path, err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing schema file %s: %w", path, err)
	}
	return schema, nil
}

func engineHealthCheck(engine *lyra.Engine) health.Check {
	return func(ctx context.Context) health.ComponentHealth {
		stats := engine.Stats()
		status := health.StatusUp
		message := fmt.Sprintf("%d documents, write queue depth %d", stats.DocumentCount, stats.WriteQueueDepth)
		if stats.WriteQueueDepth > 1000 {
			status = health.StatusDegraded
			message = fmt.Sprintf("write queue backing up: depth %d", stats.WriteQueueDepth)
		}
		return health.ComponentHealth{Status: status, Message: message}
	}
}

func redisHealthCheck(cache *querycache.QueryCache) health.Check {
	return func(ctx context.Context) health.ComponentHealth {
		hits, misses := cache.Stats()
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d hits, %d misses", hits, misses),
		}
	}
}
