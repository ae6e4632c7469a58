package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/lmittmann/tint"

	"github.com/borga-dev/borga/internal/api"
	"github.com/borga-dev/borga/internal/catalog"
	"github.com/borga-dev/borga/internal/factory"
	"github.com/borga-dev/borga/internal/gate"
	redisstorage "github.com/borga-dev/borga/internal/storage/redis"
)

// serverEnv is the server's environment-driven configuration
type serverEnv struct {
	Host      string `env:"HOST"`
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	GateBaseDelay time.Duration `env:"GATE_BASE_DELAY" envDefault:"2s"`

	CatalogURL      string        `env:"CATALOG_URL"`
	CatalogClientID string        `env:"CATALOG_CLIENT_ID"`
	CatalogTimeout  time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`
}

func main() {
	var envCfg serverEnv
	if err := env.Parse(&envCfg); err != nil {
		slog.Error("failed to parse environment", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(envCfg)
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: envCfg.StorageType,
		GateConfig:  gate.Config{BaseDelay: envCfg.GateBaseDelay},
		CatalogConfig: catalog.Config{
			BaseURL:  envCfg.CatalogURL,
			ClientID: envCfg.CatalogClientID,
			Timeout:  envCfg.CatalogTimeout,
		},
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if envCfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = envCfg.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		UserService:  app.UserService,
		GroupService: app.GroupService,
		Gate:         app.Gate,
		Catalog:      app.Catalog,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = envCfg.Host
	serverConfig.Port = envCfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// newLogger builds the application logger: JSON for machine ingestion,
// tint for readable console output during development.
func newLogger(cfg serverEnv) *slog.Logger {
	level := parseLevel(cfg.LogLevel)

	if cfg.LogFormat == "console" {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
