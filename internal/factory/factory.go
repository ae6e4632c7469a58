package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/borga-dev/borga/internal/catalog"
	"github.com/borga-dev/borga/internal/dependencies/clock"
	"github.com/borga-dev/borga/internal/gate"
	"github.com/borga-dev/borga/internal/services/auth"
	"github.com/borga-dev/borga/internal/services/group"
	"github.com/borga-dev/borga/internal/services/reconcile"
	"github.com/borga-dev/borga/internal/services/user"
	"github.com/borga-dev/borga/internal/storage"
	"github.com/borga-dev/borga/internal/storage/memory"
	redisstorage "github.com/borga-dev/borga/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock   clock.Clock
	Gate    *gate.Gate
	Catalog *catalog.Client

	// Services
	AuthService  *auth.Service
	UserService  *user.Service
	GroupService *group.Service
	Reconciler   *reconcile.Reconciler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// GateConfig holds admission gate settings (optional)
	// If zero value, defaults to gate.DefaultConfig()
	GateConfig gate.Config
	// CatalogConfig holds external catalog client settings (optional)
	// If zero value, defaults to catalog.DefaultConfig()
	CatalogConfig catalog.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	gateCfg := cfg.GateConfig
	if gateCfg.BaseDelay == 0 {
		gateCfg = gate.DefaultConfig()
	}

	catalogCfg := cfg.CatalogConfig
	if catalogCfg.BaseURL == "" {
		catalogCfg.BaseURL = catalog.DefaultConfig().BaseURL
	}

	return newWithDependencies(store, clk, gateCfg, catalogCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, gateCfg gate.Config, catalogCfg catalog.Config, logger *slog.Logger) *App {
	// Create services
	reconciler := reconcile.New(store, logger)
	userService := user.New(store, logger)
	groupService := group.New(store, userService, reconciler, clk, logger)
	// The group service doubles as the cascade deleter for deregistration
	authService := auth.New(store, clk, groupService, logger)

	return &App{
		Storage:      store,
		Clock:        clk,
		Gate:         gate.New(gateCfg),
		Catalog:      catalog.New(catalogCfg, logger),
		AuthService:  authService,
		UserService:  userService,
		GroupService: groupService,
		Reconciler:   reconciler,
	}
}
