package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/battleship/internal/api"
	"github.com/mcoot/battleship/internal/dependencies/clock"
	"github.com/mcoot/battleship/internal/dependencies/idgen"
	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/services/auth"
	"github.com/mcoot/battleship/internal/services/registry"
	"github.com/mcoot/battleship/internal/storage"
	"github.com/mcoot/battleship/internal/storage/memory"
	redisstorage "github.com/mcoot/battleship/internal/storage/redis"
	"github.com/mcoot/battleship/internal/ws"
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
	Clock  clock.Clock
	Random random.Random
	IDs    idgen.Generator

	// Services
	AuthService *auth.Service
	Registry    *registry.Registry

	// Transport
	Hub      *ws.Hub
	WSRouter *ws.Router

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// WS holds per-connection transport settings
	WS ws.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

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

	authCfg := cfg.AuthConfig
	if authCfg.TokenTTL == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), idgen.New(), authCfg, cfg.WS, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	ids idgen.Generator,
	authCfg auth.Config,
	wsCfg ws.Config,
	logger *slog.Logger,
) (*App, error) {
	validator, err := ws.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("compile message schemas: %w", err)
	}

	authService := auth.New(store, clk, ids, authCfg)
	hub := ws.NewHub(logger)
	reg := registry.New(ids, hub, logger)
	wsRouter := ws.NewRouter(reg, hub, validator, wsCfg, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		IDs:         ids,
		AuthService: authService,
		Registry:    reg,
		Hub:         hub,
		WSRouter:    wsRouter,
		logger:      logger,
	}, nil
}

// Handler returns the HTTP handler serving the API and the websocket endpoint
func (a *App) Handler() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Logger:      a.logger,
		AuthService: a.AuthService,
		Registry:    a.Registry,
		Hub:         a.Hub,
		WSRouter:    a.WSRouter,
	})
}

// Close disconnects every client and releases storage connections
func (a *App) Close() error {
	a.Hub.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
