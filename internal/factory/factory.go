package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/maddken/jokerparty/internal/dependencies/clock"
	"github.com/maddken/jokerparty/internal/dependencies/keylock"
	"github.com/maddken/jokerparty/internal/dependencies/random"
	"github.com/maddken/jokerparty/internal/services/chat"
	"github.com/maddken/jokerparty/internal/services/game"
	"github.com/maddken/jokerparty/internal/services/roles"
	"github.com/maddken/jokerparty/internal/services/roster"
	"github.com/maddken/jokerparty/internal/storage"
	"github.com/maddken/jokerparty/internal/storage/memory"
	redisstorage "github.com/maddken/jokerparty/internal/storage/redis"
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
	Locks  *keylock.KeyLock

	// Services
	RolesEngine    *roles.Engine
	RosterService  *roster.Service
	GameController *game.Controller
	ChatService    *chat.Service
}

// Config holds configuration for the application factory
type Config struct {
	// GameConfig holds lifecycle rules (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// RosterConfig holds roster limits (optional)
	// If zero value, defaults to roster.DefaultConfig()
	RosterConfig roster.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
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

	gameCfg := cfg.GameConfig
	if gameCfg.MaxJokerTarget == 0 {
		gameCfg = game.DefaultConfig()
	}
	rosterCfg := cfg.RosterConfig
	if rosterCfg.MaxPlayers == 0 {
		rosterCfg = roster.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), gameCfg, rosterCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, gameCfg game.Config, rosterCfg roster.Config, logger *slog.Logger) *App {
	locks := keylock.New()

	rolesEngine := roles.NewEngine(store, rnd, logger)
	rosterService := roster.NewService(rosterCfg, store, clk, locks, rolesEngine, logger)
	gameController := game.NewController(gameCfg, store, clk, rnd, locks, rolesEngine, rosterService, logger)
	chatService := chat.NewService(store, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Locks:          locks,
		RolesEngine:    rolesEngine,
		RosterService:  rosterService,
		GameController: gameController,
		ChatService:    chatService,
	}
}
