package factory

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/pixelpets/arena/internal/dependencies/clock"
	"github.com/pixelpets/arena/internal/dependencies/random"
	"github.com/pixelpets/arena/internal/services/game"
	"github.com/pixelpets/arena/internal/services/match"
	"github.com/pixelpets/arena/internal/services/sweeper"
	"github.com/pixelpets/arena/internal/storage"
	"github.com/pixelpets/arena/internal/storage/memory"
	redisstorage "github.com/pixelpets/arena/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Store

	Clock  clock.Clock
	Random random.Random

	MatchController *match.Controller
	GameController  *game.Controller
	Sweeper         *sweeper.Sweeper
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
	// SweeperConfig holds eviction settings (optional)
	// If zero value, defaults to sweeper.DefaultConfig()
	SweeperConfig sweeper.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Store
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

	sweepCfg := cfg.SweeperConfig
	if sweepCfg.Interval == 0 {
		sweepCfg = sweeper.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), sweepCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, rnd random.Random, sweepCfg sweeper.Config, logger *slog.Logger) *App {
	// One lock spans every check-then-mutate sequence against the store
	mu := &sync.Mutex{}

	matchController := match.NewController(store, clk, rnd, mu, logger)
	gameController := game.NewController(store, clk, mu, logger)
	sweep := sweeper.New(store, clk, sweepCfg, mu, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		MatchController: matchController,
		GameController:  gameController,
		Sweeper:         sweep,
	}
}
