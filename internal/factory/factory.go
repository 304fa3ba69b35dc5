package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/findingfriends/internal/archive"
	memoryarchive "github.com/mcoot/findingfriends/internal/archive/memory"
	sqlitearchive "github.com/mcoot/findingfriends/internal/archive/sqlite"
	"github.com/mcoot/findingfriends/internal/dependencies/clock"
	"github.com/mcoot/findingfriends/internal/services/session"
	"github.com/mcoot/findingfriends/internal/services/stats"
	"github.com/mcoot/findingfriends/internal/storage"
	"github.com/mcoot/findingfriends/internal/storage/memory"
	redisstorage "github.com/mcoot/findingfriends/internal/storage/redis"
	"github.com/mcoot/findingfriends/internal/web/live"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Persistence
	Storage storage.Storage
	Archive archive.Archive

	// External dependencies
	Clock    clock.Clock
	Location *time.Location

	// Services
	SessionController *session.Controller
	StatsService      *stats.Service
	HubManager        *live.HubManager
	Broadcaster       *live.Broadcaster
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
	// ArchivePath is the SQLite file for the round archive (optional)
	// If empty, rounds are archived in memory only
	ArchivePath string
	// Location decides which calendar date is today (optional)
	// If nil, time.Local is used
	Location *time.Location
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
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

	// Create external dependencies
	clk := clock.New()

	var arch archive.Archive
	if cfg.ArchivePath != "" {
		sqliteArchive, err := sqlitearchive.Open(ctx, cfg.ArchivePath, clk)
		if err != nil {
			_ = closeIfCloser(store)
			return nil, err
		}
		arch = sqliteArchive
	} else {
		arch = memoryarchive.New(clk)
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	return newWithDependencies(store, arch, clk, location, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, arch archive.Archive, clk clock.Clock, location *time.Location, logger *slog.Logger) *App {
	hubManager := live.NewHubManager(logger)
	broadcaster := live.NewBroadcaster(hubManager, store, logger)
	sessionController := session.NewController(store, arch, clk, location, broadcaster, logger)
	statsService := stats.New(store, logger)

	return &App{
		Storage:           store,
		Archive:           arch,
		Clock:             clk,
		Location:          location,
		SessionController: sessionController,
		StatsService:      statsService,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
	}
}

// Close disconnects live clients and releases storage handles
func (a *App) Close() error {
	a.HubManager.CloseAll()
	return errors.Join(a.Archive.Close(), closeIfCloser(a.Storage))
}

func closeIfCloser(v any) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
