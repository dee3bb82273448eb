package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/singhit/internal/config"
	"github.com/mcoot/singhit/internal/dependencies/clock"
	"github.com/mcoot/singhit/internal/dependencies/random"
	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/notify"
	"github.com/mcoot/singhit/internal/services/game"
	"github.com/mcoot/singhit/internal/services/motion"
	"github.com/mcoot/singhit/internal/services/persistence"
	"github.com/mcoot/singhit/internal/services/scoring"
	"github.com/mcoot/singhit/internal/services/wordpool"
	"github.com/mcoot/singhit/internal/storage"
	"github.com/mcoot/singhit/internal/storage/file"
	"github.com/mcoot/singhit/internal/storage/memory"
	redisstorage "github.com/mcoot/singhit/internal/storage/redis"
	"github.com/mcoot/singhit/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeFile   = config.StorageFile
	StorageTypeRedis  = config.StorageRedis
	StorageTypeSQLite = config.StorageSQLite
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordPool *wordpool.Service
	Scoring  *scoring.Service
	Engine   *game.Engine
	Saver    *persistence.Saver
	Broker   *notify.Broker
	Motion   *motion.Detector

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// StateFile is the snapshot path (required if StorageType is "file")
	StateFile string
	// SQLitePath is the database path (required if StorageType is "sqlite")
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// StorageKey names the snapshot record; defaults to storage.DefaultKey
	StorageKey string
	// WordsIT and WordsEN optionally replace the embedded word lists
	WordsIT string
	WordsEN string
	// MotionThreshold is the acceleration that stops the timer (optional)
	MotionThreshold float64
}

// FromSettings converts user settings into a factory Config
func FromSettings(settings config.Config, logger *slog.Logger) Config {
	cfg := Config{
		Logger:          logger,
		StorageType:     settings.Storage,
		StateFile:       settings.StateFile,
		SQLitePath:      settings.SQLitePath,
		StorageKey:      settings.StorageKey,
		WordsIT:         settings.WordsIT,
		WordsEN:         settings.WordsEN,
		MotionThreshold: settings.MotionThreshold,
	}
	if settings.Storage == StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = settings.RedisURL
		redisCfg.TTL = settings.RedisTTL
		redisCfg.Key = settings.StorageKey
		cfg.RedisConfig = &redisCfg
	}
	return cfg
}

// New creates a new application with all dependencies wired. The saved game
// is restored from storage before the engine starts.
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	key := cfg.StorageKey
	if key == "" {
		key = storage.DefaultKey
	}

	store, err := openStorage(ctx, cfg, key)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	words := wordpool.New(rnd, logger)
	if err := loadWords(words, cfg); err != nil {
		_ = store.Close()
		return nil, err
	}

	return newWithDependencies(ctx, store, clk, rnd, words, cfg.MotionThreshold, logger), nil
}

func openStorage(ctx context.Context, cfg Config, key string) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeFile:
		if cfg.StateFile == "" {
			return nil, errors.New("StateFile required when StorageType is file")
		}
		return file.New(cfg.StateFile), nil
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlite.New(ctx, cfg.SQLitePath, key)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisCfg := *cfg.RedisConfig
		if redisCfg.Key == "" {
			redisCfg.Key = key
		}
		return redisstorage.New(redisCfg)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be memory, file, redis or sqlite", storageType)
	}
}

func loadWords(words *wordpool.Service, cfg Config) error {
	if err := words.LoadDefaults(); err != nil {
		return fmt.Errorf("loading embedded word lists: %w", err)
	}
	overrides := map[model.Language]string{
		model.LanguageItalian: cfg.WordsIT,
		model.LanguageEnglish: cfg.WordsEN,
	}
	for lang, path := range overrides {
		if path == "" {
			continue
		}
		if err := words.LoadFromFile(lang, path); err != nil {
			return fmt.Errorf("loading %s word list %s: %w", lang, path, err)
		}
	}
	return nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	ctx context.Context,
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	words *wordpool.Service,
	motionThreshold float64,
	logger *slog.Logger,
) *App {
	scoringService := scoring.New()
	broker := notify.NewBroker(logger)

	saver := persistence.NewSaver(store, logger)
	saver.Start()

	initial := persistence.Restore(ctx, store, logger)
	engine := game.NewEngine(initial, words, scoringService, clk, rnd, saver, broker, logger)
	detector := motion.NewDetector(engine, motionThreshold, logger)

	return &App{
		Storage:  store,
		Clock:    clk,
		Random:   rnd,
		WordPool: words,
		Scoring:  scoringService,
		Engine:   engine,
		Saver:    saver,
		Broker:   broker,
		Motion:   detector,
		logger:   logger,
	}
}

// Close flushes the last snapshot and releases storage
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Saver.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flushing snapshot: %w", err))
	}
	a.Broker.Close()
	if err := a.Storage.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing storage: %w", err))
	}
	return errors.Join(errs...)
}
