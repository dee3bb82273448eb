package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mcoot/singhit/internal/storage"
)

// EnvPrefix prefixes every environment variable, e.g. SINGHIT_STORAGE
const EnvPrefix = "SINGHIT"

// Storage backends
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds application settings
type Config struct {
	Storage    string
	StateFile  string
	SQLitePath string
	RedisURL   string
	RedisTTL   time.Duration
	StorageKey string

	// Optional word list overrides, one word per line
	WordsIT string
	WordsEN string

	MotionThreshold float64

	LogLevel string
	Output   string
	Verbose  bool
	EnvFile  string
}

// Default returns a Config with default values
func Default() Config {
	dir := dataDir()
	return Config{
		Storage:         StorageFile,
		StateFile:       filepath.Join(dir, "state.json"),
		SQLitePath:      filepath.Join(dir, "singhit.db"),
		StorageKey:      storage.DefaultKey,
		MotionThreshold: 1.5,
		LogLevel:        "info",
		Output:          OutputText,
		EnvFile:         ".env",
	}
}

func dataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".singhit"
	}
	return filepath.Join(base, "singhit")
}

// Validate checks settings that depend on each other
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage {
	case StorageMemory:
	case StorageFile:
		if c.StateFile == "" {
			errs = append(errs, errors.New("--state-file is required for file storage"))
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("--sqlite-path is required for sqlite storage"))
		}
	case StorageRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("--redis-url is required for redis storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q (want memory, file, redis or sqlite)", c.Storage))
	}

	if c.StorageKey == "" {
		errs = append(errs, errors.New("--storage-key must not be empty"))
	}
	if c.RedisTTL < 0 {
		errs = append(errs, fmt.Errorf("invalid redis ttl: %s", c.RedisTTL))
	}
	if c.MotionThreshold <= 0 {
		errs = append(errs, fmt.Errorf("invalid motion threshold: %g", c.MotionThreshold))
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		errs = append(errs, fmt.Errorf("unknown output format %q (want text or json)", c.Output))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Level returns the slog level to log at. Verbose forces debug.
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// BindFlags registers every setting on fs, defaulting to the current values
// of cfg
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage backend: memory, file, redis, sqlite (env: SINGHIT_STORAGE)")
	fs.StringVar(&cfg.StateFile, "state-file", cfg.StateFile, "snapshot path for file storage (env: SINGHIT_STATE_FILE)")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "database path for sqlite storage (env: SINGHIT_SQLITE_PATH)")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "connection URL for redis storage (env: SINGHIT_REDIS_URL)")
	fs.DurationVar(&cfg.RedisTTL, "redis-ttl", cfg.RedisTTL, "expiry of the redis snapshot, 0 keeps it (env: SINGHIT_REDIS_TTL)")
	fs.StringVar(&cfg.StorageKey, "storage-key", cfg.StorageKey, "name of the snapshot record (env: SINGHIT_STORAGE_KEY)")
	fs.StringVar(&cfg.WordsIT, "words-it", cfg.WordsIT, "file replacing the Italian word list (env: SINGHIT_WORDS_IT)")
	fs.StringVar(&cfg.WordsEN, "words-en", cfg.WordsEN, "file replacing the English word list (env: SINGHIT_WORDS_EN)")
	fs.Float64Var(&cfg.MotionThreshold, "motion-threshold", cfg.MotionThreshold, "acceleration in m/s² that stops the timer (env: SINGHIT_MOTION_THRESHOLD)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error (env: SINGHIT_LOG_LEVEL)")
	fs.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output format: text, json (env: SINGHIT_OUTPUT)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log debug output (env: SINGHIT_VERBOSE)")
	fs.StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "dotenv file loaded before reading the environment")
}

// ApplyEnv fills every flag not set on the command line from its
// SINGHIT_ environment variable
func ApplyEnv(fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			if err := fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				errs = append(errs, fmt.Errorf("%s_%s: %w", EnvPrefix, strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")), err))
			}
		}
	})
	return errors.Join(errs...)
}
