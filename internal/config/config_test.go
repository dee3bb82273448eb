package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
	cfg Config
	fs  *pflag.FlagSet
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	s.cfg = Default()
	s.fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(s.fs, &s.cfg)
}

func (s *ConfigSuite) TestDefaultsAreValid() {
	s.NoError(s.cfg.Validate())
	s.Equal(StorageFile, s.cfg.Storage)
	s.Equal("canta-parola-storage", s.cfg.StorageKey)
	s.Equal(OutputText, s.cfg.Output)
	s.Equal(slog.LevelInfo, s.cfg.Level())
}

func (s *ConfigSuite) TestValidateRejectsUnknownStorage() {
	s.cfg.Storage = "etcd"
	s.ErrorContains(s.cfg.Validate(), "unknown storage")
}

func (s *ConfigSuite) TestValidateRequiresRedisURL() {
	s.cfg.Storage = StorageRedis
	s.ErrorContains(s.cfg.Validate(), "--redis-url")

	s.cfg.RedisURL = "redis://localhost:6379"
	s.NoError(s.cfg.Validate())
}

func (s *ConfigSuite) TestValidateCollectsEveryProblem() {
	s.cfg.Output = "yaml"
	s.cfg.LogLevel = "loud"
	s.cfg.StorageKey = ""

	err := s.cfg.Validate()
	s.ErrorContains(err, "output format")
	s.ErrorContains(err, "log level")
	s.ErrorContains(err, "storage-key")
}

func (s *ConfigSuite) TestLevel() {
	s.cfg.LogLevel = "warn"
	s.Equal(slog.LevelWarn, s.cfg.Level())

	s.cfg.Verbose = true
	s.Equal(slog.LevelDebug, s.cfg.Level())
}

func (s *ConfigSuite) TestFlagsParse() {
	err := s.fs.Parse([]string{"--storage", "sqlite", "--sqlite_path", "/tmp/x.db", "-o", "json", "--redis-ttl", "1h"})
	s.Require().NoError(err)

	s.Equal(StorageSQLite, s.cfg.Storage)
	s.Equal("/tmp/x.db", s.cfg.SQLitePath)
	s.Equal(OutputJSON, s.cfg.Output)
	s.Equal(time.Hour, s.cfg.RedisTTL)
}

func (s *ConfigSuite) TestApplyEnv() {
	s.T().Setenv("SINGHIT_STORAGE", "memory")
	s.T().Setenv("SINGHIT_STORAGE_KEY", "party")
	s.T().Setenv("SINGHIT_VERBOSE", "true")
	s.T().Setenv("SINGHIT_MOTION_THRESHOLD", "2.5")
	s.Require().NoError(s.fs.Parse(nil))

	s.Require().NoError(ApplyEnv(s.fs))

	s.Equal(StorageMemory, s.cfg.Storage)
	s.Equal("party", s.cfg.StorageKey)
	s.True(s.cfg.Verbose)
	s.InDelta(2.5, s.cfg.MotionThreshold, 1e-9)
}

func (s *ConfigSuite) TestFlagBeatsEnv() {
	s.T().Setenv("SINGHIT_STORAGE", "memory")
	s.Require().NoError(s.fs.Parse([]string{"--storage", "sqlite"}))

	s.Require().NoError(ApplyEnv(s.fs))

	s.Equal(StorageSQLite, s.cfg.Storage)
}

func (s *ConfigSuite) TestApplyEnvReportsBadValues() {
	s.T().Setenv("SINGHIT_REDIS_TTL", "soon")
	s.Require().NoError(s.fs.Parse(nil))

	s.ErrorContains(ApplyEnv(s.fs), "SINGHIT_REDIS_TTL")
}

func (s *ConfigSuite) TestLoadDotEnvMissingFileIsFine() {
	s.NoError(LoadDotEnv(filepath.Join(s.T().TempDir(), "absent.env")))
	s.NoError(LoadDotEnv(""))
}

func (s *ConfigSuite) TestLoadDotEnvFeedsApplyEnv() {
	path := filepath.Join(s.T().TempDir(), ".env")
	s.Require().NoError(os.WriteFile(path, []byte("SINGHIT_OUTPUT=json\nSINGHIT_WORDS_IT=/srv/it.txt\n"), 0o644))
	s.T().Cleanup(func() {
		_ = os.Unsetenv("SINGHIT_OUTPUT")
		_ = os.Unsetenv("SINGHIT_WORDS_IT")
	})

	s.Require().NoError(LoadDotEnv(path))
	s.Require().NoError(s.fs.Parse(nil))
	s.Require().NoError(ApplyEnv(s.fs))

	s.Equal(OutputJSON, s.cfg.Output)
	s.Equal("/srv/it.txt", s.cfg.WordsIT)
}

func (s *ConfigSuite) TestLoadDotEnvKeepsExistingVariables() {
	s.T().Setenv("SINGHIT_LOG_LEVEL", "error")
	path := filepath.Join(s.T().TempDir(), ".env")
	s.Require().NoError(os.WriteFile(path, []byte("SINGHIT_LOG_LEVEL=debug\n"), 0o644))

	s.Require().NoError(LoadDotEnv(path))

	s.Equal("error", os.Getenv("SINGHIT_LOG_LEVEL"))
}
