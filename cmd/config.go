package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"logistics/internal/adapters/out/riskclient"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration. Every field has a default, so an
// empty environment starts a working demo.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8000"`

	MLServiceURL    string        `env:"ML_SERVICE_URL"    envDefault:"http://127.0.0.1:8001"`
	RiskTimeout     time.Duration `env:"RISK_TIMEOUT"      envDefault:"2s"`
	RiskMaxAttempts int           `env:"RISK_MAX_ATTEMPTS" envDefault:"3"`
	RiskBackoffBase time.Duration `env:"RISK_BACKOFF_BASE" envDefault:"500ms"`

	RiskThreshold         float64 `env:"RISK_THRESHOLD"          envDefault:"0.7"`
	MaxReassignments      int     `env:"MAX_REASSIGNMENTS"       envDefault:"2"`
	ReleasePreviousDriver bool    `env:"RELEASE_PREVIOUS_DRIVER" envDefault:"false"`
	ScoreOutsideLock      bool    `env:"SCORE_OUTSIDE_LOCK"      envDefault:"false"`

	SeedDemoData bool `env:"SEED_DEMO_DATA" envDefault:"true"`

	StateReportSchedule string `env:"STATE_REPORT_SCHEDULE" envDefault:"*/10 * * * * *"`
	RiskProbeSchedule   string `env:"RISK_PROBE_SCHEDULE"   envDefault:"*/30 * * * * *"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads envFile into the environment when it exists, then parses
// the environment. Variables already set take precedence over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error
	if c.RiskThreshold < 0 || c.RiskThreshold > 1 {
		errList = append(errList, fmt.Errorf("RISK_THRESHOLD must be within [0, 1], got %v", c.RiskThreshold))
	}
	if c.RiskMaxAttempts < 1 || c.RiskMaxAttempts > riskclient.MaxAttemptsLimit {
		errList = append(errList, fmt.Errorf("RISK_MAX_ATTEMPTS must be within [1, %d], got %d",
			riskclient.MaxAttemptsLimit, c.RiskMaxAttempts))
	}
	if c.MaxReassignments < 0 {
		errList = append(errList, fmt.Errorf("MAX_REASSIGNMENTS must not be negative, got %d", c.MaxReassignments))
	}
	if _, err := c.SlogLevel(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
