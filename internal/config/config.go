// Package config resolves roundctl settings from ~/.roundctl/config.toml and
// ROUNDCTL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/roundctl/internal/domain"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".roundctl"

	KeyRoundDuration     = "round.duration"
	KeyRoundTimezone     = "round.timezone"
	KeyHistoryCapacity   = "history.capacity"
	KeyArchiveDriver     = "archive.driver"
	KeyArchivePath       = "archive.path"
	KeyArchiveMaxEntries = "archive.max_entries"
	KeyLogLevel          = "log.level"
)

type ArchiveDriver string

const (
	ArchiveDriverTOML   ArchiveDriver = "toml"
	ArchiveDriverSQLite ArchiveDriver = "sqlite"
	ArchiveDriverNone   ArchiveDriver = "none"
)

func (d ArchiveDriver) Valid() bool {
	switch d {
	case ArchiveDriverTOML, ArchiveDriverSQLite, ArchiveDriverNone:
		return true
	default:
		return false
	}
}

func (d ArchiveDriver) defaultFile() string {
	if d == ArchiveDriverSQLite {
		return "rounds.db"
	}
	return "rounds.toml"
}

type Config struct {
	RoundDuration   time.Duration
	HistoryCapacity int
	Timezone        string
	Location        *time.Location
	ArchiveDriver   ArchiveDriver
	ArchivePath     string
	LogLevel        string
}

// Env holds the environment overrides; empty values leave the file setting.
type Env struct {
	ArchiveDriver string `env:"ROUNDCTL_ARCHIVE_DRIVER"`
	ArchivePath   string `env:"ROUNDCTL_ARCHIVE_PATH"`
	LogLevel      string `env:"ROUNDCTL_LOG_LEVEL"`
	Timezone      string `env:"ROUNDCTL_TIMEZONE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the config file under home into v, applies environment
// overrides and validates the result. Overrides are written back into v so
// adapters reading v see the same values.
func Load(v *viper.Viper, home string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(home, configDir))
	v.SetDefault(KeyRoundDuration, domain.DefaultRoundDuration)
	v.SetDefault(KeyRoundTimezone, "Local")
	v.SetDefault(KeyHistoryCapacity, domain.DefaultHistoryCapacity)
	v.SetDefault(KeyArchiveDriver, string(ArchiveDriverTOML))
	v.SetDefault(KeyLogLevel, "info")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var overrides Env
	if err := ParseEnv(&overrides); err != nil {
		return Config{}, err
	}
	for key, value := range map[string]string{
		KeyArchiveDriver: overrides.ArchiveDriver,
		KeyArchivePath:   overrides.ArchivePath,
		KeyLogLevel:      overrides.LogLevel,
		KeyRoundTimezone: overrides.Timezone,
	} {
		if value != "" {
			v.Set(key, value)
		}
	}

	driver := ArchiveDriver(strings.ToLower(strings.TrimSpace(v.GetString(KeyArchiveDriver))))
	v.SetDefault(KeyArchivePath, filepath.Join(home, configDir, driver.defaultFile()))

	cfg := Config{
		RoundDuration:   v.GetDuration(KeyRoundDuration),
		HistoryCapacity: v.GetInt(KeyHistoryCapacity),
		Timezone:        v.GetString(KeyRoundTimezone),
		ArchiveDriver:   driver,
		ArchivePath:     v.GetString(KeyArchivePath),
		LogLevel:        v.GetString(KeyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the settings and resolves Location from Timezone.
func (c *Config) Validate() error {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	c.Location = location

	opts := domain.ClockOptions{
		RoundDuration:   c.RoundDuration,
		HistoryCapacity: c.HistoryCapacity,
		Location:        location,
	}
	if c.RoundDuration <= 0 || c.HistoryCapacity <= 0 {
		return fmt.Errorf("%w: round duration and history capacity must be positive", domain.ErrInvalidClockConfig)
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	if !c.ArchiveDriver.Valid() {
		return fmt.Errorf("unsupported archive driver %q", c.ArchiveDriver)
	}
	if c.ArchiveDriver != ArchiveDriverNone && strings.TrimSpace(c.ArchivePath) == "" {
		return errors.New("archive path is empty")
	}

	return nil
}
