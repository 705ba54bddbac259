package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/remis/internal/common"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultQuotaBytes mirrors the 5 MiB a browser gives one origin.
const DefaultQuotaBytes = 5 << 20

// Settings is the validated runtime configuration.
type Settings struct {
	DatabasePath string
	Backend      string
	Currency     string
	LogLevel     string
	LogFormat    string
	QuotaBytes   int64
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join("~", ".local", "share", "remis", "remis.db"))
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.quota_bytes", DefaultQuotaBytes)
	v.SetDefault("display.currency", "ARS")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads Settings from v. Paths have ~ and $VARS expanded.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		DatabasePath: ExpandPath(v.GetString("database.path")),
		Backend:      strings.ToLower(strings.TrimSpace(v.GetString("storage.backend"))),
		QuotaBytes:   v.GetInt64("storage.quota_bytes"),
		Currency:     strings.ToUpper(strings.TrimSpace(v.GetString("display.currency"))),
		LogLevel:     v.GetString("logging.level"),
		LogFormat:    v.GetString("logging.format"),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate reports every problem with s at once.
func (s *Settings) Validate() error {
	var errs []error

	switch s.Backend {
	case BackendSQLite:
		if s.DatabasePath == "" {
			errs = append(errs, fmt.Errorf("%w: database.path", common.ErrMissingConfig))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("%w: storage.backend %q must be %s or %s",
			common.ErrInvalidConfig, s.Backend, BackendSQLite, BackendMemory))
	}

	if s.QuotaBytes < 0 {
		errs = append(errs, fmt.Errorf("%w: storage.quota_bytes must not be negative", common.ErrInvalidConfig))
	}
	if money.GetCurrency(s.Currency) == nil {
		errs = append(errs, fmt.Errorf("%w: unknown currency %q", common.ErrInvalidConfig, s.Currency))
	}
	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch s.LogFormat {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: logging.format %q must be console or json", common.ErrInvalidConfig, s.LogFormat))
	}

	return errors.Join(errs...)
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
