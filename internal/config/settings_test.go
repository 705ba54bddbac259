package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/remis/internal/common"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	s, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local", "share", "remis", "remis.db"), s.DatabasePath)
	assert.Equal(t, BackendSQLite, s.Backend)
	assert.Equal(t, int64(DefaultQuotaBytes), s.QuotaBytes)
	assert.Equal(t, "ARS", s.Currency)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REMIS_TEST_DIR", "/srv/remis")

	v := newViper()
	v.Set("database.path", "$REMIS_TEST_DIR/data.db")
	v.Set("storage.backend", " Memory ")
	v.Set("storage.quota_bytes", 0)
	v.Set("display.currency", "usd")

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/srv/remis/data.db", s.DatabasePath)
	assert.Equal(t, BackendMemory, s.Backend)
	assert.Zero(t, s.QuotaBytes)
	assert.Equal(t, "USD", s.Currency)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr error
	}{
		{name: "unknown backend", key: "storage.backend", value: "postgres", wantErr: common.ErrInvalidConfig},
		{name: "empty database path", key: "database.path", value: "", wantErr: common.ErrMissingConfig},
		{name: "negative quota", key: "storage.quota_bytes", value: -1, wantErr: common.ErrInvalidConfig},
		{name: "unknown currency", key: "display.currency", value: "XYZ", wantErr: common.ErrInvalidConfig},
		{name: "unknown log level", key: "logging.level", value: "verbose", wantErr: common.ErrInvalidConfig},
		{name: "unknown log format", key: "logging.format", value: "xml", wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("REMIS_ENV_FILE_TEST=from-file\n"), 0o600))
	t.Setenv("REMIS_ENV_FILE_TEST", "")
	require.NoError(t, os.Unsetenv("REMIS_ENV_FILE_TEST"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("REMIS_ENV_FILE_TEST"))

	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
}

func TestLoadEnvFile_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REMIS_ENV_OVERRIDE_TEST=file\n"), 0o600))
	t.Setenv("REMIS_ENV_OVERRIDE_TEST", "shell")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "shell", os.Getenv("REMIS_ENV_OVERRIDE_TEST"))
}
