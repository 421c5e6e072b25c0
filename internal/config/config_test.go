package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golobby/stmt"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv unsets every variable Load reads. godotenv never overrides a
// variable that is already set, even to "".
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvDriver, EnvURL, EnvLogLevel, EnvInterp, EnvWildcard, EnvUnbounded} {
		name := name
		prev, ok := os.LookupEnv(name)
		require.NoError(t, os.Unsetenv(name))
		t.Cleanup(func() {
			if ok {
				_ = os.Setenv(name, prev)
			} else {
				_ = os.Unsetenv(name)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load("", "")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, stmt.Policy{}, cfg.Policy())
	})

	t.Run("yaml then env", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "stmt.yml", `
driver: mysql
url: user:pass@/app
log_level: dev
allow_wildcard_select: true
`)
		t.Setenv(EnvURL, "user:secret@/app")
		t.Setenv(EnvUnbounded, "true")

		cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "mysql", cfg.Driver)
		assert.Equal(t, "user:secret@/app", cfg.URL)
		assert.Equal(t, "dev", cfg.LogLevel)
		assert.Equal(t, stmt.Policy{AllowWildcardSelect: true, AllowUnboundedMutation: true}, cfg.Policy())
	})

	t.Run("env file", func(t *testing.T) {
		clearEnv(t)
		envFile := writeFile(t, ".env", "DB_DRIVER=sqlite3\nSTMT_INTERPOLATE=1\n")
		cfg, err := Load("", envFile)
		require.NoError(t, err)
		assert.Equal(t, "sqlite3", cfg.Driver)
		assert.True(t, cfg.Interpolate)
	})

	t.Run("missing config file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"), "")
		assert.Error(t, err)
	})

	t.Run("bad bool", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvWildcard, "sometimes")
		_, err := Load("", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvWildcard)
	})
}

func TestConnectionConfig(t *testing.T) {
	cfg := &Config{Driver: "sqlite", URL: ":memory:", LogLevel: "prod", Interpolate: true}
	conf, err := cfg.ConnectionConfig()
	require.NoError(t, err)
	assert.Equal(t, stmt.Dialects.SQLite3, conf.Dialect)
	assert.Equal(t, stmt.LogLevelProd, conf.LogLevel)
	assert.Equal(t, ":memory:", conf.ConnectionString)
	assert.True(t, conf.Interpolate)

	_, err = (&Config{Driver: "oracle"}).ConnectionConfig()
	assert.Error(t, err)

	_, err = (&Config{Driver: "postgres", LogLevel: "loud"}).ConnectionConfig()
	assert.Error(t, err)
}
