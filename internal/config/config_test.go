package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml or .env is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, int32(10), cfg.Store.MaxConns)
	assert.Equal(t, int32(2), cfg.Store.MinConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 50, cfg.Server.RateLimitRPS, 0.001)
	assert.Equal(t, 100, cfg.Server.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 5000, cfg.Lookup.FetchTimeoutMs)
	assert.Equal(t, 8, cfg.Lookup.MaxFanout)
	assert.Equal(t, "N/A", cfg.Lookup.Placeholder)
	assert.Equal(t, "%RAW%", cfg.Lookup.LogExcludePattern)
	assert.Equal(t, 200, cfg.Lookup.PayloadPreviewChars)
	assert.Equal(t, 2, cfg.Lookup.Retry.MaxAttempts)
	assert.Equal(t, 100, cfg.Lookup.Retry.InitialBackoffMs)
	assert.Equal(t, 1000, cfg.Lookup.Retry.MaxBackoffMs)
	assert.Equal(t, 5, cfg.Lookup.Circuit.FailureThreshold)
	assert.Equal(t, 30, cfg.Lookup.Circuit.ResetTimeoutSecs)
	assert.Equal(t, 60, cfg.Cache.TTLSecs)
	assert.Empty(t, cfg.Cache.RedisURL)
	assert.Equal(t, 60, cfg.Monitoring.CheckIntervalSecs)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
  database_url: loanops.db
log:
  level: debug
  format: console
server:
  port: 9090
lookup:
  max_fanout: 4
  retry:
    max_attempts: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "loanops.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Lookup.MaxFanout)
	assert.Equal(t, 3, cfg.Lookup.Retry.MaxAttempts)
	// Defaults still apply for unset values
	assert.Equal(t, 100, cfg.Lookup.Retry.InitialBackoffMs)
	assert.Equal(t, 5000, cfg.Lookup.FetchTimeoutMs)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LOANOPS_STORE_DRIVER", "postgres")
	t.Setenv("LOANOPS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("LOANOPS_SERVER_PORT", "3000")
	t.Setenv("LOANOPS_LOOKUP_FETCH_TIMEOUT_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 250, cfg.Lookup.FetchTimeoutMs)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("LOANOPS_STORE_DATABASE_URL=postgres://localhost/loans\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("LOANOPS_STORE_DATABASE_URL") }) //nolint:errcheck

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/loans", cfg.Store.DatabaseURL)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.Driver = "postgres"
	cfg.Store.DatabaseURL = "postgres://localhost/loans"
	cfg.Server.Port = 8080
	cfg.Lookup.FetchTimeoutMs = 5000
	cfg.Lookup.MaxFanout = 8
	cfg.Lookup.PayloadPreviewChars = 200
	cfg.Cache.TTLSecs = 60
	return cfg
}

func TestValidateServe_Valid(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("serve"))
	assert.NoError(t, cfg.Validate("lookup"))
	assert.NoError(t, cfg.Validate("export"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")

	// Port only matters for serve.
	assert.NoError(t, cfg.Validate("lookup"))
}

func TestValidateStore(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "mysql"
	cfg.Store.DatabaseURL = ""

	err := cfg.Validate("lookup")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be postgres or sqlite")
	assert.Contains(t, err.Error(), "store.database_url is required")
}

func TestValidateLookupBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Lookup.MaxFanout = 0
	err := cfg.Validate("lookup")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_fanout must be between 1 and 64")

	cfg.Lookup.MaxFanout = 65
	assert.Error(t, cfg.Validate("lookup"))

	cfg.Lookup.MaxFanout = 64
	cfg.Lookup.FetchTimeoutMs = 0
	err = cfg.Validate("lookup")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetch_timeout_ms")
}

func TestValidateServe_CacheTTL(t *testing.T) {
	cfg := validDefaults()
	cfg.Cache.RedisURL = "redis://localhost:6379/0"
	cfg.Cache.TTLSecs = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cache.ttl_secs")
}

func TestValidateFixture(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("fixture")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be sqlite")

	cfg.Store.Driver = "sqlite"
	cfg.Store.DatabaseURL = "dev.db"
	assert.NoError(t, cfg.Validate("fixture"))
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
