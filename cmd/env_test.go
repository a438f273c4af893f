package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/loanops/internal/cache"
	"github.com/sells-group/loanops/internal/config"
	"github.com/sells-group/loanops/internal/reconcile"
)

func TestEngineConfig_FromSettings(t *testing.T) {
	lc := config.LookupConfig{
		FetchTimeoutMs:      250,
		MaxFanout:           4,
		Placeholder:         "-",
		LogExcludePattern:   "%DEBUG%",
		PayloadPreviewChars: 50,
		Retry:               config.RetryConfig{MaxAttempts: 3, InitialBackoffMs: 10, MaxBackoffMs: 40},
		Circuit:             config.CircuitConfig{FailureThreshold: 7, ResetTimeoutSecs: 9},
	}

	ec := engineConfig(lc)

	assert.Equal(t, 250*time.Millisecond, ec.FetchTimeout)
	assert.Equal(t, 4, ec.MaxFanout)
	assert.Equal(t, "-", ec.Placeholder)
	assert.Equal(t, "%DEBUG%", ec.LogExcludePattern)
	assert.Equal(t, 50, ec.PayloadPreviewChars)
	assert.Equal(t, 3, ec.Retry.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, ec.Retry.InitialBackoff)
	assert.Equal(t, 40*time.Millisecond, ec.Retry.MaxBackoff)
	assert.Equal(t, 7, ec.Circuit.FailureThreshold)
	assert.Equal(t, 9*time.Second, ec.Circuit.ResetTimeout)
}

func TestEngineConfig_ZeroKeepsDefaults(t *testing.T) {
	ec := engineConfig(config.LookupConfig{})
	def := reconcile.DefaultConfig()

	assert.Equal(t, def.FetchTimeout, ec.FetchTimeout)
	assert.Equal(t, def.MaxFanout, ec.MaxFanout)
	assert.Equal(t, def.Placeholder, ec.Placeholder)
	assert.Equal(t, def.PayloadPreviewChars, ec.PayloadPreviewChars)
	assert.Empty(t, ec.LogExcludePattern)
}

func TestInitStore(t *testing.T) {
	ctx := context.Background()

	_, err := initStore(ctx, &config.Config{Store: config.StoreConfig{Driver: "mysql"}})
	assert.ErrorContains(t, err, "unsupported store driver")

	c := &config.Config{Store: config.StoreConfig{Driver: "sqlite", DatabaseURL: filepath.Join(t.TempDir(), "x.db")}}
	st, err := initStore(ctx, c)
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck
	assert.NoError(t, st.Ping(ctx))
}

func TestInitCache_DisabledWithoutURL(t *testing.T) {
	cfg = &config.Config{}
	c, closeFn, err := initCache(context.Background())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, cache.Noop{}, c)
}

func TestShutdownTimeout(t *testing.T) {
	cfg = &config.Config{}
	assert.Equal(t, 10*time.Second, shutdownTimeout())
	cfg.Server.ShutdownTimeoutSecs = 3
	assert.Equal(t, 3*time.Second, shutdownTimeout())
}
