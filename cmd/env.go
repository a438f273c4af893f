package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/loanops/internal/config"
	"github.com/sells-group/loanops/internal/reconcile"
	"github.com/sells-group/loanops/internal/resilience"
	"github.com/sells-group/loanops/internal/store"
)

// initStore opens the configured record store.
func initStore(ctx context.Context, c *config.Config) (store.RecordStore, error) {
	opts := []store.Option{store.WithPlaceholder(c.Lookup.Placeholder)}
	switch c.Store.Driver {
	case "sqlite":
		st, err := store.NewSQLite(c.Store.DatabaseURL, opts...)
		if err != nil {
			return nil, err
		}
		if err := st.EnsureSchema(ctx); err != nil {
			st.Close() //nolint:errcheck
			return nil, err
		}
		return st, nil
	case "postgres":
		return store.NewPostgres(ctx, c.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: c.Store.MaxConns,
			MinConns: c.Store.MinConns,
		}, opts...)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", c.Store.Driver)
	}
}

// engineConfig converts the lookup settings into an engine config. Zero
// values keep the engine defaults; an empty exclude pattern disables the
// provider log filter.
func engineConfig(c config.LookupConfig) reconcile.Config {
	ec := reconcile.DefaultConfig()
	if c.FetchTimeoutMs > 0 {
		ec.FetchTimeout = time.Duration(c.FetchTimeoutMs) * time.Millisecond
	}
	if c.MaxFanout > 0 {
		ec.MaxFanout = c.MaxFanout
	}
	if c.Placeholder != "" {
		ec.Placeholder = c.Placeholder
	}
	ec.LogExcludePattern = c.LogExcludePattern
	if c.PayloadPreviewChars > 0 {
		ec.PayloadPreviewChars = c.PayloadPreviewChars
	}
	ec.Retry = resilience.RetryFromSettings(c.Retry.MaxAttempts, c.Retry.InitialBackoffMs, c.Retry.MaxBackoffMs)
	ec.Circuit = resilience.CircuitFromSettings(c.Circuit.FailureThreshold, c.Circuit.ResetTimeoutSecs)
	return ec
}

// lookupEnv is an opened store and the engine on top of it.
type lookupEnv struct {
	Store   store.RecordStore
	Service *reconcile.Service
}

// Close releases the store.
func (e *lookupEnv) Close() {
	if err := e.Store.Close(); err != nil {
		zap.L().Warn("close store", zap.Error(err))
	}
}

// initLookup validates the config for mode and builds the engine.
func initLookup(ctx context.Context, mode string, opts ...reconcile.Option) (*lookupEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}
	st, err := initStore(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	opts = append([]reconcile.Option{reconcile.WithLogger(zap.L())}, opts...)
	return &lookupEnv{
		Store:   st,
		Service: reconcile.New(st, engineConfig(cfg.Lookup), opts...),
	}, nil
}
