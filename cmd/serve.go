package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/loanops/internal/api"
	"github.com/sells-group/loanops/internal/cache"
	"github.com/sells-group/loanops/internal/monitoring"
	"github.com/sells-group/loanops/internal/reconcile"
	"github.com/sells-group/loanops/internal/tracing"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lookup API for the ops dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := monitoring.NewMetrics(reg)

		env, err := initLookup(ctx, "serve",
			reconcile.WithObserver(metrics),
			reconcile.WithTracer(tracing.NewOTel(nil)),
		)
		if err != nil {
			return err
		}
		defer env.Close()

		respCache, closeCache, err := initCache(ctx)
		if err != nil {
			return err
		}
		defer closeCache()

		collector := monitoring.NewCollector(env.Service, 2*time.Second)
		checker := monitoring.NewChecker(collector, monitoring.NewAlerter(cfg.Monitoring), metrics, cfg.Monitoring)
		go checker.Run(ctx)

		handler := api.NewRouter(env.Service, api.Options{
			RateLimitRPS:   cfg.Server.RateLimitRPS,
			RateLimitBurst: cfg.Server.RateLimitBurst,
			CORSOrigins:    cfg.Server.CORSOrigins,
			Cache:          respCache,
			Recorder:       metrics,
			Health:         collector,
			Gatherer:       reg,
			Logger:         zap.L(),
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout())
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// initCache connects the response cache when a Redis URL is configured.
func initCache(ctx context.Context) (cache.Cache, func(), error) {
	if cfg.Cache.RedisURL == "" {
		return cache.Noop{}, func() {}, nil
	}
	c, client, err := cache.NewRedis(ctx, cfg.Cache.RedisURL, time.Duration(cfg.Cache.TTLSecs)*time.Second)
	if err != nil {
		return nil, nil, err
	}
	zap.L().Info("response cache enabled", zap.Int("ttl_secs", cfg.Cache.TTLSecs))
	return c, closeRedis(client), nil
}

func closeRedis(client *redis.Client) func() {
	return func() {
		if err := client.Close(); err != nil {
			zap.L().Warn("close redis", zap.Error(err))
		}
	}
}

func shutdownTimeout() time.Duration {
	if cfg.Server.ShutdownTimeoutSecs > 0 {
		return time.Duration(cfg.Server.ShutdownTimeoutSecs) * time.Second
	}
	return 10 * time.Second
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
