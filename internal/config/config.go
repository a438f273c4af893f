package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Lookup     LookupConfig     `yaml:"lookup" mapstructure:"lookup"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Monitoring MonitoringConfig `yaml:"monitoring" mapstructure:"monitoring"`
}

// StoreConfig selects and configures the record store. For the sqlite
// driver DatabaseURL is the database file path.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port                int      `yaml:"port" mapstructure:"port"`
	RateLimitRPS        float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst      int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	CORSOrigins         []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	ShutdownTimeoutSecs int      `yaml:"shutdown_timeout_secs" mapstructure:"shutdown_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LookupConfig tunes the reconciliation engine.
type LookupConfig struct {
	FetchTimeoutMs      int           `yaml:"fetch_timeout_ms" mapstructure:"fetch_timeout_ms"`
	MaxFanout           int           `yaml:"max_fanout" mapstructure:"max_fanout"`
	Placeholder         string        `yaml:"placeholder" mapstructure:"placeholder"`
	LogExcludePattern   string        `yaml:"log_exclude_pattern" mapstructure:"log_exclude_pattern"`
	PayloadPreviewChars int           `yaml:"payload_preview_chars" mapstructure:"payload_preview_chars"`
	Retry               RetryConfig   `yaml:"retry" mapstructure:"retry"`
	Circuit             CircuitConfig `yaml:"circuit" mapstructure:"circuit"`
}

// RetryConfig configures retries of transient source failures.
type RetryConfig struct {
	MaxAttempts      int `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
}

// CircuitConfig configures the per-source circuit breakers.
type CircuitConfig struct {
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// CacheConfig configures the API response cache. An empty RedisURL
// disables caching.
type CacheConfig struct {
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	TTLSecs  int    `yaml:"ttl_secs" mapstructure:"ttl_secs"`
}

// MonitoringConfig configures the background health checker.
type MonitoringConfig struct {
	CheckIntervalSecs int    `yaml:"check_interval_secs" mapstructure:"check_interval_secs"`
	WebhookURL        string `yaml:"webhook_url" mapstructure:"webhook_url"`
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LOANOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 50)
	v.SetDefault("server.rate_limit_burst", 100)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout_secs", 10)
	v.SetDefault("lookup.fetch_timeout_ms", 5000)
	v.SetDefault("lookup.max_fanout", 8)
	v.SetDefault("lookup.placeholder", "N/A")
	v.SetDefault("lookup.log_exclude_pattern", "%RAW%")
	v.SetDefault("lookup.payload_preview_chars", 200)
	v.SetDefault("lookup.retry.max_attempts", 2)
	v.SetDefault("lookup.retry.initial_backoff_ms", 100)
	v.SetDefault("lookup.retry.max_backoff_ms", 1000)
	v.SetDefault("lookup.circuit.failure_threshold", 5)
	v.SetDefault("lookup.circuit.reset_timeout_secs", 30)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl_secs", 60)
	v.SetDefault("monitoring.check_interval_secs", 60)
	v.SetDefault("monitoring.webhook_url", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings required by a command mode: serve, lookup,
// export or fixture.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve", "lookup", "export":
		errs = append(errs, c.validateStore()...)
		errs = append(errs, c.validateLookup()...)
		if mode == "serve" {
			if c.Server.Port <= 0 {
				errs = append(errs, "server.port must be > 0")
			}
			if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
				errs = append(errs, "server.rate_limit_rps and server.rate_limit_burst must be >= 0")
			}
			if c.Cache.RedisURL != "" && c.Cache.TTLSecs <= 0 {
				errs = append(errs, "cache.ttl_secs must be > 0 when cache.redis_url is set")
			}
		}
	case "fixture":
		if c.Store.Driver != "sqlite" {
			errs = append(errs, "store.driver must be sqlite to load fixtures")
		}
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.New(fmt.Sprintf("config: %s", strings.Join(errs, "; ")))
	}
	return nil
}

func (c *Config) validateStore() []string {
	var errs []string
	switch c.Store.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("store.driver must be postgres or sqlite, got %q", c.Store.Driver))
	}
	if c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required")
	}
	return errs
}

func (c *Config) validateLookup() []string {
	var errs []string
	if c.Lookup.FetchTimeoutMs <= 0 {
		errs = append(errs, "lookup.fetch_timeout_ms must be > 0")
	}
	if c.Lookup.MaxFanout < 1 || c.Lookup.MaxFanout > 64 {
		errs = append(errs, "lookup.max_fanout must be between 1 and 64")
	}
	if c.Lookup.PayloadPreviewChars < 0 {
		errs = append(errs, "lookup.payload_preview_chars must be >= 0")
	}
	return errs
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
