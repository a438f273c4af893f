// Package reconcile is the multi-source reconciliation engine behind the
// loan operations lookups. Each operation resolves an identifier, fans out
// independent reads against the record store, correlates cross-referenced
// records, deduplicates and groups them by identity and summarizes the
// merged set.
package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/loanops/internal/model"
	"github.com/sells-group/loanops/internal/resilience"
	"github.com/sells-group/loanops/internal/store"
	"github.com/sells-group/loanops/internal/tracing"
)

// Record sources, used as breaker, metric and log labels.
const (
	SourceLoans            = "loans"
	SourceCamsSecurities   = "cams_securities"
	SourceLedgerSecurities = "ledger_securities"
	SourceProviderRequests = "provider_requests"
	SourceProviderLogs     = "provider_logs"
	SourceEligibility      = "eligibility"
	SourceBankerChecks     = "banker_checks"
)

// Config tunes the engine.
type Config struct {
	// FetchTimeout bounds every single source read.
	FetchTimeout time.Duration
	// MaxFanout bounds concurrent reads within one request.
	MaxFanout int
	// Placeholder is the token stores substitute for missing strings.
	Placeholder string
	// LogExcludePattern is a LIKE pattern of provider log types to skip.
	LogExcludePattern string
	// PayloadPreviewChars is the preview length of provider log bodies.
	PayloadPreviewChars int

	Retry   resilience.RetryConfig
	Circuit resilience.CircuitBreakerConfig
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		FetchTimeout:        5 * time.Second,
		MaxFanout:           8,
		Placeholder:         model.DefaultPlaceholder,
		LogExcludePattern:   "%RAW%",
		PayloadPreviewChars: 200,
		Retry:               resilience.DefaultRetryConfig(),
		Circuit:             resilience.CircuitFromSettings(0, 0),
	}
}

// Service runs the lookup operations.
type Service struct {
	store    store.RecordStore
	cfg      Config
	norm     model.Normalizer
	breakers *resilience.Breakers
	obs      Observer
	tracer   tracing.Tracer
	log      *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to zap.L().
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.obs = o }
}

// WithTracer sets the span tracer.
func WithTracer(t tracing.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// New creates a Service reading from st.
func New(st store.RecordStore, cfg Config, opts ...Option) *Service {
	def := DefaultConfig()
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = def.FetchTimeout
	}
	if cfg.MaxFanout <= 0 {
		cfg.MaxFanout = def.MaxFanout
	}
	if cfg.PayloadPreviewChars <= 0 {
		cfg.PayloadPreviewChars = def.PayloadPreviewChars
	}
	s := &Service{
		store:  st,
		cfg:    cfg,
		norm:   model.NewNormalizer(cfg.Placeholder),
		obs:    noopObserver{},
		tracer: tracing.NoopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.L()
	}
	s.log = s.log.With(zap.String("component", "reconcile"))
	s.breakers = resilience.NewBreakers(cfg.Circuit)
	s.breakers.OnStateChange(func(source string, from, to resilience.CircuitState) {
		s.log.Warn("source circuit changed",
			zap.String("source", source),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})
	return s
}

// BreakerStates reports the circuit state of every source read so far.
func (s *Service) BreakerStates() map[string]string {
	states := s.breakers.States()
	out := make(map[string]string, len(states))
	for k, v := range states {
		out[k] = v.String()
	}
	return out
}

// Ping checks the record store.
func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	return resilience.Do(ctx, s.cfg.Retry, s.store.Ping)
}

// fetch runs one source read under the per-fetch timeout, the source's
// circuit breaker and the retry policy, and records a span, a metric and a
// debug log line.
func fetch[T any](ctx context.Context, s *Service, source string, fn func(ctx context.Context) (T, error)) (T, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "reconcile.fetch", tracing.String("source", source))

	retry := s.cfg.Retry
	retry.OnRetry = resilience.RetryLogger(s.log, source)
	cb := s.breakers.Get(source)

	val, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (T, error) {
		return resilience.ExecuteVal(ctx, cb, func(ctx context.Context) (T, error) {
			fctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
			defer cancel()
			return fn(fctx)
		})
	})

	span.End(err)
	outcome := fetchOutcome(err)
	elapsed := time.Since(start)
	s.obs.ObserveFetch(source, outcome, elapsed)
	s.log.Debug("source fetch",
		zap.String("source", source),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
	if err != nil {
		var zero T
		return zero, eris.Wrapf(err, "reconcile: fetch %s", source)
	}
	return val, nil
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, resilience.ErrCircuitOpen):
		return OutcomeCircuitOpen
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

func operationOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case IsValidation(err):
		return OutcomeInvalid
	case IsNotFound(err):
		return OutcomeNotFound
	default:
		return fetchOutcome(err)
	}
}

// operation wraps a public operation with a span, a metric and error
// logging. Validation and not-found results are not logged as errors.
func (s *Service) operation(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "reconcile."+op)
	err := fn(ctx)
	span.End(err)

	outcome := operationOutcome(err)
	s.obs.ObserveOperation(op, outcome, time.Since(start))
	if outcome != OutcomeOK && outcome != OutcomeInvalid && outcome != OutcomeNotFound {
		s.log.Error("lookup failed", zap.String("operation", op), zap.Error(err))
	}
	return err
}

// partial records an independent source that failed without failing the
// operation.
func (s *Service) partial(op, source string, err error) {
	s.obs.ObservePartialFailure(op, source)
	s.log.Warn("independent source failed",
		zap.String("operation", op),
		zap.String("source", source),
		zap.Error(err),
	)
}
