// Package api exposes the reconciliation engine as the JSON HTTP API the
// loan-ops dashboard consumes.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sells-group/loanops/internal/cache"
	"github.com/sells-group/loanops/internal/model"
	"github.com/sells-group/loanops/internal/monitoring"
	"github.com/sells-group/loanops/internal/reconcile"
)

// Lookups is the engine surface the API serves.
type Lookups interface {
	Resolve(ctx context.Context, req reconcile.ResolveRequest) (*model.CustomerData, error)
	Securities(ctx context.Context, loanID string) (*reconcile.SecuritiesResult, error)
	Eligibility(ctx context.Context, req reconcile.EligibilityRequest) (*reconcile.EligibilityResult, error)
	BankerCheck(ctx context.Context, loanID string) (*reconcile.BankerCheckResult, error)
	ProviderLogs(ctx context.Context, pan string) (*reconcile.ProviderLogsResult, error)
	Outcome(ctx context.Context, req reconcile.ResolveRequest) (*reconcile.Outcome, error)
}

// Recorder receives request and cache measurements.
type Recorder interface {
	ObserveRequest(route string, status int)
	ObserveCache(hit bool)
}

type noopRecorder struct{}

func (noopRecorder) ObserveRequest(string, int) {}
func (noopRecorder) ObserveCache(bool)          {}

// Options configures the router. Zero values disable the optional parts.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
	Cache          cache.Cache
	Recorder       Recorder
	Health         *monitoring.Collector
	Gatherer       prometheus.Gatherer
	Logger         *zap.Logger
}

// Server holds the handler dependencies.
type Server struct {
	svc    Lookups
	cache  cache.Cache
	rec    Recorder
	health *monitoring.Collector
	log    *zap.Logger
}

const (
	opResolve      = "resolve"
	opSecurities   = "securities"
	opEligibility  = "eligibility"
	opBankerCheck  = "banker_check"
	opProviderLogs = "provider_logs"
	opOutcome      = "outcome"
)

var (
	resolveRoute      = route{op: opResolve, invalid: "Invalid input parameters"}
	securitiesRoute   = route{op: opSecurities, invalid: "Invalid loan ID parameter", notFound: "Not found"}
	eligibilityRoute  = route{op: opEligibility, invalid: "Invalid input parameters", notFound: "No eligibility data found"}
	bankerCheckRoute  = route{op: opBankerCheck, invalid: "Invalid loan ID parameter", notFound: "Not found"}
	providerLogsRoute = route{op: opProviderLogs, invalid: "Invalid PAN parameter", notFound: "Not found"}
	outcomeRoute      = route{op: opOutcome, invalid: "Invalid input parameters"}
)

// NewRouter wires the API routes and middleware.
func NewRouter(svc Lookups, opts Options) http.Handler {
	s := &Server{
		svc:    svc,
		cache:  opts.Cache,
		rec:    opts.Recorder,
		health: opts.Health,
		log:    opts.Logger,
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.rec == nil {
		s.rec = noopRecorder{}
	}
	if s.log == nil {
		s.log = zap.L()
	}
	s.log = s.log.With(zap.String("component", "api"))

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(recovery(s.log))
	r.Use(accessLog(s.log, s.rec))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
		r.Get("/search-customer", s.handleSearchCustomer)
		r.Get("/validate", s.handleValidate)
		r.Get("/eligibility", s.handleEligibility)
		r.Get("/banker-check", s.handleBankerCheck)
		r.Get("/provider-logs", s.handleProviderLogs)
		r.Get("/outcome", s.handleOutcome)
	})

	return r
}

func (s *Server) handleSearchCustomer(w http.ResponseWriter, r *http.Request) {
	req := reconcile.ResolveRequest{PAN: query(r, "pan"), Mobile: query(r, "mobile")}
	s.serve(w, r, resolveRoute, cache.Key(opResolve, req.PAN, req.Mobile), func(ctx context.Context) (any, error) {
		return s.svc.Resolve(ctx, req)
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	loanID := query(r, "loanId")
	s.serve(w, r, securitiesRoute, cache.Key(opSecurities, loanID), func(ctx context.Context) (any, error) {
		return s.svc.Securities(ctx, loanID)
	})
}

func (s *Server) handleEligibility(w http.ResponseWriter, r *http.Request) {
	req := reconcile.EligibilityRequest{Mobile: query(r, "mobile"), Provider: strings.ToUpper(query(r, "provider"))}
	s.serve(w, r, eligibilityRoute, cache.Key(opEligibility, req.Mobile, req.Provider), func(ctx context.Context) (any, error) {
		return s.svc.Eligibility(ctx, req)
	})
}

func (s *Server) handleBankerCheck(w http.ResponseWriter, r *http.Request) {
	loanID := query(r, "loanId")
	s.serve(w, r, bankerCheckRoute, cache.Key(opBankerCheck, loanID), func(ctx context.Context) (any, error) {
		return s.svc.BankerCheck(ctx, loanID)
	})
}

func (s *Server) handleProviderLogs(w http.ResponseWriter, r *http.Request) {
	pan := query(r, "pan")
	s.serve(w, r, providerLogsRoute, cache.Key(opProviderLogs, pan), func(ctx context.Context) (any, error) {
		return s.svc.ProviderLogs(ctx, pan)
	})
}

func (s *Server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	req := reconcile.ResolveRequest{PAN: query(r, "pan"), Mobile: query(r, "mobile")}
	s.serve(w, r, outcomeRoute, cache.Key(opOutcome, req.PAN, req.Mobile), func(ctx context.Context) (any, error) {
		return s.svc.Outcome(ctx, req)
	})
}

// serve answers from the cache when possible, otherwise runs the lookup and
// caches a successful document. Cache failures degrade to a miss.
func (s *Server) serve(w http.ResponseWriter, r *http.Request, rt route, key string, lookup func(context.Context) (any, error)) {
	ctx := r.Context()

	var cached json.RawMessage
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		hit = false
	}
	s.rec.ObserveCache(hit)
	if hit {
		w.Header().Set("X-Cache", "hit")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	doc, err := lookup(ctx)
	if err != nil {
		s.writeError(w, r, rt, err)
		return
	}
	if err := s.cache.Set(ctx, key, doc); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	w.Header().Set("X-Cache", "miss")
	writeJSON(w, http.StatusOK, doc)
}

type healthResponse struct {
	Status string `json:"status"`
	*monitoring.Snapshot
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	snap := s.health.Collect(r.Context())
	if !snap.StoreUp {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Snapshot: snap})
		return
	}
	status := "ok"
	if !snap.Healthy() {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: status, Snapshot: snap})
}

func query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
