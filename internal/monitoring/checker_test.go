package monitoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sells-group/loanops/internal/config"
)

func TestChecker_RunStopsOnCancel(t *testing.T) {
	collector := NewCollector(&fakeSource{}, time.Second)
	alerter := NewAlerter(config.MonitoringConfig{})
	checker := NewChecker(collector, alerter, nil, config.MonitoringConfig{CheckIntervalSecs: 1})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		checker.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Checker.Run did not stop after context cancellation")
	}
}

func TestChecker_DefaultInterval(t *testing.T) {
	checker := NewChecker(NewCollector(&fakeSource{}, 0), NewAlerter(config.MonitoringConfig{}), nil, config.MonitoringConfig{})
	assert.NotNil(t, checker)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	checker.Run(ctx)
}

func TestChecker_CheckUpdatesMetricsAndAlerts(t *testing.T) {
	var received atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	cfg := config.MonitoringConfig{WebhookURL: ts.URL}
	src := &fakeSource{
		pingErr: errors.New("down"),
		states:  map[string]string{"loans": "open"},
	}
	checker := NewChecker(NewCollector(src, time.Second), NewAlerter(cfg), m, cfg)

	checker.check(context.Background(), zap.NewNop())

	assert.Equal(t, 0.0, gathered(t, reg, "loanops_store_up", nil))
	assert.Equal(t, 1.0, gathered(t, reg, "loanops_source_circuit_state", map[string]string{"source": "loans"}))
	assert.Equal(t, int32(1), received.Load(), "one notification per check")
}
