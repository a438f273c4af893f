package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/loanops/internal/config"
	"github.com/sells-group/loanops/internal/resilience"
)

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertStoreDown   AlertType = "store_down"
	AlertCircuitOpen AlertType = "circuit_open"
)

// Alert is one unhealthy condition found in a Snapshot.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Notification is the webhook body. All alerts from one check travel together.
type Notification struct {
	Service string    `json:"service"`
	SentAt  time.Time `json:"sentAt"`
	Alerts  []Alert   `json:"alerts"`
}

// Alerter turns unhealthy snapshots into alerts and posts them to a webhook.
type Alerter struct {
	webhookURL string
	client     *http.Client
	retry      resilience.RetryConfig
	now        func() time.Time
}

// NewAlerter creates an Alerter. An empty webhook URL disables delivery.
func NewAlerter(cfg config.MonitoringConfig) *Alerter {
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = 3
	return &Alerter{
		webhookURL: cfg.WebhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		retry:      retry,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate returns the alerts raised by snap.
func (a *Alerter) Evaluate(snap *Snapshot) []Alert {
	var alerts []Alert
	now := a.now()

	if !snap.StoreUp {
		alerts = append(alerts, Alert{
			Type:      AlertStoreDown,
			Severity:  "critical",
			Message:   "Record store is unreachable",
			Details:   map[string]any{"error": snap.StoreError},
			Timestamp: now,
		})
	}

	if n := len(snap.OpenCircuits); n > 0 {
		alerts = append(alerts, Alert{
			Type:      AlertCircuitOpen,
			Severity:  "high",
			Message:   fmt.Sprintf("%d source circuit(s) open: %s", n, strings.Join(snap.OpenCircuits, ", ")),
			Details:   map[string]any{"sources": snap.OpenCircuits},
			Timestamp: now,
		})
	}

	return alerts
}

// SendAlerts posts alerts to the webhook as one Notification. It returns the
// number of alerts delivered, which is either zero or len(alerts).
func (a *Alerter) SendAlerts(ctx context.Context, alerts []Alert) int {
	if a.webhookURL == "" || len(alerts) == 0 {
		return 0
	}

	body, err := json.Marshal(Notification{Service: "loanops", SentAt: a.now(), Alerts: alerts})
	if err != nil {
		zap.L().Error("monitoring: marshal alerts", zap.Error(err))
		return 0
	}

	retry := a.retry
	retry.OnRetry = resilience.RetryLogger(zap.L(), "alert_webhook")
	if err := resilience.Do(ctx, retry, func(ctx context.Context) error {
		return a.post(ctx, body)
	}); err != nil {
		zap.L().Error("monitoring: failed to send alerts",
			zap.Int("alerts", len(alerts)),
			zap.Error(err),
		)
		return 0
	}

	zap.L().Info("monitoring: alerts sent", zap.Int("alerts", len(alerts)))
	return len(alerts)
}

// post sends one delivery attempt. Server errors and transport failures are
// transient, client errors are not.
func (a *Alerter) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.webhookURL, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "monitoring: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return resilience.NewTransientError(eris.Wrap(err, "monitoring: webhook request"), "alert_webhook")
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode >= 500:
		return resilience.NewTransientError(eris.Errorf("monitoring: webhook returned status %d", resp.StatusCode), "alert_webhook")
	case resp.StatusCode >= 400:
		return eris.Errorf("monitoring: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
