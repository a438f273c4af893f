package reconcile

import "time"

// Fetch and operation outcomes reported to the Observer.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeTimeout     = "timeout"
	OutcomeCircuitOpen = "circuit_open"
	OutcomeNotFound    = "not_found"
	OutcomeInvalid     = "invalid"
	OutcomeCanceled    = "canceled"
)

// Observer receives fetch and operation measurements.
// internal/monitoring provides the Prometheus implementation.
type Observer interface {
	ObserveFetch(source, outcome string, elapsed time.Duration)
	ObserveOperation(op, outcome string, elapsed time.Duration)
	ObservePartialFailure(op, source string)
}

type noopObserver struct{}

func (noopObserver) ObserveFetch(string, string, time.Duration)     {}
func (noopObserver) ObserveOperation(string, string, time.Duration) {}
func (noopObserver) ObservePartialFailure(string, string)           {}
