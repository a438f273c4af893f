package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRead = errors.New("read failed")

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBreaker(threshold int, reset time.Duration) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: threshold, ResetTimeout: reset})
	cb.nowFunc = clock.Now
	return cb, clock
}

func read(cb *CircuitBreaker, err error) error {
	_, got := ExecuteVal(context.Background(), cb, func(context.Context) (struct{}, error) {
		return struct{}{}, err
	})
	return got
}

func fail(cb *CircuitBreaker, n int) {
	for range n {
		_ = read(cb, errRead)
	}
}

func succeed(cb *CircuitBreaker) error {
	return read(cb, nil)
}

func TestNewCircuitBreaker_Defaults(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})
	assert.Equal(t, 5, cb.cfg.FailureThreshold)
	assert.Equal(t, 30*time.Second, cb.cfg.ResetTimeout)
	assert.NotNil(t, cb.cfg.ShouldTrip)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_Lifecycle(t *testing.T) {
	cb, clock := newTestBreaker(3, time.Minute)

	fail(cb, 2)
	assert.Equal(t, CircuitClosed, cb.State())

	require.NoError(t, succeed(cb))
	fail(cb, 2)
	assert.Equal(t, CircuitClosed, cb.State(), "success resets the streak")

	fail(cb, 1)
	assert.Equal(t, CircuitOpen, cb.State())

	called := false
	_, err := ExecuteVal(context.Background(), cb, func(context.Context) (int, error) {
		called = true
		return 1, nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called, "open circuit must not reach the source")

	clock.Advance(time.Minute)
	assert.Equal(t, CircuitHalfOpen, cb.State())

	require.NoError(t, succeed(cb))
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(1, time.Second)

	fail(cb, 1)
	clock.Advance(time.Second)
	fail(cb, 1)

	assert.Equal(t, CircuitOpen, cb.State(), "probe failure restarts the timeout")
	assert.ErrorIs(t, succeed(cb), ErrCircuitOpen)
}

func TestCircuitBreaker_ShouldTripFiltersErrors(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		ShouldTrip:       ShouldTrip,
	})

	_ = read(cb, context.Canceled)
	assert.Equal(t, CircuitClosed, cb.State(), "cancellation does not count")

	fail(cb, 1)
	assert.Equal(t, CircuitOpen, cb.State())
}

func TestCircuitBreaker_StateChanges(t *testing.T) {
	var (
		mu          sync.Mutex
		transitions []string
	)
	cb, clock := newTestBreaker(1, time.Second)
	cb.cfg.OnStateChange = func(from, to CircuitState) {
		mu.Lock()
		defer mu.Unlock()
		transitions = append(transitions, from.String()+">"+to.String())
	}

	fail(cb, 1)
	clock.Advance(time.Second)
	require.NoError(t, succeed(cb))
	require.NoError(t, succeed(cb))

	assert.Equal(t, []string{"closed>open", "open>half-open", "half-open>closed"}, transitions)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_ConcurrentReads(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1000})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				fail(cb, 1)
				return
			}
			_ = succeed(cb)
		}()
	}
	wg.Wait()

	assert.Equal(t, CircuitClosed, cb.State())
}

func TestExecuteVal(t *testing.T) {
	cb, _ := newTestBreaker(1, time.Minute)

	n, err := ExecuteVal(context.Background(), cb, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = ExecuteVal(context.Background(), cb, func(context.Context) (int, error) { return 0, errRead })
	assert.ErrorIs(t, err, errRead)

	n, err = ExecuteVal(context.Background(), cb, func(context.Context) (int, error) { return 9, nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Zero(t, n)
}

func TestBreakers_PerSource(t *testing.T) {
	b := NewBreakers(CircuitBreakerConfig{FailureThreshold: 1})

	var changes []string
	b.OnStateChange(func(source string, _, to CircuitState) {
		changes = append(changes, source+":"+to.String())
	})

	loans := b.Get("loans")
	assert.Same(t, loans, b.Get("loans"))
	fail(loans, 1)
	b.Get("provider_logs")

	assert.Equal(t, map[string]CircuitState{
		"loans":         CircuitOpen,
		"provider_logs": CircuitClosed,
	}, b.States())
	assert.Equal(t, []string{"loans:open"}, changes)
}

func TestCircuitFromSettings(t *testing.T) {
	cfg := CircuitFromSettings(0, 0)
	assert.Equal(t, 5, cfg.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.ResetTimeout)
	require.NotNil(t, cfg.ShouldTrip)
	assert.False(t, cfg.ShouldTrip(context.Canceled))

	cfg = CircuitFromSettings(2, 4)
	assert.Equal(t, 2, cfg.FailureThreshold)
	assert.Equal(t, 4*time.Second, cfg.ResetTimeout)
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", CircuitClosed.String())
	assert.Equal(t, "open", CircuitOpen.String())
	assert.Equal(t, "half-open", CircuitHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(42).String())
}
