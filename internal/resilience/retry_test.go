package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		Multiplier:     2,
	}
}

func TestDo(t *testing.T) {
	transient := NewTransientError(errors.New("conn reset"), "loans")

	tests := []struct {
		name      string
		attempts  int
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{name: "first attempt succeeds", attempts: 3, errs: []error{nil}, wantCalls: 1},
		{name: "recovers after transient", attempts: 3, errs: []error{transient, transient, nil}, wantCalls: 3},
		{name: "exhausts attempts", attempts: 2, errs: []error{transient, transient, nil}, wantCalls: 2, wantErr: transient},
		{name: "permanent error not retried", attempts: 3, errs: []error{errRead, nil}, wantCalls: 1, wantErr: errRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), fastRetry(tt.attempts), func(context.Context) error {
				err := tt.errs[calls]
				calls++
				return err
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDo_StopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastRetry(5)
	cfg.InitialBackoff = time.Hour
	cfg.MaxBackoff = time.Hour

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- Do(ctx, cfg, func(context.Context) error {
			calls++
			return NewTransientError(errRead, "provider_logs")
		})
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, errRead)
	case <-time.After(5 * time.Second):
		t.Fatal("retry did not observe cancellation")
	}
	assert.Equal(t, 1, calls)
}

func TestDo_CustomShouldRetryAndOnRetry(t *testing.T) {
	var retried []int
	cfg := fastRetry(3)
	cfg.ShouldRetry = func(err error) bool { return errors.Is(err, errRead) }
	cfg.OnRetry = func(attempt int, _ error) { retried = append(retried, attempt) }

	calls := 0
	err := Do(context.Background(), cfg, func(context.Context) error {
		calls++
		return errRead
	})

	assert.ErrorIs(t, err, errRead)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDoVal(t *testing.T) {
	calls := 0
	got, err := DoVal(context.Background(), fastRetry(2), func(context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return nil, NewTransientError(errRead, "loans")
		}
		return []string{"123"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"123"}, got)

	got, err = DoVal(context.Background(), fastRetry(1), func(context.Context) ([]string, error) {
		return []string{"partial"}, errRead
	})
	assert.ErrorIs(t, err, errRead)
	assert.Nil(t, got, "failed reads return the zero value")
}

func TestApplyDefaults(t *testing.T) {
	cfg := applyDefaults(RetryConfig{JitterFraction: -1})
	def := DefaultRetryConfig()

	assert.Equal(t, def.MaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, def.InitialBackoff, cfg.InitialBackoff)
	assert.Equal(t, def.MaxBackoff, cfg.MaxBackoff)
	assert.Equal(t, def.Multiplier, cfg.Multiplier)
	assert.Zero(t, cfg.JitterFraction)
}

func TestComputeBackoff(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: 10 * time.Millisecond, MaxBackoff: 50 * time.Millisecond, Multiplier: 2}

	assert.Equal(t, 10*time.Millisecond, computeBackoff(0, cfg))
	assert.Equal(t, 20*time.Millisecond, computeBackoff(1, cfg))
	assert.Equal(t, 40*time.Millisecond, computeBackoff(2, cfg))
	assert.Equal(t, 50*time.Millisecond, computeBackoff(5, cfg), "capped at max")

	cfg.JitterFraction = 0.5
	for range 20 {
		d := computeBackoff(1, cfg)
		assert.GreaterOrEqual(t, d, 10*time.Millisecond)
		assert.LessOrEqual(t, d, 30*time.Millisecond)
	}
}

func TestRetryLogger(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	RetryLogger(zap.New(core), "cams_securities")(1, errors.New("conn reset"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "retrying source read", entry.Message)
	assert.Equal(t, "cams_securities", entry.ContextMap()["source"])
	assert.Equal(t, int64(1), entry.ContextMap()["attempt"])
}

func TestRetryFromSettings(t *testing.T) {
	cfg := RetryFromSettings(4, 10, 50)
	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, cfg.InitialBackoff)
	assert.Equal(t, 50*time.Millisecond, cfg.MaxBackoff)

	assert.Equal(t, DefaultRetryConfig(), RetryFromSettings(0, 0, 0))
}
