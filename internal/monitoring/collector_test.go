package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	pingErr error
	states  map[string]string
	delay   time.Duration
}

func (f *fakeSource) Ping(ctx context.Context) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.pingErr
}

func (f *fakeSource) BreakerStates() map[string]string { return f.states }

func TestCollector_Healthy(t *testing.T) {
	c := NewCollector(&fakeSource{states: map[string]string{"loans": "closed"}}, time.Second)

	snap := c.Collect(context.Background())
	assert.True(t, snap.StoreUp)
	assert.Empty(t, snap.StoreError)
	assert.Equal(t, map[string]string{"loans": "closed"}, snap.Circuits)
	assert.Empty(t, snap.OpenCircuits)
	assert.True(t, snap.Healthy())
	assert.False(t, snap.CollectedAt.IsZero())
}

func TestCollector_StoreDownAndOpenCircuits(t *testing.T) {
	c := NewCollector(&fakeSource{
		pingErr: errors.New("connection refused"),
		states: map[string]string{
			"provider_logs": "open",
			"banker_checks": "open",
			"loans":         "half-open",
		},
	}, time.Second)

	snap := c.Collect(context.Background())
	assert.False(t, snap.StoreUp)
	assert.Equal(t, "connection refused", snap.StoreError)
	assert.Equal(t, []string{"banker_checks", "provider_logs"}, snap.OpenCircuits)
	assert.False(t, snap.Healthy())
}

func TestCollector_PingTimeout(t *testing.T) {
	c := NewCollector(&fakeSource{delay: time.Second}, 10*time.Millisecond)

	snap := c.Collect(context.Background())
	assert.False(t, snap.StoreUp)
	assert.Contains(t, snap.StoreError, "deadline exceeded")
}
