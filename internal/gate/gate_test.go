package gate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseDelay = 20 * time.Millisecond

func newTestGate() *Gate {
	return New(Config{BaseDelay: testBaseDelay})
}

func waitForWaiting(t *testing.T, g *Gate, want int64) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for g.Waiting() < want {
		if time.Now().After(deadline) {
			t.Fatalf("gate never reached %d waiters", want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestEnterWaitsAtLeastBaseDelay(t *testing.T) {
	g := newTestGate()

	start := time.Now()
	err := g.Enter(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), testBaseDelay)
}

func TestEnterDecrementsCounter(t *testing.T) {
	g := newTestGate()

	require.NoError(t, g.Enter(context.Background()))
	assert.Equal(t, int64(0), g.Waiting())
}

func TestSecondEntrantPaysDoubleDelay(t *testing.T) {
	g := newTestGate()

	done := make(chan struct{})
	go func() {
		_ = g.Enter(context.Background())
		close(done)
	}()

	waitForWaiting(t, g, 1)

	// This caller increments the counter to 2, so its minimum wait is
	// two base-delay units.
	start := time.Now()
	require.NoError(t, g.Enter(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 2*testBaseDelay)

	<-done
	assert.Equal(t, int64(0), g.Waiting())
}

func TestWaitingReflectsConcurrentEntrants(t *testing.T) {
	g := New(Config{BaseDelay: 50 * time.Millisecond})

	for i := 0; i < 3; i++ {
		go func() { _ = g.Enter(context.Background()) }()
	}

	waitForWaiting(t, g, 3)
	assert.Equal(t, int64(3), g.Waiting())
}

func TestEnterHonoursContextCancellation(t *testing.T) {
	g := New(Config{BaseDelay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Enter(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	// The abandoned wait must not leak a slot
	assert.Equal(t, int64(0), g.Waiting())
}

func TestZeroConfigFallsBackToDefault(t *testing.T) {
	g := New(Config{})
	assert.Equal(t, DefaultBaseDelay, g.baseDelay)
}
