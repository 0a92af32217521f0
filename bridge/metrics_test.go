package bridge_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/simbridge/bridge"
)

func TestMetrics_CountLifecycleOperations(t *testing.T) {
	// GIVEN a bridge with metrics and context-scoped reuse
	reg := prometheus.NewRegistry()
	m := bridge.NewMetrics(reg, "counter")
	b := newCounterBridge(t, bridge.Config{ReuseInstance: true}, bridge.WithMetrics(m))

	// WHEN a short session runs
	_, err := b.Create()
	require.NoError(t, err)
	_, err = b.Create()
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Step())
	}

	// THEN every operation is counted and the gauge tracks simulated time
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Creates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reuses))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Steps))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.SimTime))

	// WHEN the context is destroyed
	b.Destroy()

	// THEN the reset is counted and simulated time returns to zero
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Destroys))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SimTime))
	assert.Equal(t, 7, testutil.CollectAndCount(reg))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	b := newCounterBridge(t, bridge.Config{})
	assert.NotPanics(t, func() {
		_, _ = b.Create()
		_ = b.Step()
		b.Destroy()
	})
}
