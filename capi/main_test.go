//go:build cgo

package main

import (
	"os"
	"runtime/cgo"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/simbridge/bridge"
	"github.com/inference-sim/simbridge/kernel"
)

func TestMain(m *testing.M) {
	// Suppress bridge info logs during tests
	// Set DEBUG_TESTS=1 to see full logs: DEBUG_TESTS=1 go test ./capi/... -v
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func TestExports_CreateSimDestroy(t *testing.T) {
	// GIVEN two handles created in the same context lifetime
	h1 := cgo.Handle(counter_create())
	h2 := cgo.Handle(counter_create())
	defer h1.Delete()
	defer h2.Delete()

	first, ok := h1.Value().(*bridge.Instance)
	require.True(t, ok)
	second := h2.Value().(*bridge.Instance)
	assert.NotSame(t, first, second)

	// WHEN the context is advanced three times
	start := kernel.Default().Now()
	for i := 0; i < 3; i++ {
		counter_sim()
	}

	// THEN both instances saw three edges and time moved three quanta
	assert.Equal(t, start+3*bridge.Quantum, kernel.Default().Now())
	assert.Equal(t, uint64(3), first.Port("count").Read())
	assert.Equal(t, uint64(3), second.Port("count").Read())

	// WHEN the context is destroyed
	counter_destroy()
	counter_destroy()

	// THEN a new instance can be created and used
	h3 := cgo.Handle(counter_create())
	defer h3.Delete()
	counter_sim()
	assert.Equal(t, uint64(1), h3.Value().(*bridge.Instance).Port("count").Read())
}
