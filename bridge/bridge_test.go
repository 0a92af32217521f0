package bridge_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/simbridge/bridge"
	"github.com/inference-sim/simbridge/kernel"
)

func TestCreate_RepeatedCallsReturnDistinctInstances(t *testing.T) {
	// GIVEN a bridge with default configuration
	b := newCounterBridge(t, bridge.Config{})

	// WHEN Create is called several times without Destroy
	seen := map[*bridge.Instance]bool{}
	ids := map[kernel.ObjectID]bool{}
	signals := map[*kernel.Signal]bool{}
	for i := 0; i < 5; i++ {
		inst, err := b.Create()
		require.NoError(t, err)
		seen[inst] = true
		ids[inst.ID()] = true
		for _, p := range inst.Ports {
			signals[p] = true
		}
	}

	// THEN no two instances share a record, a module, or port storage
	assert.Len(t, seen, 5)
	assert.Len(t, ids, 5)
	assert.Len(t, signals, 10)
	assert.Equal(t, 5, b.Context().Modules())
}

func TestCreate_InstancesAdvanceIndependentlyOfEachOther(t *testing.T) {
	b := newCounterBridge(t, bridge.Config{})
	first, err := b.Create()
	require.NoError(t, err)
	require.NoError(t, b.Step())

	second, err := b.Create()
	require.NoError(t, err)
	require.NoError(t, b.Step())

	// both share the context clock but keep separate state
	assert.Equal(t, uint64(2), count(t, first))
	assert.Equal(t, uint64(1), count(t, second))
}

func TestCreate_FactoryErrorIsReturnedUnmodified(t *testing.T) {
	boom := errors.New("out of simulation memory")
	b := bridge.New(kernel.NewContext(), "broken", func(*kernel.Context) (kernel.Module, error) {
		return nil, boom
	}, bridge.Config{})

	inst, err := b.Create()

	assert.Nil(t, inst)
	assert.True(t, err == boom, "error must not be wrapped, got %v", err)
}

func TestCreate_PortsMatchModuleDeclaration(t *testing.T) {
	b := newCounterBridge(t, bridge.Config{})
	inst, err := b.Create()
	require.NoError(t, err)

	require.Len(t, inst.Ports, 2)
	assert.Equal(t, "clear", inst.Ports[0].Name())
	assert.Equal(t, kernel.In, inst.Ports[0].Direction())
	assert.Equal(t, "count", inst.Ports[1].Name())
	assert.Equal(t, kernel.Out, inst.Ports[1].Direction())
	assert.Nil(t, inst.Port("missing"))
	assert.Equal(t, map[string]uint64{"clear": 0, "count": 0}, inst.Snapshot())
	assert.Equal(t, "counter", inst.Model().Name())
}

func TestStep_AdvancesExactlyOneQuantumPerCall(t *testing.T) {
	for _, n := range []int{0, 1, 3, 10} {
		// GIVEN a fresh context with one instance
		b := newCounterBridge(t, bridge.Config{})
		inst, err := b.Create()
		require.NoError(t, err)

		// WHEN Step is called n times
		for i := 0; i < n; i++ {
			require.NoError(t, b.Step())
		}

		// THEN time moved by exactly n quanta and the counter saw n edges
		assert.Equal(t, kernel.Time(n)*bridge.Quantum, b.Context().Now(), "n=%d", n)
		assert.Equal(t, uint64(n), count(t, inst), "n=%d", n)
	}
}

func TestStep_KernelErrorPropagates(t *testing.T) {
	b := bridge.New(kernel.NewContext(), "loop", newLoop, bridge.Config{})
	_, err := b.Create()
	require.NoError(t, err)

	err = b.Step()

	assert.ErrorIs(t, err, kernel.ErrDeltaLimit)
}

func TestDestroy_WithoutCreate_DoesNotPanic(t *testing.T) {
	b := newCounterBridge(t, bridge.Config{})
	assert.NotPanics(t, func() {
		b.Destroy()
		b.Destroy()
	})
	assert.Equal(t, uint64(2), b.Context().Generation())
}

func TestDestroy_ThenCreate_YieldsUsableInstance(t *testing.T) {
	// GIVEN an instance advanced by a few steps
	b := newCounterBridge(t, bridge.Config{})
	old, err := b.Create()
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Step())
	}

	// WHEN the context is destroyed and a new instance is created
	b.Destroy()
	fresh, err := b.Create()
	require.NoError(t, err)

	// THEN the new instance is distinct and starts from its reset state
	assert.NotSame(t, old, fresh)
	assert.NotEqual(t, old.ID(), fresh.ID())
	assert.Equal(t, uint64(1), fresh.Generation())
	assert.Equal(t, kernel.Time(0), b.Context().Now())

	// AND it advances normally
	require.NoError(t, b.Step())
	require.NoError(t, b.Step())
	assert.Equal(t, uint64(2), count(t, fresh))
}

func TestDestroy_DoesNotFreeOldInstances(t *testing.T) {
	b := newCounterBridge(t, bridge.Config{})
	old, err := b.Create()
	require.NoError(t, err)
	require.NoError(t, b.Step())

	b.Destroy()
	require.NoError(t, b.Step())

	// the record is still readable but no longer advanced
	assert.Equal(t, uint64(1), count(t, old))
	assert.Equal(t, 0, b.Context().Modules())
}

func TestReuse_ContextScope_CachesUntilDestroy(t *testing.T) {
	// GIVEN instance reuse scoped to the context lifetime
	b := newCounterBridge(t, bridge.Config{ReuseInstance: true})

	// WHEN Create is called twice
	a, err := b.Create()
	require.NoError(t, err)
	again, err := b.Create()
	require.NoError(t, err)

	// THEN the same instance is returned
	assert.Same(t, a, again)
	assert.Equal(t, 1, b.Context().Modules())

	// WHEN the context is destroyed
	b.Destroy()
	after, err := b.Create()
	require.NoError(t, err)

	// THEN a new instance is constructed
	assert.NotSame(t, a, after)
}

func TestReuse_ProcessScope_SurvivesDestroy(t *testing.T) {
	// GIVEN instance reuse scoped to the process
	b := newCounterBridge(t, bridge.Config{ReuseInstance: true, ReuseScope: bridge.ReuseScopeProcess})
	a, err := b.Create()
	require.NoError(t, err)
	require.NoError(t, b.Step())
	require.NoError(t, b.Step())

	// WHEN the context is destroyed and Create is called again
	b.Destroy()
	again, err := b.Create()
	require.NoError(t, err)

	// THEN the cached instance comes back, attached to the reset context
	assert.Same(t, a, again)
	assert.Equal(t, uint64(1), again.Generation())
	assert.Equal(t, 1, b.Context().Modules())

	// AND it resumes from its retained state
	require.NoError(t, b.Step())
	assert.Equal(t, uint64(3), count(t, again))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		scope bridge.ReuseScope
		valid bool
	}{
		{"", true},
		{bridge.ReuseScopeContext, true},
		{bridge.ReuseScopeProcess, true},
		{"forever", false},
	}
	for _, tc := range tests {
		err := bridge.Config{ReuseInstance: true, ReuseScope: tc.scope}.Validate()
		assert.Equal(t, tc.valid, err == nil, "scope %q: %v", tc.scope, err)
	}
}

func TestResetModel_ClearsStateAndKeepsInstance(t *testing.T) {
	// GIVEN a counter advanced by three quanta
	b := newCounterBridge(t, bridge.Config{})
	inst, err := b.Create()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, b.Step())
	}
	gen := b.Context().Generation()

	// WHEN the model is reset
	require.NoError(t, b.ResetModel(inst))

	// THEN reset was held for two quanta and the count cleared
	assert.Equal(t, 5*bridge.Quantum, b.Context().Now())
	assert.Equal(t, uint64(0), count(t, inst))
	assert.Equal(t, gen, b.Context().Generation(), "a model reset must not reset the context")

	// AND the release takes effect with the next step
	require.NoError(t, b.Step())
	assert.Equal(t, uint64(0), inst.Model().ResetPort().Read())
	assert.Equal(t, uint64(1), count(t, inst))
}

func TestResetModel_KernelErrorIsReturned(t *testing.T) {
	b := bridge.New(kernel.NewContext(), "loop", newLoop, bridge.Config{})
	inst, err := b.Create()
	require.NoError(t, err)

	err = b.ResetModel(inst)

	assert.ErrorIs(t, err, kernel.ErrDeltaLimit)
}
