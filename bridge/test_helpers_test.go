package bridge_test

import (
	"testing"

	"github.com/inference-sim/simbridge/bridge"
	"github.com/inference-sim/simbridge/kernel"
	"github.com/inference-sim/simbridge/modules"
)

// newCounterBridge returns a bridge over a free-running counter on a private context.
func newCounterBridge(t *testing.T, cfg bridge.Config, opts ...bridge.Option) *bridge.Bridge {
	t.Helper()
	factory, err := modules.Lookup("counter")
	if err != nil {
		t.Fatalf("lookup counter: %v", err)
	}
	return bridge.New(kernel.NewContext(), "counter", factory, cfg, opts...)
}

func count(t *testing.T, inst *bridge.Instance) uint64 {
	t.Helper()
	p := inst.Port("count")
	if p == nil {
		t.Fatal("counter instance has no count port")
	}
	return p.Read()
}

// silent has ports but no line tracer.
type silent struct {
	kernel.Base
}

func newSilent(ctx *kernel.Context) (kernel.Module, error) {
	m := &silent{}
	m.Init(ctx, "silent")
	m.Out("q", 1)
	return m, nil
}

// loop is a combinational loop that never settles.
type loop struct {
	kernel.Base
}

func newLoop(ctx *kernel.Context) (kernel.Module, error) {
	m := &loop{}
	m.Init(ctx, "loop")
	q := m.Out("q", 1)
	m.Method("invert", func() { q.Write(^q.Read()) }, q)
	return m, nil
}
