package bridge

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/simbridge/kernel"
)

// Quantum is the simulated time advanced by one Step.
const Quantum = 1 * kernel.Nanosecond

// ResetCycles is how many steps ResetModel holds the reset input high.
const ResetCycles = 2

// Factory constructs one engine-native module under ctx. Module shape is
// fixed by the factory; Create takes no arguments.
type Factory func(ctx *kernel.Context) (kernel.Module, error)

// Option configures optional Bridge collaborators.
type Option func(*Bridge)

// WithMetrics records bridge activity in m.
func WithMetrics(m *Metrics) Option {
	return func(b *Bridge) { b.metrics = m }
}

// Bridge drives one module type against a simulation context.
//
// Thread-safety: NOT thread-safe. The context is process-wide state; all
// calls into every Bridge sharing it must come from one goroutine.
type Bridge struct {
	ctx     *kernel.Context
	name    string
	factory Factory
	cfg     Config
	metrics *Metrics

	cached *Instance
}

// New returns a Bridge constructing modules with factory under ctx. The
// bridge never allocates a context of its own; pass kernel.Default() for the
// process-wide one. cfg is assumed valid (see Config.Validate).
func New(ctx *kernel.Context, name string, factory Factory, cfg Config, opts ...Option) *Bridge {
	b := &Bridge{
		ctx:     ctx,
		name:    name,
		factory: factory,
		cfg:     cfg,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the module name the bridge was created for.
func (b *Bridge) Name() string { return b.name }

// Context returns the simulation context the bridge drives.
func (b *Bridge) Context() *kernel.Context { return b.ctx }

// Create constructs a module under the current context and returns a new
// Instance owned by the caller. Every call constructs a new module unless
// instance reuse is configured. A factory error is returned as is.
func (b *Bridge) Create() (*Instance, error) {
	if inst := b.reusable(); inst != nil {
		logrus.Debugf("%s: reusing instance #%d", b.name, inst.ID())
		b.metrics.reused()
		return inst, nil
	}

	m, err := b.factory(b.ctx)
	if err != nil {
		return nil, err
	}
	inst := newInstance(m, b.ctx.Generation())
	if b.cfg.ReuseInstance {
		b.cached = inst
	}
	logrus.Infof("%s: created instance #%d (generation %d, %d ports)", b.name, inst.ID(), inst.generation, len(inst.Ports))
	b.metrics.created()
	return inst, nil
}

// reusable returns the cached instance if the reuse policy allows handing it
// out again, re-attaching it to a reset context for process scope.
func (b *Bridge) reusable() *Instance {
	if !b.cfg.ReuseInstance || b.cached == nil {
		return nil
	}
	gen := b.ctx.Generation()
	if b.cached.generation == gen {
		return b.cached
	}
	if b.cfg.scope() != ReuseScopeProcess {
		b.cached = nil
		return nil
	}
	b.ctx.Attach(b.cached.model)
	b.cached.generation = gen
	return b.cached
}

// Destroy resets the simulation context in place. It does not free any
// Instance; all instances created so far become invalid. Calling it with no
// instances, or several times in a row, is safe.
func (b *Bridge) Destroy() {
	b.ctx.Reset()
	logrus.Infof("%s: simulation context reset (generation %d)", b.name, b.ctx.Generation())
	b.metrics.destroyed(b.ctx.Now())
}

// Step advances the context by one Quantum, running every event due in that
// window. Kernel errors are returned as is.
func (b *Bridge) Step() error {
	err := b.ctx.Start(Quantum)
	logrus.Debugf("%s: step -> %s", b.name, b.ctx.Now())
	b.metrics.stepped(b.ctx.Now())
	return err
}

// ResetModel puts inst through its reset sequence: the implicit reset input
// is raised, the context is stepped ResetCycles times, and reset is lowered
// again. The release is staged and takes effect at the next Step. This is a
// model-level reset; unlike Destroy it keeps the context and the instance.
func (b *Bridge) ResetModel(inst *Instance) error {
	r := inst.model.ResetPort()
	r.Write(1)
	for i := 0; i < ResetCycles; i++ {
		if err := b.Step(); err != nil {
			r.Write(0)
			return err
		}
	}
	r.Write(0)
	logrus.Debugf("%s: instance #%d reset for %d cycles", b.name, inst.ID(), ResetCycles)
	return nil
}
