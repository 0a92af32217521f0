package kernel

import "io"

// ObjectID identifies a module within a Context. IDs are never reused, even
// across Reset.
type ObjectID uint64

// Module is an engine-native module object. Concrete modules embed Base,
// which supplies every method.
type Module interface {
	Name() string
	ID() ObjectID
	Ports() []*Signal
	ResetPort() *Signal
	base() *Base
}

// LineTracer is implemented by modules that can render their current state
// as a single human-readable line.
type LineTracer interface {
	LineTrace(w io.Writer)
}

type process struct {
	name   string
	fn     func()
	queued bool
}

// Base carries the kernel bookkeeping of a module: its identity, its signals
// and its processes. Embed it and call Init before declaring anything.
type Base struct {
	ctx        *Context
	generation uint64
	id         ObjectID
	name       string

	reset    *Signal
	signals  []*Signal
	ports    []*Signal
	methods  []*process
	posedges []*process
}

// Init attaches the module to ctx under the given instance name and declares
// the implicit reset input.
func (b *Base) Init(ctx *Context, name string) {
	b.ctx = ctx
	b.generation = ctx.generation
	b.id = ctx.nextObjectID()
	b.name = name
	ctx.bases = append(ctx.bases, b)
	b.reset = newSignal(b, "reset", In, 1)
	b.signals = append(b.signals, b.reset)
}

func (b *Base) base() *Base { return b }

// Name returns the instance name given to Init.
func (b *Base) Name() string { return b.name }

// ID returns the kernel object ID assigned by Init.
func (b *Base) ID() ObjectID { return b.id }

// Context returns the context the module was last attached to.
func (b *Base) Context() *Context { return b.ctx }

// Attached reports whether the module belongs to its context's current generation.
func (b *Base) Attached() bool {
	return b.ctx != nil && b.generation == b.ctx.generation
}

// ResetPort returns the implicit 1-bit reset input every module carries.
// It is not part of Ports; sequential logic reads it to clear its state.
func (b *Base) ResetPort() *Signal { return b.reset }

// Ports returns the input and output signals in declaration order.
func (b *Base) Ports() []*Signal { return b.ports }

// In declares an input port.
func (b *Base) In(name string, width uint) *Signal {
	return b.declare(name, In, width)
}

// Out declares an output port.
func (b *Base) Out(name string, width uint) *Signal {
	return b.declare(name, Out, width)
}

// Wire declares internal state that is not part of the port interface.
func (b *Base) Wire(name string, width uint) *Signal {
	return b.declare(name, Wire, width)
}

func (b *Base) declare(name string, dir Direction, width uint) *Signal {
	s := newSignal(b, name, dir, width)
	b.signals = append(b.signals, s)
	if dir != Wire {
		b.ports = append(b.ports, s)
	}
	return s
}

// Method registers a combinational process. It runs once in the first delta
// after attachment and again whenever a signal in sensitivity changes.
func (b *Base) Method(name string, fn func(), sensitivity ...*Signal) {
	p := &process{name: name, fn: fn}
	for _, s := range sensitivity {
		s.sensitive = append(s.sensitive, p)
	}
	b.methods = append(b.methods, p)
	if b.Attached() {
		b.ctx.wake(p)
	}
}

// Posedge registers a process run on every rising edge of the context clock.
func (b *Base) Posedge(name string, fn func()) {
	p := &process{name: name, fn: fn}
	b.posedges = append(b.posedges, p)
	if b.Attached() {
		b.ctx.posedge = append(b.ctx.posedge, p)
		b.ctx.armClock()
	}
}
