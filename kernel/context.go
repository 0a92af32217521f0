package kernel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultMaxDeltas bounds the delta cycles run at a single time point.
const DefaultMaxDeltas = 1000

var (
	// ErrDeltaLimit is returned by Start when signals keep changing past the
	// delta limit at one time point, which almost always means a
	// combinational loop.
	ErrDeltaLimit = errors.New("kernel: delta cycle limit exceeded")

	// ErrNegativeDuration is returned by Start for d < 0.
	ErrNegativeDuration = errors.New("kernel: negative duration")
)

// Stats counts kernel activity over the life of a Context. Reset does not
// clear it.
type Stats struct {
	Starts int64 // Start calls that ran to completion
	Events int64 // timed events executed
	Deltas int64 // delta cycles executed
	Resets int64 // Reset calls
}

// Context is the simulation scheduler and state store.
//
// A process normally has exactly one, obtained from Default. Reset rewinds it
// in place; there is no way to tear it down. Object IDs keep counting across
// resets, and every reset bumps the generation and rotates the session ID, so
// a reset context is reusable but never indistinguishable from a fresh one.
//
// Thread-safety: NOT thread-safe. All methods must be called from the same goroutine.
type Context struct {
	session    uuid.UUID
	generation uint64
	now        Time
	period     Time
	maxDeltas  int

	events     eventQueue
	eventSeq   uint64
	objectSeq  uint64
	clockArmed bool

	bases    []*Base
	posedge  []*process
	runnable []*process
	pending  []*Signal

	stats Stats
}

var (
	defaultContext     *Context
	defaultContextOnce sync.Once
)

// Default returns the process-wide simulation context, creating it on first use.
func Default() *Context {
	defaultContextOnce.Do(func() {
		defaultContext = NewContext()
	})
	return defaultContext
}

// NewContext allocates a standalone context with a 1 ns clock.
// Hosts should prefer Default; separate contexts exist for tests and for
// embedding several independent kernels in one process.
func NewContext() *Context {
	return &Context{
		session:   uuid.New(),
		period:    Nanosecond,
		maxDeltas: DefaultMaxDeltas,
	}
}

// Now returns the current simulated time.
func (c *Context) Now() Time { return c.now }

// Generation returns the number of resets this context has been through.
func (c *Context) Generation() uint64 { return c.generation }

// Session identifies the current generation; it changes on every Reset.
func (c *Context) Session() uuid.UUID { return c.session }

// Stats returns a copy of the activity counters.
func (c *Context) Stats() Stats { return c.stats }

// Modules returns the number of modules attached in the current generation.
func (c *Context) Modules() int { return len(c.bases) }

// ClockPeriod returns the period of the context clock.
func (c *Context) ClockPeriod() Time { return c.period }

// SetClockPeriod changes the clock period. An armed clock picks the new period
// up from its next edge.
func (c *Context) SetClockPeriod(p Time) error {
	if p <= 0 {
		return fmt.Errorf("kernel: clock period must be positive, got %s", p)
	}
	c.period = p
	return nil
}

// SetMaxDeltas changes the per-time-point delta limit. Values < 1 restore the default.
func (c *Context) SetMaxDeltas(n int) {
	if n < 1 {
		n = DefaultMaxDeltas
	}
	c.maxDeltas = n
}

// Start advances simulated time by d. Every event with a timestamp in
// [Now(), Now()+d) is executed in heap order and the design is settled after
// each time point. On success Now() is exactly the old Now()+d.
//
// Start(0) only settles pending writes and newly attached methods.
// On error the clock is left at the time point that failed.
func (c *Context) Start(d Time) error {
	if d < 0 {
		return ErrNegativeDuration
	}
	end := c.now + d
	if err := c.settle(); err != nil {
		return err
	}
	for {
		at, ok := c.events.due(end)
		if !ok {
			break
		}
		c.now = at
		for ev := c.events.popAt(at); ev != nil; ev = c.events.popAt(at) {
			ev.Execute(c)
			c.stats.Events++
		}
		if err := c.settle(); err != nil {
			return err
		}
	}
	c.now = end
	c.stats.Starts++
	logrus.Debugf("[%s] start(%s) done, %d pending events", c.now, d, c.events.Len())
	return nil
}

// Reset rewinds the context in place: pending events, attached modules and
// queued work are dropped and the clock returns to zero. Modules created
// before the reset are detached; writes to their signals are ignored until
// they are re-attached with Attach.
func (c *Context) Reset() {
	for _, s := range c.pending {
		s.pending = false
	}
	for _, p := range c.runnable {
		p.queued = false
	}
	c.generation++
	c.session = uuid.New()
	c.now = 0
	c.events = nil
	c.clockArmed = false
	c.bases = nil
	c.posedge = nil
	c.runnable = nil
	c.pending = nil
	c.stats.Resets++
	logrus.Debugf("simulation context reset: generation=%d session=%s", c.generation, c.session)
}

// Attach registers m with the current generation. Modules are attached by
// Base.Init when constructed; Attach is only needed to bring a module created
// before a Reset back into the context. Signal values are kept, pending
// writes are discarded and combinational methods are re-run.
func (c *Context) Attach(m Module) {
	b := m.base()
	if b.ctx == c && b.generation == c.generation {
		return
	}
	b.ctx = c
	b.generation = c.generation
	c.bases = append(c.bases, b)
	for _, s := range b.signals {
		s.pending = false
		s.next = s.value
	}
	for _, p := range b.methods {
		p.queued = false
		c.wake(p)
	}
	for _, p := range b.posedges {
		p.queued = false
		c.posedge = append(c.posedge, p)
	}
	if len(b.posedges) > 0 {
		c.armClock()
	}
	logrus.Debugf("re-attached %s#%d to generation %d", b.name, b.id, c.generation)
}

// settle runs delta cycles at the current time point until no process is
// runnable and no write is pending.
func (c *Context) settle() error {
	deltas := 0
	for len(c.runnable) > 0 || len(c.pending) > 0 {
		if deltas >= c.maxDeltas {
			c.stats.Deltas += int64(deltas)
			return fmt.Errorf("%w: %d deltas at %s", ErrDeltaLimit, deltas, c.now)
		}

		// evaluate
		run := c.runnable
		c.runnable = nil
		for _, p := range run {
			p.queued = false
			p.fn()
		}

		// update
		pending := c.pending
		c.pending = nil
		for _, s := range pending {
			s.pending = false
			if s.value == s.next {
				continue
			}
			s.value = s.next
			for _, p := range s.sensitive {
				c.wake(p)
			}
		}
		deltas++
	}
	c.stats.Deltas += int64(deltas)
	return nil
}

func (c *Context) wake(p *process) {
	if p.queued {
		return
	}
	p.queued = true
	c.runnable = append(c.runnable, p)
}

// armClock schedules the first clock edge at the first period boundary at or
// after the current time.
func (c *Context) armClock() {
	if c.clockArmed {
		return
	}
	c.clockArmed = true
	first := (c.now + c.period - 1) / c.period * c.period
	c.schedule(&ClockEdgeEvent{time: first, id: c.nextEventID()})
}

func (c *Context) schedule(ev Event) {
	c.events.schedule(ev)
}

func (c *Context) nextEventID() uint64 {
	c.eventSeq++
	return c.eventSeq
}

func (c *Context) nextObjectID() ObjectID {
	c.objectSeq++
	return ObjectID(c.objectSeq)
}
