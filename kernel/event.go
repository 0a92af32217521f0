package kernel

import "github.com/sirupsen/logrus"

// Event defines the interface for all timed kernel events.
// Each event carries a Timestamp, a kernel-assigned EventID used to break
// ties deterministically, and an Execute method that mutates context state.
type Event interface {
	Timestamp() Time
	EventID() uint64
	Execute(*Context)
}

// ClockEdgeEvent is a rising edge of the context clock.
type ClockEdgeEvent struct {
	time Time
	id   uint64
}

// Timestamp returns the scheduled time of the edge.
func (e *ClockEdgeEvent) Timestamp() Time {
	return e.time
}

// EventID returns the tie-breaking sequence number.
func (e *ClockEdgeEvent) EventID() uint64 {
	return e.id
}

// Execute wakes every posedge process and schedules the following edge one
// clock period later.
func (e *ClockEdgeEvent) Execute(ctx *Context) {
	logrus.Tracef("<< ClockEdge at %s", e.time)
	for _, p := range ctx.posedge {
		ctx.wake(p)
	}
	ctx.schedule(&ClockEdgeEvent{time: e.time + ctx.period, id: ctx.nextEventID()})
}
