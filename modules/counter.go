package modules

import (
	"fmt"
	"io"

	"github.com/inference-sim/simbridge/kernel"
)

// Counter counts rising edges. When HasMax is set the count wraps back to
// zero after it reaches Max, so Max 0 holds the count at zero. Reset and
// clear force zero.
type Counter struct {
	kernel.Base
	Max    uint64
	HasMax bool

	clear *kernel.Signal
	count *kernel.Signal
}

// NewCounter constructs a free-running Counter under ctx.
func NewCounter(ctx *kernel.Context) *Counter {
	return newCounter(ctx, 0, false)
}

// NewCounterMax constructs a Counter under ctx that wraps after max.
func NewCounterMax(ctx *kernel.Context, max uint64) *Counter {
	return newCounter(ctx, max, true)
}

func newCounter(ctx *kernel.Context, max uint64, hasMax bool) *Counter {
	c := &Counter{Max: max, HasMax: hasMax}
	c.Init(ctx, "counter")
	c.clear = c.In("clear", 1)
	c.count = c.Out("count", 32)
	c.Posedge("tick", c.tick)
	return c
}

func (c *Counter) tick() {
	switch {
	case c.ResetPort().Read() != 0, c.clear.Read() != 0:
		c.count.Write(0)
	case c.HasMax && c.count.Read() == c.Max:
		c.count.Write(0)
	default:
		c.count.Write(c.count.Read() + 1)
	}
}

// LineTrace writes "clear count".
func (c *Counter) LineTrace(w io.Writer) {
	fmt.Fprintf(w, "%d %3d", c.clear.Read(), c.count.Read())
}
