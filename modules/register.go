package modules

import (
	"fmt"
	"io"

	"github.com/inference-sim/simbridge/kernel"
)

// Register latches inp into out on every rising edge, or clears out while
// reset is high.
type Register struct {
	kernel.Base
	inp *kernel.Signal
	out *kernel.Signal
}

// NewRegister constructs a Register of the given width under ctx.
func NewRegister(ctx *kernel.Context, bits uint) *Register {
	r := &Register{}
	r.Init(ctx, "register")
	r.inp = r.In("inp", bits)
	r.out = r.Out("out", bits)
	r.Posedge("tick", r.tick)
	return r
}

func (r *Register) tick() {
	if r.ResetPort().Read() != 0 {
		r.out.Write(0)
		return
	}
	r.out.Write(r.inp.Read())
}

func (r *Register) LineTrace(w io.Writer) {
	fmt.Fprintf(w, "%d > %d", r.inp.Read(), r.out.Read())
}

// RegIncr is a 32-bit register followed by a combinational incrementer.
// Reset clears the register, so out reads 1 while reset is held.
type RegIncr struct {
	kernel.Base
	inp    *kernel.Signal
	regOut *kernel.Signal
	out    *kernel.Signal
}

// NewRegIncr constructs a RegIncr under ctx.
func NewRegIncr(ctx *kernel.Context) *RegIncr {
	r := &RegIncr{}
	r.Init(ctx, "regincr")
	r.inp = r.In("inp", 32)
	r.out = r.Out("out", 32)
	r.regOut = r.Wire("reg_out", 32)
	r.Posedge("reg", func() {
		if r.ResetPort().Read() != 0 {
			r.regOut.Write(0)
			return
		}
		r.regOut.Write(r.inp.Read())
	})
	r.Method("incr", func() { r.out.Write(r.regOut.Read() + 1) }, r.regOut)
	return r
}

// LineTrace writes "inp (reg) out".
func (r *RegIncr) LineTrace(w io.Writer) {
	fmt.Fprintf(w, "%d (%d) %d", r.inp.Read(), r.regOut.Read(), r.out.Read())
}
