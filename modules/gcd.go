package modules

import (
	"fmt"
	"io"

	"github.com/inference-sim/simbridge/kernel"
)

// GCD controller states.
const (
	gcdIdle uint64 = iota
	gcdActive
	gcdDone
)

var gcdStateNames = map[uint64]string{
	gcdIdle:   "Idle",
	gcdActive: "Actv",
	gcdDone:   "Done",
}

// GCD computes the greatest common divisor of in_A and in_B by repeated
// subtraction. Raising in_val in Idle loads the operands; out_val is high for
// the single cycle spent in Done. Reset returns the unit to Idle with cleared
// registers.
type GCD struct {
	kernel.Base

	inA, inB, inVal *kernel.Signal
	out, outVal     *kernel.Signal

	state, aReg, bReg  *kernel.Signal
	isALtB, isBNotZero *kernel.Signal
}

// NewGCD constructs a GCD unit under ctx.
func NewGCD(ctx *kernel.Context) *GCD {
	g := &GCD{}
	g.Init(ctx, "gcd")
	g.inA = g.In("in_A", 32)
	g.inB = g.In("in_B", 32)
	g.inVal = g.In("in_val", 1)
	g.out = g.Out("out", 32)
	g.outVal = g.Out("out_val", 1)

	g.state = g.Wire("state", 2)
	g.aReg = g.Wire("A_reg", 32)
	g.bReg = g.Wire("B_reg", 32)
	g.isALtB = g.Wire("is_A_lt_B", 1)
	g.isBNotZero = g.Wire("is_B_neq_0", 1)

	g.Posedge("tick", g.tick)
	g.Method("logic", g.logic, g.aReg, g.bReg, g.state)
	return g
}

func (g *GCD) tick() {
	if g.ResetPort().Read() != 0 {
		g.state.Write(gcdIdle)
		g.aReg.Write(0)
		g.bReg.Write(0)
		return
	}
	state := g.state.Read()
	aLtB := g.isALtB.Read() != 0
	bNotZero := g.isBNotZero.Read() != 0

	switch state {
	case gcdIdle:
		if g.inVal.Read() != 0 {
			g.state.Write(gcdActive)
		}
	case gcdActive:
		if !aLtB && !bNotZero {
			g.state.Write(gcdDone)
		}
	case gcdDone:
		g.state.Write(gcdIdle)
	}

	switch {
	case state == gcdIdle:
		g.aReg.Write(g.inA.Read())
		g.bReg.Write(g.inB.Read())
	case state == gcdActive && aLtB:
		// swap
		g.aReg.Write(g.bReg.Read())
		g.bReg.Write(g.aReg.Read())
	case state == gcdActive && bNotZero:
		g.aReg.Write(g.aReg.Read() - g.bReg.Read())
	}
}

func (g *GCD) logic() {
	g.isALtB.Write(boolBit(g.aReg.Read() < g.bReg.Read()))
	g.isBNotZero.Write(boolBit(g.bReg.Read() != 0))
	g.outVal.Write(boolBit(g.state.Read() == gcdDone))
	g.out.Write(g.aReg.Read())
}

// LineTrace writes the operands, the datapath registers and state, the two
// comparator outputs, and the result.
func (g *GCD) LineTrace(w io.Writer) {
	fmt.Fprintf(w, "%d %d %d ||%2d %2d %s A<B:%d B!=0:%d|| %d %d",
		g.inA.Read(), g.inB.Read(), g.inVal.Read(),
		g.aReg.Read(), g.bReg.Read(), gcdStateNames[g.state.Read()],
		g.isALtB.Read(), g.isBNotZero.Read(),
		g.out.Read(), g.outVal.Read())
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
