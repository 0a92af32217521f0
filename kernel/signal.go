package kernel

// Direction is the role of a signal within its module.
type Direction int

const (
	Wire Direction = iota // internal state, not part of the port interface
	In
	Out
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return "wire"
	}
}

// Signal is a fixed-width value owned by one module.
//
// Reads observe the committed value. Writes are staged and take effect in the
// update phase of the current delta cycle, so every process evaluated in the
// same delta sees the same values.
type Signal struct {
	name  string
	dir   Direction
	width uint
	mask  uint64

	value   uint64
	next    uint64
	pending bool

	owner     *Base
	sensitive []*process
}

func newSignal(owner *Base, name string, dir Direction, width uint) *Signal {
	if width == 0 || width > 64 {
		panic("kernel: signal width must be in [1, 64]")
	}
	mask := ^uint64(0)
	if width < 64 {
		mask = 1<<width - 1
	}
	return &Signal{name: name, dir: dir, width: width, mask: mask, owner: owner}
}

// Name returns the signal name as declared by its module.
func (s *Signal) Name() string { return s.name }

// Direction returns whether the signal is an input, output or internal wire.
func (s *Signal) Direction() Direction { return s.dir }

// Width returns the bit width.
func (s *Signal) Width() uint { return s.width }

// Read returns the committed value.
func (s *Signal) Read() uint64 { return s.value }

// Write stages v, truncated to the signal width, for the next update phase.
// The last write in a delta wins. Writes to a signal whose module is detached
// from its context are dropped.
func (s *Signal) Write(v uint64) {
	s.next = v & s.mask
	if s.pending || !s.owner.Attached() {
		return
	}
	s.pending = true
	s.owner.ctx.pending = append(s.owner.ctx.pending, s)
}
