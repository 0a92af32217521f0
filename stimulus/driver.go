package stimulus

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/simbridge/bridge"
	"github.com/inference-sim/simbridge/kernel"
)

// Driver writes a fresh random value to every input port of an instance each
// time Apply is called. Values are masked to the port width.
type Driver struct {
	rng    *PartitionedRNG
	inputs []*kernel.Signal
}

// NewDriver returns a Driver for the input ports of inst, skipping the named
// ports so the host can hold them itself.
func NewDriver(seed int64, inst *bridge.Instance, skip ...string) *Driver {
	return &Driver{
		rng:    NewPartitionedRNG(seed),
		inputs: inputPorts(inst, skip),
	}
}

// Apply stages one value per driven port and returns what was written.
// The writes take effect at the next Step.
func (d *Driver) Apply() map[string]uint64 {
	applied := make(map[string]uint64, len(d.inputs))
	for _, p := range d.inputs {
		v := d.rng.ForPort(p.Name()).Uint64()
		if w := p.Width(); w < 64 {
			v &= 1<<w - 1
		}
		p.Write(v)
		applied[p.Name()] = v
	}
	logrus.Debugf("stimulus: %v", applied)
	return applied
}

// Rebind points the driver at a new instance's inputs while keeping the
// random streams, so a recreated instance continues the same sequence.
func (d *Driver) Rebind(inst *bridge.Instance, skip ...string) {
	d.inputs = inputPorts(inst, skip)
}

func inputPorts(inst *bridge.Instance, skip []string) []*kernel.Signal {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	var inputs []*kernel.Signal
	for _, p := range inst.Ports {
		if p.Direction() == kernel.In && !skipped[p.Name()] {
			inputs = append(inputs, p)
		}
	}
	return inputs
}
