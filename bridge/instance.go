package bridge

import "github.com/inference-sim/simbridge/kernel"

// noCopy lets go vet's copylocks check flag copies of Instance.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Instance is the bridge-visible state of one module: its port storage and
// the engine-native object behind it.
//
// An Instance exclusively owns its module; the bridge never hands the same
// module to two instances. Instances must not be copied.
type Instance struct {
	noCopy noCopy

	// Ports holds the module's input and output signals in declaration order.
	Ports []*kernel.Signal

	model      kernel.Module
	generation uint64
}

func newInstance(m kernel.Module, generation uint64) *Instance {
	return &Instance{
		Ports:      m.Ports(),
		model:      m,
		generation: generation,
	}
}

// Port returns the port with the given name, or nil.
func (i *Instance) Port(name string) *kernel.Signal {
	for _, p := range i.Ports {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Model returns the engine-native module.
func (i *Instance) Model() kernel.Module { return i.model }

// ID returns the kernel object ID of the module.
func (i *Instance) ID() kernel.ObjectID { return i.model.ID() }

// Generation returns the context generation the instance is valid in.
func (i *Instance) Generation() uint64 { return i.generation }

// Snapshot returns the committed value of every port.
func (i *Instance) Snapshot() map[string]uint64 {
	snap := make(map[string]uint64, len(i.Ports))
	for _, p := range i.Ports {
		snap[p.Name()] = p.Read()
	}
	return snap
}
