// Package bridge is the control boundary between a host and the simulation
// kernel.
//
// A Bridge exposes exactly four operations over one kernel.Context:
//
//   - Create constructs a module and returns an Instance owned by the caller
//   - Step advances the context by one Quantum
//   - Trace renders an instance's state into a caller buffer (linetrace builds only)
//   - Destroy resets the context in place
//
// The context is shared, mutable and cannot be torn down. Destroy is a
// best-effort reset: it does not free instances, and every instance created
// before it must be treated as invalid afterwards. Nothing here locks; the
// host serializes all calls from a single goroutine.
//
// Trace is compiled in only with the linetrace build tag:
//
//	go build -tags linetrace ./...
//
// Without the tag the method does not exist; TraceEnabled reports which
// variant was built.
package bridge
