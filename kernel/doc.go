// Package kernel provides the discrete-event simulation kernel driven by the bridge.
//
// # Reading Guide
//
//   - context.go: the process-wide simulation Context, Start (advance time) and Reset
//   - event.go, event_queue.go: timed events and their deterministic ordering
//   - signal.go: signals with two-phase (evaluate/update) semantics
//   - module.go: the Base embedded by every module, ports and processes
//
// # Scheduling Model
//
// Time advances in picoseconds. At each time point the kernel runs delta
// cycles: every runnable process is evaluated, then all pending signal writes
// are committed. A committed change wakes the combinational methods sensitive
// to that signal for the next delta. Clock edges are ordinary timed events that
// wake posedge processes.
//
// The Context is deliberately not thread-safe. All calls must come from a
// single goroutine; Default() is the only synchronized entry point.
package kernel
