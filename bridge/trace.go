//go:build linetrace

package bridge

import "github.com/inference-sim/simbridge/kernel"

// TraceEnabled reports whether Trace is compiled into this build.
const TraceEnabled = true

// Trace asks the instance's module to render its current state into buf.
// The capacity is len(buf): bytes past it are dropped and truncated is set.
// n is the number of bytes written. No terminator is appended. Modules that
// do not implement kernel.LineTracer write nothing.
//
// inst must have been created in the current context generation.
func (b *Bridge) Trace(inst *Instance, buf []byte) (n int, truncated bool) {
	lt, ok := inst.model.(kernel.LineTracer)
	if !ok {
		return 0, false
	}
	w := &boundedWriter{buf: buf}
	lt.LineTrace(w)
	b.metrics.traced(w.truncated)
	return w.n, w.truncated
}

// boundedWriter fills a fixed buffer and silently drops the rest.
type boundedWriter struct {
	buf       []byte
	n         int
	truncated bool
}

// Write always reports success so formatting routines render the whole line
// even when only a prefix fits.
func (w *boundedWriter) Write(p []byte) (int, error) {
	c := copy(w.buf[w.n:], p)
	w.n += c
	if c < len(p) {
		w.truncated = true
	}
	return len(p), nil
}
