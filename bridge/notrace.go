//go:build !linetrace

package bridge

// TraceEnabled reports whether Trace is compiled into this build.
const TraceEnabled = false
