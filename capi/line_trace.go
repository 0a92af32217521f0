//go:build linetrace

package main

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/inference-sim/simbridge/bridge"
)

// maxLineTrace caps the buffer size taken from the host. Line traces are a
// few dozen bytes; larger sizes are treated as this many.
const maxLineTrace = 1 << 16

// counter_line_trace writes a NUL-terminated snapshot of the instance into
// str, which holds n bytes. At most n-1 bytes of text are written; longer
// lines are truncated. Bytes after the terminator are left untouched.
//
//export counter_line_trace
func counter_line_trace(h C.uintptr_t, str *C.char, n C.size_t) {
	if str == nil || n == 0 {
		return
	}
	size := traceBufferSize(uint64(n))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(str)), size)
	inst := cgo.Handle(h).Value().(*bridge.Instance)
	written, _ := counterBridge.Trace(inst, buf[:size-1])
	buf[written] = 0
}

// traceBufferSize converts a host buffer size to a slice length, capped at
// maxLineTrace so sizes beyond the int range never wrap.
func traceBufferSize(n uint64) int {
	if n > maxLineTrace {
		return maxLineTrace
	}
	return int(n)
}
