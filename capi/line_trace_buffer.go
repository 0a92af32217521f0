//go:build linetrace

package main

/*
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
*/
import "C"

import "unsafe"

// traceSlack is how many bytes traceIntoCBuffer allocates past n, so callers
// can check that nothing is written beyond the size they passed.
const traceSlack = 8

// traceIntoCBuffer calls counter_line_trace the way a C host does: on a
// malloc'd buffer of n+traceSlack bytes pre-filled with fill, passing n as the
// size. It returns a copy of the whole allocation.
func traceIntoCBuffer(h uintptr, n int, fill byte) []byte {
	total := n + traceSlack
	p := C.malloc(C.size_t(total))
	defer C.free(p)
	C.memset(p, C.int(fill), C.size_t(total))
	counter_line_trace(C.uintptr_t(h), (*C.char)(p), C.size_t(n))
	return C.GoBytes(unsafe.Pointer(p), C.int(total))
}
