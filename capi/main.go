// Command capi builds the C ABI of the counter bridge as a shared library:
//
//	go build -buildmode=c-shared -o libcounter.so ./capi
//	go build -buildmode=c-shared -tags linetrace -o libcounter.so ./capi
//
// The library exports counter_create, counter_destroy and counter_sim, plus
// counter_line_trace when built with the linetrace tag. Nothing else is
// exported. Every call must come from the same host thread.
//
// Instances are returned as opaque runtime/cgo handles. The host owns them
// and there is no export to release one; each handle stays valid for the life
// of the process, but only refers to a live module until the next
// counter_destroy.
package main

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"runtime/cgo"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/simbridge/bridge"
	"github.com/inference-sim/simbridge/kernel"
	"github.com/inference-sim/simbridge/modules"
)

const moduleName = "counter"

var counterBridge = newBridge()

func newBridge() *bridge.Bridge {
	factory, err := modules.Lookup(moduleName)
	if err != nil {
		logrus.Fatalf("capi: %v", err)
	}
	return bridge.New(kernel.Default(), moduleName, factory, bridge.Config{})
}

//export counter_create
func counter_create() C.uintptr_t {
	inst, err := counterBridge.Create()
	if err != nil {
		logrus.Fatalf("%s_create: %v", moduleName, err)
	}
	return C.uintptr_t(cgo.NewHandle(inst))
}

//export counter_destroy
func counter_destroy() {
	counterBridge.Destroy()
}

//export counter_sim
func counter_sim() {
	if err := counterBridge.Step(); err != nil {
		logrus.Fatalf("%s_sim: %v", moduleName, err)
	}
}

// main is required by -buildmode=c-shared and is never called by the host.
func main() {}
