//go:build linetrace

package cmd

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/simbridge/bridge"
)

// lineTrace renders inst into a buffer of the given capacity. ok is false
// when the module wrote nothing.
func lineTrace(b *bridge.Bridge, inst *bridge.Instance, capacity int) (line string, ok bool) {
	buf := make([]byte, capacity)
	n, truncated := b.Trace(inst, buf)
	if truncated {
		logrus.Warnf("%s: line trace truncated to %d bytes", b.Name(), capacity)
	}
	return string(buf[:n]), n > 0
}
