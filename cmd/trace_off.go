//go:build !linetrace

package cmd

import "github.com/inference-sim/simbridge/bridge"

// lineTrace is unavailable without the linetrace build tag.
func lineTrace(*bridge.Bridge, *bridge.Instance, int) (string, bool) {
	return "", false
}
