// Command simbridge drives simulation modules through the bridge from the
// command line. See cmd/ for the subcommands.
package main

import (
	"github.com/inference-sim/simbridge/cmd"
)

func main() {
	cmd.Execute()
}
