package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inference-sim/simbridge/kernel"
	"github.com/inference-sim/simbridge/modules"
)

// modulesCmd lists the registered modules and their ports
var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the modules the bridge can create",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listModules(cmd.OutOrStdout())
	},
}

// listModules builds every registered module on a scratch context so the
// process-wide one is left untouched.
func listModules(w io.Writer) error {
	scratch := kernel.NewContext()
	for _, name := range modules.Names() {
		factory, err := modules.Lookup(name)
		if err != nil {
			return err
		}
		m, err := factory(scratch)
		if err != nil {
			return fmt.Errorf("build %s: %w", name, err)
		}
		ports := make([]string, 0, len(m.Ports()))
		for _, p := range m.Ports() {
			ports = append(ports, fmt.Sprintf("%s:%s/%d", p.Name(), p.Direction(), p.Width()))
		}
		_, isTracer := m.(kernel.LineTracer)
		fmt.Fprintf(w, "%-10s trace=%-5t %s\n", name, isTracer, strings.Join(ports, " "))
	}
	return nil
}
