package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// showCmd prints a transcript written by run --transcript
var showCmd = &cobra.Command{
	Use:   "show <transcript.yaml>",
	Short: "Print the records of a saved run transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := LoadTranscript(args[0])
		if err != nil {
			return err
		}
		return showTranscript(cmd.OutOrStdout(), tr)
	},
}

// showTranscript writes a header and one line per record. Records without a
// line trace fall back to their ports sorted by name.
func showTranscript(w io.Writer, tr *Transcript) error {
	if _, err := fmt.Fprintf(w, "module=%s seed=%d random_inputs=%t reuse_instance=%t records=%d\n",
		tr.Module, tr.Seed, tr.RandomInputs, tr.ReuseInstance, len(tr.Records)); err != nil {
		return err
	}
	for _, r := range tr.Records {
		state := r.Trace
		if state == "" {
			state = sortedPorts(r.Ports)
		}
		if _, err := fmt.Fprintf(w, "%3d t=%dns gen=%d #%d: %s\n",
			r.Step, r.TimeNs, r.Generation, r.Instance, state); err != nil {
			return err
		}
	}
	return nil
}

func sortedPorts(ports map[string]uint64) string {
	names := make([]string, 0, len(ports))
	for name := range ports {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, ports[name])
	}
	return strings.Join(parts, " ")
}
