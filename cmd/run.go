package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/simbridge/bridge"
	"github.com/inference-sim/simbridge/kernel"
)

// runCmd steps one module instance and prints a line per step
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Create a module instance and step it, printing its state each quantum",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cmd.Flags())
		if err != nil {
			return err
		}
		return runSession(kernel.Default(), cfg, cmd.OutOrStdout())
	},
}

// runSession runs cfg against ctx, then writes the transcript and metrics it
// asks for. The transcript is written even when a step fails.
func runSession(ctx *kernel.Context, cfg RunConfig, out io.Writer) error {
	reg := prometheus.NewRegistry()
	s, err := newSession(ctx, cfg, reg, out)
	if err != nil {
		return err
	}
	runErr := s.run()

	if cfg.Transcript != "" {
		if err := s.transcript.WriteFile(cfg.Transcript); err != nil {
			return err
		}
		logrus.Infof("transcript written to %s", cfg.Transcript)
	}
	if runErr != nil {
		return runErr
	}
	if cfg.Metrics {
		return writeMetrics(out, reg)
	}
	return nil
}

// writeMetrics renders every gathered family in the text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// addSessionFlags registers the flags shared by run and interactive.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String("module", "counter", "Module to simulate (see `simbridge modules`)")
	cmd.Flags().Int("trace-capacity", 128, "Line trace buffer capacity in bytes")
	cmd.Flags().StringToString("set", map[string]string{}, "Hold input ports at fixed values, e.g. --set in_A=15,in_B=5")
	cmd.Flags().Bool("reset", false, "Hold the model reset input high for two cycles after every create")
	cmd.Flags().Bool("random-inputs", false, "Drive every input port not held by --set/--hold with seeded random values")
	cmd.Flags().StringSlice("hold", nil, "Input ports the random driver must leave alone")
	cmd.Flags().Int64("seed", 42, "Seed for random inputs")
	cmd.Flags().Bool("reuse-instance", false, "Hand back a cached instance from Create instead of constructing a new module")
	cmd.Flags().String("reuse-scope", string(bridge.ReuseScopeContext), "How long a cached instance lives (context, process)")
}

// addRunFlags registers the batch-only flags of run.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("steps", 10, "Number of quanta to step")
	cmd.Flags().Int("destroy-every", 0, "Destroy the context and create a new instance every N steps (0 = never)")
	cmd.Flags().String("transcript", "", "Write a YAML transcript of the run to this path")
	cmd.Flags().Bool("metrics", false, "Print bridge metrics in Prometheus text format after the run")
}

func init() {
	addSessionFlags(runCmd)
	addRunFlags(runCmd)
}
