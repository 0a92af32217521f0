package cmd

import (
	"strconv"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// runFlags returns a fresh run flag set with the given flags set.
func runFlags(t *testing.T, set map[string]string) *pflag.FlagSet {
	t.Helper()
	t.Setenv("SIMBRIDGE_CONFIG", "")
	c := &cobra.Command{Use: "run"}
	addSessionFlags(c)
	addRunFlags(c)
	for name, v := range set {
		require.NoError(t, c.Flags().Set(name, v), "flag %s", name)
	}
	return c.Flags()
}

// testConfig loads a RunConfig from flags alone.
func testConfig(t *testing.T, set map[string]string) RunConfig {
	t.Helper()
	cfg, err := loadRunConfig(runFlags(t, set))
	require.NoError(t, err)
	return cfg
}

func itoa(v uint64) string {
	return strconv.FormatUint(v, 10)
}
