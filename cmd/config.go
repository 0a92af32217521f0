package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/inference-sim/simbridge/bridge"
)

// RunConfig holds everything a simulation session needs. It is assembled by
// loadRunConfig from, lowest precedence first, flag defaults, the YAML config
// file, SIMBRIDGE_* environment variables and explicitly set flags.
type RunConfig struct {
	bridge.Config `mapstructure:",squash"`

	Module        string            `mapstructure:"module"`
	Steps         int               `mapstructure:"steps"`
	TraceCapacity int               `mapstructure:"trace_capacity"`
	Inputs        map[string]string `mapstructure:"inputs"`
	Reset         bool              `mapstructure:"reset"`
	RandomInputs  bool              `mapstructure:"random_inputs"`
	Hold          []string          `mapstructure:"hold"`
	Seed          int64             `mapstructure:"seed"`
	DestroyEvery  int               `mapstructure:"destroy_every"`
	Transcript    string            `mapstructure:"transcript"`
	Metrics       bool              `mapstructure:"metrics"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"module":         "module",
	"steps":          "steps",
	"trace-capacity": "trace_capacity",
	"set":            "inputs",
	"reset":          "reset",
	"random-inputs":  "random_inputs",
	"hold":           "hold",
	"seed":           "seed",
	"destroy-every":  "destroy_every",
	"transcript":     "transcript",
	"metrics":        "metrics",
	"reuse-instance": "reuse_instance",
	"reuse-scope":    "reuse_scope",
}

// loadRunConfig layers the config file and environment under the flags in fs.
func loadRunConfig(fs *pflag.FlagSet) (RunConfig, error) {
	v := viper.New()

	path := cfgFile
	if path == "" {
		path = os.Getenv("SIMBRIDGE_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return RunConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("SIMBRIDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return RunConfig{}, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	var c RunConfig
	if err := v.Unmarshal(&c); err != nil {
		return RunConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return RunConfig{}, err
	}
	return c, nil
}

// Validate rejects configurations no session could run.
func (c RunConfig) Validate() error {
	if c.Module == "" {
		return fmt.Errorf("module name not provided")
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must be >= 0, got %d", c.Steps)
	}
	if c.TraceCapacity < 1 {
		return fmt.Errorf("trace capacity must be >= 1, got %d", c.TraceCapacity)
	}
	if c.DestroyEvery < 0 {
		return fmt.Errorf("destroy-every must be >= 0, got %d", c.DestroyEvery)
	}
	if _, err := parseInputs(c.Inputs); err != nil {
		return err
	}
	return c.Config.Validate()
}

// parseInputs converts port=value strings; values accept any base strconv
// recognizes (0x.., 0b.., decimal).
func parseInputs(raw map[string]string) (map[string]uint64, error) {
	inputs := make(map[string]uint64, len(raw))
	for name, s := range raw {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("input %s=%q: %w", name, s, err)
		}
		inputs[name] = v
	}
	return inputs, nil
}
