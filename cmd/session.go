package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/simbridge/bridge"
	"github.com/inference-sim/simbridge/kernel"
	"github.com/inference-sim/simbridge/modules"
	"github.com/inference-sim/simbridge/stimulus"
)

// session plays the host caller: it owns one bridge and the current instance,
// applies held and random inputs, and records one line per step.
//
// Thread-safety: NOT thread-safe.
type session struct {
	cfg    RunConfig
	bridge *bridge.Bridge
	inst   *bridge.Instance
	inputs map[string]uint64
	driver *stimulus.Driver

	steps      int
	lines      []string
	out        io.Writer
	transcript *Transcript
}

// newSession builds the bridge for cfg.Module on ctx, creates the first
// instance and records its initial state as step 0. Bridge metrics are
// registered with reg when it is non-nil. out receives each recorded line and
// may be nil.
func newSession(ctx *kernel.Context, cfg RunConfig, reg prometheus.Registerer, out io.Writer) (*session, error) {
	factory, err := modules.Lookup(cfg.Module)
	if err != nil {
		return nil, err
	}
	inputs, err := parseInputs(cfg.Inputs)
	if err != nil {
		return nil, err
	}
	var opts []bridge.Option
	if reg != nil {
		opts = append(opts, bridge.WithMetrics(bridge.NewMetrics(reg, cfg.Module)))
	}
	s := &session{
		cfg:    cfg,
		bridge: bridge.New(ctx, cfg.Module, factory, cfg.Config, opts...),
		inputs: inputs,
		out:    out,
		transcript: &Transcript{
			Module:        cfg.Module,
			Seed:          cfg.Seed,
			RandomInputs:  cfg.RandomInputs,
			ReuseInstance: cfg.ReuseInstance,
		},
	}
	if err := s.create(); err != nil {
		return nil, err
	}
	s.record()
	return s, nil
}

// run steps the session cfg.Steps times, recreating the instance every
// cfg.DestroyEvery steps. Reset cycles are not counted against cfg.Steps.
func (s *session) run() error {
	for n := 1; n <= s.cfg.Steps; n++ {
		if err := s.step(); err != nil {
			return err
		}
		if s.cfg.DestroyEvery > 0 && n%s.cfg.DestroyEvery == 0 && n < s.cfg.Steps {
			if err := s.recreate(); err != nil {
				return err
			}
		}
	}
	logrus.Infof("%s: %d steps, simulated time %s", s.cfg.Module, s.steps, s.bridge.Context().Now())
	return nil
}

// step drives random inputs, advances one quantum and records the result.
func (s *session) step() error {
	if s.driver != nil {
		s.driver.Apply()
	}
	if err := s.bridge.Step(); err != nil {
		return fmt.Errorf("step %d: %w", s.steps+1, err)
	}
	s.steps++
	s.record()
	return nil
}

// recreate destroys the context and creates a fresh instance in it.
func (s *session) recreate() error {
	prev := s.inst.ID()
	s.bridge.Destroy()
	if err := s.create(); err != nil {
		return err
	}
	s.emit(fmt.Sprintf("--- destroyed #%d, created #%d", prev, s.inst.ID()))
	return nil
}

// reset runs the model reset sequence on the current instance and records
// the state it leaves behind.
func (s *session) reset() error {
	if err := s.resetModel(); err != nil {
		return err
	}
	s.record()
	return nil
}

func (s *session) resetModel() error {
	if err := s.bridge.ResetModel(s.inst); err != nil {
		return fmt.Errorf("reset %s: %w", s.cfg.Module, err)
	}
	s.steps += bridge.ResetCycles
	s.emit(fmt.Sprintf("--- reset #%d for %d cycles", s.inst.ID(), bridge.ResetCycles))
	return nil
}

// create asks the bridge for an instance and stages the held inputs on it.
// With cfg.Reset the new instance is also put through its reset sequence.
func (s *session) create() error {
	inst, err := s.bridge.Create()
	if err != nil {
		return fmt.Errorf("create %s: %w", s.cfg.Module, err)
	}
	names := make([]string, 0, len(s.inputs))
	for name := range s.inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	held := append([]string(nil), s.cfg.Hold...)
	for _, name := range names {
		p := inputPort(inst, name)
		if p == nil {
			return fmt.Errorf("module %s has no input port %q", s.cfg.Module, name)
		}
		p.Write(s.inputs[name])
		held = append(held, p.Name())
	}
	if s.cfg.RandomInputs {
		if s.driver == nil {
			s.driver = stimulus.NewDriver(s.cfg.Seed, inst, held...)
		} else {
			s.driver.Rebind(inst, held...)
		}
	}
	s.inst = inst
	if s.cfg.Reset {
		return s.resetModel()
	}
	return nil
}

// record appends the current state to the transcript and prints it.
func (s *session) record() {
	trace, ok := lineTrace(s.bridge, s.inst, s.cfg.TraceCapacity)
	line := trace
	if !ok {
		line = formatPorts(s.inst)
	}
	s.emit(fmt.Sprintf("%3d: %s", s.steps, line))

	ctx := s.bridge.Context()
	s.transcript.Records = append(s.transcript.Records, TranscriptRecord{
		Step:       s.steps,
		TimeNs:     ctx.Now().Nanoseconds(),
		Generation: ctx.Generation(),
		Instance:   uint64(s.inst.ID()),
		Ports:      s.inst.Snapshot(),
		Trace:      trace,
	})
}

func (s *session) emit(line string) {
	s.lines = append(s.lines, line)
	if s.out != nil {
		fmt.Fprintln(s.out, line)
	}
}

// inputPort finds an input port by name. Config files fold keys to lower
// case, so an exact match is preferred and a case-insensitive one accepted.
func inputPort(inst *bridge.Instance, name string) *kernel.Signal {
	var folded *kernel.Signal
	for _, p := range inst.Ports {
		if p.Direction() != kernel.In {
			continue
		}
		if p.Name() == name {
			return p
		}
		if folded == nil && strings.EqualFold(p.Name(), name) {
			folded = p
		}
	}
	return folded
}

// formatPorts renders "name=value" for every port in declaration order; it
// stands in for the line trace when trace support is not compiled in.
func formatPorts(inst *bridge.Instance) string {
	parts := make([]string, len(inst.Ports))
	for i, p := range inst.Ports {
		parts[i] = fmt.Sprintf("%s=%d", p.Name(), p.Read())
	}
	return strings.Join(parts, " ")
}
