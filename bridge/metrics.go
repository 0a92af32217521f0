package bridge

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/inference-sim/simbridge/kernel"
)

// Metrics counts bridge operations. A nil *Metrics records nothing.
type Metrics struct {
	Creates     prometheus.Counter
	Reuses      prometheus.Counter
	Destroys    prometheus.Counter
	Steps       prometheus.Counter
	Traces      prometheus.Counter
	Truncations prometheus.Counter
	SimTime     prometheus.Gauge
}

// NewMetrics builds the bridge collectors for module and registers them with reg.
func NewMetrics(reg prometheus.Registerer, module string) *Metrics {
	labels := prometheus.Labels{"module": module}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "simbridge",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	m := &Metrics{
		Creates:     counter("creates_total", "Modules constructed by Create."),
		Reuses:      counter("reuses_total", "Create calls answered with a cached instance."),
		Destroys:    counter("destroys_total", "Simulation context resets."),
		Steps:       counter("steps_total", "Time quanta advanced."),
		Traces:      counter("traces_total", "Line traces rendered."),
		Truncations: counter("trace_truncations_total", "Line traces cut to the caller buffer."),
		SimTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "simbridge",
			Name:        "sim_time_nanoseconds",
			Help:        "Current simulated time of the context.",
			ConstLabels: labels,
		}),
	}
	reg.MustRegister(m.Creates, m.Reuses, m.Destroys, m.Steps, m.Traces, m.Truncations, m.SimTime)
	return m
}

func (m *Metrics) created() {
	if m != nil {
		m.Creates.Inc()
	}
}

func (m *Metrics) reused() {
	if m != nil {
		m.Reuses.Inc()
	}
}

func (m *Metrics) destroyed(now kernel.Time) {
	if m != nil {
		m.Destroys.Inc()
		m.SimTime.Set(float64(now.Nanoseconds()))
	}
}

func (m *Metrics) stepped(now kernel.Time) {
	if m != nil {
		m.Steps.Inc()
		m.SimTime.Set(float64(now.Nanoseconds()))
	}
}

func (m *Metrics) traced(truncated bool) {
	if m == nil {
		return
	}
	m.Traces.Inc()
	if truncated {
		m.Truncations.Inc()
	}
}
