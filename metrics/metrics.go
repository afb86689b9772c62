// Package metrics collects processing counters for the payments engine.
//
// The collector owns a private Prometheus registry so tests and repeated
// runs never collide on global registration. In serve mode the registry is
// exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector tracks command outcomes and ingest drops. A nil *Collector is
// a valid no-op, so callers can leave metrics unwired.
type Collector struct {
	registry *prometheus.Registry

	commands *prometheus.CounterVec
	failures *prometheus.CounterVec
	dropped  prometheus.Counter
	accounts prometheus.Gauge
}

// NewCollector creates a collector with all metrics registered under the
// given namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total number of successfully applied commands per kind",
			},
			[]string{"kind"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "command_failures_total",
				Help:      "Total number of rejected commands per kind and reason",
			},
			[]string{"kind", "reason"},
		),
		dropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_dropped_total",
				Help:      "Total number of malformed input rows dropped during ingest",
			},
		),
		accounts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "accounts",
				Help:      "Number of accounts created by the replay",
			},
		),
	}
	c.registry.MustRegister(c.commands, c.failures, c.dropped, c.accounts)
	return c
}

// Registry exposes the private registry for the /metrics handler.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) CommandProcessed(kind string) {
	if c == nil {
		return
	}
	c.commands.WithLabelValues(kind).Inc()
}

func (c *Collector) CommandFailed(kind, reason string) {
	if c == nil {
		return
	}
	c.failures.WithLabelValues(kind, reason).Inc()
}

func (c *Collector) RecordsDropped(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.dropped.Add(float64(n))
}

func (c *Collector) SetAccounts(n int) {
	if c == nil {
		return
	}
	c.accounts.Set(float64(n))
}
