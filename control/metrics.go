// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus-backed telemetry for wait set lifecycles.
// Implements waitset.Observer so a wait set reports into collectors
// without the core depending on any metrics stack.

package control

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-waitset/waitset"
)

// WaitSetMetrics exports attachment population, trigger throughput and
// cycle outcomes through a prometheus registry.
type WaitSetMetrics struct {
	attachments *prometheus.GaugeVec
	triggers    *prometheus.CounterVec
	cycles      *prometheus.CounterVec
}

var _ waitset.Observer = (*WaitSetMetrics)(nil)

// NewWaitSetMetrics builds the collectors and registers them with reg.
func NewWaitSetMetrics(reg prometheus.Registerer) *WaitSetMetrics {
	m := &WaitSetMetrics{
		attachments: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hioload_waitset_attachments",
			Help: "Active attachments by kind.",
		}, []string{"kind"}),
		triggers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hioload_waitset_triggers_total",
			Help: "Dispatched handler invocations by kind and origin.",
		}, []string{"kind", "origin"}),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hioload_waitset_cycles_total",
			Help: "Finished blocking wait cycles by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.attachments, m.triggers, m.cycles)
	return m
}

// AttachmentAdded increments the population gauge for kind.
func (m *WaitSetMetrics) AttachmentAdded(kind waitset.AttachmentKind) {
	m.attachments.WithLabelValues(kind.String()).Inc()
}

// AttachmentRemoved decrements the population gauge for kind.
func (m *WaitSetMetrics) AttachmentRemoved(kind waitset.AttachmentKind) {
	m.attachments.WithLabelValues(kind.String()).Dec()
}

// Triggered counts one dispatched invocation.
func (m *WaitSetMetrics) Triggered(kind waitset.AttachmentKind, missedDeadline bool) {
	origin := "event"
	if missedDeadline {
		origin = "deadline"
	}
	m.triggers.WithLabelValues(kind.String(), origin).Inc()
}

// CycleFinished counts one completed blocking cycle.
func (m *WaitSetMetrics) CycleFinished(result waitset.RunResult) {
	m.cycles.WithLabelValues(result.String()).Inc()
}
