// control/metrics_test.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-waitset/waitset"
)

func TestWaitSetMetricsCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWaitSetMetrics(reg)

	m.AttachmentAdded(waitset.KindNotification)
	m.AttachmentAdded(waitset.KindInterval)
	m.AttachmentAdded(waitset.KindInterval)
	m.AttachmentRemoved(waitset.KindInterval)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.attachments.WithLabelValues("notification")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attachments.WithLabelValues("interval")))

	m.Triggered(waitset.KindNotification, false)
	m.Triggered(waitset.KindDeadline, true)
	m.Triggered(waitset.KindDeadline, true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.triggers.WithLabelValues("notification", "event")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.triggers.WithLabelValues("deadline", "deadline")))

	m.CycleFinished(waitset.RunResultStopRequest)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycles.WithLabelValues(waitset.RunResultStopRequest.String())))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "hioload_waitset_attachments")
	assert.Contains(t, names, "hioload_waitset_triggers_total")
	assert.Contains(t, names, "hioload_waitset_cycles_total")
}

func TestWaitSetMetricsDoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWaitSetMetrics(reg)
	assert.Panics(t, func() {
		NewWaitSetMetrics(reg)
	})
}
