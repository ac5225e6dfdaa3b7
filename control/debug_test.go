// control/debug_test.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-waitset/waitset"
)

func TestDebugProbesDumpState(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("answer", func() any { return 42 })
	dp.RegisterProbe("flag", func() any { return true })

	state := dp.DumpState()
	require.Len(t, state, 2)
	assert.Equal(t, 42, state["answer"])
	assert.Equal(t, true, state["flag"])
}

func TestDebugProbesOverwriteByName(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("value", func() any { return 1 })
	dp.RegisterProbe("value", func() any { return 2 })

	assert.Equal(t, 2, dp.DumpState()["value"])
}

func TestDebugProbesRenderState(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("stats", func() any {
		return waitset.Stats{Capacity: 8, Len: 3, Notifications: 1, Intervals: 1, Deadlines: 1}
	})

	rendered := dp.RenderState()
	require.Contains(t, rendered, "stats")
	assert.Contains(t, rendered["stats"], "waitset.Stats")
	assert.Contains(t, rendered["stats"], "Capacity:8")
}

func TestDebugProbesRuntimeProbes(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterRuntimeProbes()

	state := dp.DumpState()
	require.Contains(t, state, "runtime.cpus")
	require.Contains(t, state, "runtime.goroutines")
	assert.GreaterOrEqual(t, state["runtime.cpus"].(int), 1)
}
