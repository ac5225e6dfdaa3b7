// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for internal inspection.

package control

import (
	"runtime"
	"sync"

	"github.com/luci/go-render/render"

	"github.com/momentics/hioload-waitset/waitset"
)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// RegisterWaitSet wires the standard stats probe for ws under name.
func (dp *DebugProbes) RegisterWaitSet(name string, ws *waitset.WaitSet) {
	dp.RegisterProbe(name, func() any {
		return ws.Stats()
	})
}

// RegisterRuntimeProbes adds process-wide probes.
func (dp *DebugProbes) RegisterRuntimeProbes() {
	dp.RegisterProbe("runtime.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("runtime.goroutines", func() any {
		return runtime.NumGoroutine()
	})
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

// RenderState returns probe outputs rendered into reproducible strings,
// including unexported struct fields.
func (dp *DebugProbes) RenderState() map[string]string {
	out := make(map[string]string)
	for k, v := range dp.DumpState() {
		out[k] = render.Render(v)
	}
	return out
}
