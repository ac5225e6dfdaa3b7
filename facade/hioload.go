// File: facade/hioload.go
// Unified facade layer for hioload-waitset library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the Runtime struct, which aggregates the core
// components of the hioload-waitset library behind a single facade. It
// resolves the service configuration, builds the wait set with metrics
// and debug probes wired in, applies CPU pinning, and drives the
// dispatch loop. The facade exposes methods to start/stop the system
// and retrieve runtime services such as the wait set, the prometheus
// gatherer, and the probe registry.

package facade

import (
	"runtime"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/momentics/hioload-waitset/affinity"
	"github.com/momentics/hioload-waitset/api"
	"github.com/momentics/hioload-waitset/config"
	"github.com/momentics/hioload-waitset/control"
	"github.com/momentics/hioload-waitset/logs"
	"github.com/momentics/hioload-waitset/waitset"
)

// Runtime is the main facade type.
// It implements api.GracefulShutdown to allow unified shutdown logic.
type Runtime struct {
	ws      *waitset.WaitSet        // Event multiplexing core
	metrics *control.WaitSetMetrics // Prometheus observer, nil when disabled
	probes  *control.DebugProbes    // Debug probe registry, nil when disabled
	reg     *prometheus.Registry    // Owning registry for metrics

	config  *config.Service // Immutable configuration
	mu      sync.RWMutex    // Protects started and pinned flags
	started bool            // Indicates whether Start() has been called
	pinned  bool            // Indicates whether CPU pinning took effect
}

// Ensure compliance with api.GracefulShutdown.
var _ api.GracefulShutdown = (*Runtime)(nil)

// New constructs a Runtime with the given configuration.
// It builds the wait set, wires the prometheus observer and the debug
// probe registry according to the configuration. A nil cfg selects
// config.Default().
func New(cfg *config.Service) (*Runtime, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runtime{config: cfg}

	builder := waitset.NewBuilder().
		Capacity(cfg.Capacity).
		SignalHandling(signalMode(cfg.SignalHandling))

	if cfg.EnableMetrics {
		r.reg = prometheus.NewRegistry()
		r.metrics = control.NewWaitSetMetrics(r.reg)
		builder.Observer(r.metrics)
	}

	ws, err := builder.Create()
	if err != nil {
		return nil, err
	}
	r.ws = ws

	if cfg.EnableDebug {
		r.probes = control.NewDebugProbes()
		r.probes.RegisterWaitSet("waitset", ws)
		r.probes.RegisterRuntimeProbes()
	}
	return r, nil
}

// signalMode maps the configuration string onto the builder mode.
// config.Service.Validate has already rejected anything else.
func signalMode(s string) waitset.SignalHandlingMode {
	if s == "termination" {
		return waitset.SignalHandlingTermination
	}
	return waitset.SignalHandlingDisabled
}

// Start applies CPU pinning when configured. It must be called from the
// goroutine that will drive Serve or WaitAndProcess: pinning binds that
// goroutine's OS thread. Subsequent calls to Start() have no effect.
func (r *Runtime) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}
	if r.config.PinCPU >= 0 {
		runtime.LockOSThread()
		if err := affinity.SetAffinity(r.config.PinCPU); err != nil {
			logs.Warn("cpu affinity warning",
				zap.Int("cpu", r.config.PinCPU), zap.Error(err))
			runtime.UnlockOSThread()
		} else {
			r.pinned = true
		}
	}
	r.started = true
	return nil
}

// Serve drives blocking dispatch cycles through fn until the loop is
// stopped, a termination signal arrives, or fn asks to leave.
func (r *Runtime) Serve(fn func(waitset.AttachmentId) waitset.CallbackProgression) (waitset.RunResult, error) {
	return r.ws.Run(fn)
}

// Stop requests the dispatch loop to return. Safe from any goroutine.
// Calling Stop() on a non-started facade is a no-op.
func (r *Runtime) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return nil
	}
	r.ws.Stop()
	r.started = false
	return nil
}

// Shutdown implements api.GracefulShutdown: it stops the loop, restores
// the thread's CPU mask, and closes the wait set. Like Start, the mask
// restore is only meaningful from the serving goroutine.
func (r *Runtime) Shutdown() error {
	if err := r.Stop(); err != nil {
		return err
	}
	r.mu.Lock()
	if r.pinned {
		if err := affinity.ResetAffinity(); err != nil {
			logs.Warn("cpu unpinning warning", zap.Error(err))
		}
		runtime.UnlockOSThread()
		r.pinned = false
	}
	r.mu.Unlock()
	return r.ws.Close()
}

// GetWaitSet returns the wait set for attaching event sources.
func (r *Runtime) GetWaitSet() *waitset.WaitSet {
	return r.ws
}

// GetGatherer returns the prometheus gatherer backing the metrics, or
// nil when metrics are disabled.
func (r *Runtime) GetGatherer() prometheus.Gatherer {
	if r.reg == nil {
		return nil
	}
	return r.reg
}

// GetProbes returns the debug probe registry, or nil when disabled.
func (r *Runtime) GetProbes() *control.DebugProbes {
	return r.probes
}
