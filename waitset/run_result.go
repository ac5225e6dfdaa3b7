// File: waitset/run_result.go
// Author: momentics <momentics@gmail.com>
//
// Outcome taxonomy of blocking wait cycles and the related loop controls.

package waitset

import "fmt"

// RunResult reports why a blocking wait cycle returned.
type RunResult int

const (
	// RunResultAllEventsHandled means every ready attachment was dispatched.
	RunResultAllEventsHandled RunResult = iota
	// RunResultStopRequest means a Stop call consumed this cycle.
	RunResultStopRequest
	// RunResultTerminationRequest means SIGINT or SIGTERM was bridged in.
	RunResultTerminationRequest
	// RunResultInterrupt means the OS wait was interrupted by a signal.
	RunResultInterrupt
)

// String returns a stable name for the result.
func (r RunResult) String() string {
	switch r {
	case RunResultAllEventsHandled:
		return "all events handled"
	case RunResultStopRequest:
		return "stop request"
	case RunResultTerminationRequest:
		return "termination request"
	case RunResultInterrupt:
		return "interrupt"
	default:
		return fmt.Sprintf("run result %d", int(r))
	}
}

// CallbackProgression steers a Run loop after each dispatched attachment.
type CallbackProgression int

const (
	// CallbackContinue keeps the loop running.
	CallbackContinue CallbackProgression = iota
	// CallbackStop leaves the loop once the current cycle finishes.
	CallbackStop
)

// SignalHandlingMode selects how process signals interact with waits.
type SignalHandlingMode int

const (
	// SignalHandlingDisabled leaves process signal disposition untouched.
	// The default: libraries must not install handlers behind the
	// caller's back.
	SignalHandlingDisabled SignalHandlingMode = iota
	// SignalHandlingTermination converts SIGINT and SIGTERM into
	// RunResultTerminationRequest outcomes.
	SignalHandlingTermination
)

// String returns a stable name for the mode.
func (m SignalHandlingMode) String() string {
	switch m {
	case SignalHandlingDisabled:
		return "disabled"
	case SignalHandlingTermination:
		return "termination"
	default:
		return fmt.Sprintf("signal handling mode %d", int(m))
	}
}
