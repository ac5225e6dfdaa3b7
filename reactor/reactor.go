// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral readiness demultiplexer interface used by the wait set
// to multiplex descriptor sources behind one blocking call.

package reactor

import (
	"fmt"
	"time"
)

// Sentinel conditions a caller may need to branch on. Implementations wrap
// these with OS context; test with errors.Is.
var (
	// ErrInterrupted reports a wait aborted by a signal before any
	// readiness was observed.
	ErrInterrupted = fmt.Errorf("wait interrupted by signal")

	// ErrAlreadyRegistered reports an Add for a descriptor that is
	// already registered.
	ErrAlreadyRegistered = fmt.Errorf("descriptor already registered")

	// ErrBadDescriptor reports a descriptor the backend cannot watch.
	ErrBadDescriptor = fmt.Errorf("descriptor cannot be watched")
)

// Event carries one readiness notification returned by Wait.
type Event struct {
	Token uint64 // registration token supplied to Add
}

// Demultiplexer defines level-triggered readability demultiplexing over
// registered descriptors. Implementations are not safe for concurrent use;
// the owning wait set serializes all calls.
type Demultiplexer interface {
	// Add registers a descriptor for readability watch under the given
	// 64-bit token. The token round-trips unchanged through Wait.
	Add(fd int, token uint64) error

	// Remove deregisters a previously added descriptor.
	Remove(fd int) error

	// Wait blocks up to timeout for readiness and fills events.
	// A negative timeout blocks indefinitely, zero polls. Returns the
	// number of events written, or ErrInterrupted on signal abort.
	Wait(events []Event, timeout time.Duration) (int, error)

	// Close releases the backend resources.
	Close() error
}
