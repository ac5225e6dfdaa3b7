// File: internal/sysfd/sysfd.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral descriptor handle types. Constructors and methods are
// implemented per platform.

package sysfd

// EventFD is a kernel event counter used as a cross-thread wakeup for the
// wait loop. Notify is safe to call from any goroutine.
type EventFD struct {
	fd int
}

// FD returns the descriptor to register with a readiness demultiplexer.
func (e *EventFD) FD() int { return e.fd }

// Timer is a kernel timer delivering expirations through a descriptor.
// It backs both periodic interval attachments and one-shot deadlines.
type Timer struct {
	fd int
}

// FD returns the descriptor to register with a readiness demultiplexer.
func (t *Timer) FD() int { return t.fd }

// Pipe is a unidirectional non-blocking byte channel. The read end serves
// as a waitable descriptor for tests and in-process event sources.
type Pipe struct {
	r int
	w int
}

// ReadFD returns the readable end of the pipe.
func (p *Pipe) ReadFD() int { return p.r }

// WriteFD returns the writable end of the pipe.
func (p *Pipe) WriteFD() int { return p.w }
