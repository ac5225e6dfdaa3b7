// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development.
// Provides predictable, controllable event sources for wait sets.

package fake

import (
	"github.com/momentics/hioload-waitset/api"
	"github.com/momentics/hioload-waitset/internal/sysfd"
)

// Listener is a pipe-backed event source implementing api.Waitable.
// Tests and examples trigger it by hand instead of wiring real IPC.
type Listener struct {
	pipe *sysfd.Pipe
}

var _ api.Waitable = (*Listener)(nil)

// NewListener creates an armed listener.
func NewListener() (*Listener, error) {
	p, err := sysfd.NewPipe()
	if err != nil {
		return nil, err
	}
	return &Listener{pipe: p}, nil
}

// FileDescriptor returns the readable end watched by a wait set.
func (l *Listener) FileDescriptor() int {
	return l.pipe.ReadFD()
}

// Trigger makes the listener readable, firing attached notifications.
func (l *Listener) Trigger() error {
	_, err := l.pipe.Write([]byte{1})
	return err
}

// Acknowledge consumes pending triggers, clearing readability.
func (l *Listener) Acknowledge() error {
	var buf [64]byte
	_, err := l.pipe.Read(buf[:])
	return err
}

// Close releases both pipe ends.
func (l *Listener) Close() error {
	return l.pipe.Close()
}
