//go:build linux
// +build linux

// File: internal/sysfd/sysfd_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux implementations over eventfd(2), timerfd_create(2) and pipe2(2).
// All descriptors are created close-on-exec and non-blocking.

package sysfd

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// NewEventFD allocates a kernel event counter.
func NewEventFD() (*EventFD, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return nil, errors.Wrap(err, "eventfd")
	}
	return &EventFD{fd: fd}, nil
}

// Notify increments the counter, making the descriptor readable.
// A full counter already keeps the descriptor readable, so EAGAIN is not
// an error here.
func (e *EventFD) Notify() error {
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], 1)
	_, err := unix.Write(e.fd, buf[:])
	if err == unix.EAGAIN {
		return nil
	}
	return errors.Wrap(err, "eventfd write")
}

// Drain zeroes the counter, clearing readability until the next Notify.
func (e *EventFD) Drain() error {
	var buf [8]byte
	_, err := unix.Read(e.fd, buf[:])
	if err == unix.EAGAIN {
		return nil
	}
	return errors.Wrap(err, "eventfd read")
}

// Close releases the descriptor.
func (e *EventFD) Close() error {
	return errors.Wrap(unix.Close(e.fd), "eventfd close")
}

// NewTimer allocates a monotonic-clock kernel timer in the disarmed state.
func NewTimer() (*Timer, error) {
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_CLOEXEC|unix.TFD_NONBLOCK)
	if err != nil {
		return nil, errors.Wrap(err, "timerfd_create")
	}
	return &Timer{fd: fd}, nil
}

// SetPeriodic arms the timer to fire every period and keep rearming itself.
func (t *Timer) SetPeriodic(period time.Duration) error {
	ts := timespec(period)
	spec := unix.ItimerSpec{Interval: ts, Value: ts}
	return errors.Wrap(unix.TimerfdSettime(t.fd, 0, &spec, nil), "timerfd_settime")
}

// SetOneShot arms the timer to fire once after d. Arming replaces any
// previously pending expiration.
func (t *Timer) SetOneShot(d time.Duration) error {
	spec := unix.ItimerSpec{Value: timespec(d)}
	return errors.Wrap(unix.TimerfdSettime(t.fd, 0, &spec, nil), "timerfd_settime")
}

// Drain consumes pending expirations and returns their count. A count of
// zero means the expiration was already consumed or the timer was rearmed
// between readiness and the read.
func (t *Timer) Drain() (uint64, error) {
	var buf [8]byte
	n, err := unix.Read(t.fd, buf[:])
	if err == unix.EAGAIN {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "timerfd read")
	}
	if n != 8 {
		return 0, errors.Errorf("timerfd read returned %d bytes", n)
	}
	return binary.NativeEndian.Uint64(buf[:]), nil
}

// Close releases the descriptor.
func (t *Timer) Close() error {
	return errors.Wrap(unix.Close(t.fd), "timerfd close")
}

// timespec converts d for timerfd_settime. A zero value would disarm the
// timer, so it is clamped to the minimum representable delay to keep the
// "fire immediately" meaning.
func timespec(d time.Duration) unix.Timespec {
	if d <= 0 {
		return unix.Timespec{Nsec: 1}
	}
	sec, nsec := SplitDuration(d)
	return unix.Timespec{Sec: sec, Nsec: nsec}
}

// NewPipe allocates a non-blocking pipe pair.
func NewPipe() (*Pipe, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		return nil, errors.Wrap(err, "pipe2")
	}
	return &Pipe{r: fds[0], w: fds[1]}, nil
}

// Write pushes bytes into the pipe, making the read end readable.
func (p *Pipe) Write(b []byte) (int, error) {
	n, err := unix.Write(p.w, b)
	return n, errors.Wrap(err, "pipe write")
}

// Read pops bytes from the pipe. Returns 0 without error when empty.
func (p *Pipe) Read(b []byte) (int, error) {
	n, err := unix.Read(p.r, b)
	if err == unix.EAGAIN {
		return 0, nil
	}
	return n, errors.Wrap(err, "pipe read")
}

// Close releases both ends.
func (p *Pipe) Close() error {
	errR := unix.Close(p.r)
	errW := unix.Close(p.w)
	if errR != nil {
		return errors.Wrap(errR, "pipe close")
	}
	return errors.Wrap(errW, "pipe close")
}
