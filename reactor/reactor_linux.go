//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based demultiplexer implementation and factory.

package reactor

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// linuxDemux is an epoll-based readiness demultiplexer.
type linuxDemux struct {
	epfd int
	raw  []unix.EpollEvent
}

// NewDemultiplexer constructs the platform demultiplexer for Linux.
func NewDemultiplexer() (Demultiplexer, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, errors.Wrap(err, "epoll_create1")
	}
	return &linuxDemux{epfd: epfd}, nil
}

// Add registers fd for level-triggered readability under token.
// The 64-bit token is carried in the two 32-bit halves of the epoll event
// payload and reassembled by Wait.
func (d *linuxDemux) Add(fd int, token uint64) error {
	event := &unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(uint32(token)),
		Pad:    int32(uint32(token >> 32)),
	}
	if err := unix.EpollCtl(d.epfd, unix.EPOLL_CTL_ADD, fd, event); err != nil {
		switch err {
		case unix.EEXIST:
			return errors.Wrapf(ErrAlreadyRegistered, "epoll_ctl add fd %d", fd)
		case unix.EBADF, unix.EINVAL, unix.EPERM:
			return errors.Wrapf(ErrBadDescriptor, "epoll_ctl add fd %d: %v", fd, err)
		}
		return errors.Wrap(err, "epoll_ctl add")
	}
	return nil
}

// Remove deregisters fd from the epoll set.
func (d *linuxDemux) Remove(fd int) error {
	if err := unix.EpollCtl(d.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return errors.Wrapf(err, "epoll_ctl del fd %d", fd)
	}
	return nil
}

// Wait fills events with ready registrations.
func (d *linuxDemux) Wait(events []Event, timeout time.Duration) (int, error) {
	if len(d.raw) < len(events) {
		d.raw = make([]unix.EpollEvent, len(events))
	}
	n, err := unix.EpollWait(d.epfd, d.raw[:len(events)], msec(timeout))
	if err != nil {
		if err == unix.EINTR {
			return 0, ErrInterrupted
		}
		return 0, errors.Wrap(err, "epoll_wait")
	}
	for i := 0; i < n; i++ {
		events[i] = Event{
			Token: uint64(uint32(d.raw[i].Fd)) | uint64(uint32(d.raw[i].Pad))<<32,
		}
	}
	return n, nil
}

// Close closes the epoll instance.
func (d *linuxDemux) Close() error {
	return unix.Close(d.epfd)
}

// msec converts a timeout to epoll milliseconds. Positive sub-millisecond
// timeouts round up so they never degenerate into a busy poll.
func msec(timeout time.Duration) int {
	if timeout < 0 {
		return -1
	}
	ms := int(timeout / time.Millisecond)
	if time.Duration(ms)*time.Millisecond < timeout {
		ms++
	}
	return ms
}
