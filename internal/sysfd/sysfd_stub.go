//go:build !linux
// +build !linux

// File: internal/sysfd/sysfd_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementations for platforms without eventfd/timerfd support.

package sysfd

import (
	"time"

	"github.com/momentics/hioload-waitset/api"
)

// NewEventFD is unavailable on this platform.
func NewEventFD() (*EventFD, error) {
	return nil, api.ErrUnsupportedPlatform
}

func (e *EventFD) Notify() error { return api.ErrUnsupportedPlatform }
func (e *EventFD) Drain() error  { return api.ErrUnsupportedPlatform }
func (e *EventFD) Close() error  { return api.ErrUnsupportedPlatform }

// NewTimer is unavailable on this platform.
func NewTimer() (*Timer, error) {
	return nil, api.ErrUnsupportedPlatform
}

func (t *Timer) SetPeriodic(time.Duration) error { return api.ErrUnsupportedPlatform }
func (t *Timer) SetOneShot(time.Duration) error  { return api.ErrUnsupportedPlatform }
func (t *Timer) Drain() (uint64, error)          { return 0, api.ErrUnsupportedPlatform }
func (t *Timer) Close() error                    { return api.ErrUnsupportedPlatform }

// NewPipe is unavailable on this platform.
func NewPipe() (*Pipe, error) {
	return nil, api.ErrUnsupportedPlatform
}

func (p *Pipe) Write([]byte) (int, error) { return 0, api.ErrUnsupportedPlatform }
func (p *Pipe) Read([]byte) (int, error)  { return 0, api.ErrUnsupportedPlatform }
func (p *Pipe) Close() error              { return api.ErrUnsupportedPlatform }
