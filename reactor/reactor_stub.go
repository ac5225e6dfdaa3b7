//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package reactor

import "github.com/momentics/hioload-waitset/api"

// NewDemultiplexer returns an error on platforms without epoll support.
func NewDemultiplexer() (Demultiplexer, error) {
	return nil, api.ErrUnsupportedPlatform
}
