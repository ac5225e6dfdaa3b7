//go:build !linux
// +build !linux

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for platforms without thread affinity support.

package affinity

import "github.com/momentics/hioload-waitset/api"

// setAffinityPlatform is a stub for platforms without CPU affinity.
func setAffinityPlatform(cpuID int) error {
	return api.ErrUnsupportedPlatform
}

// resetAffinityPlatform is a stub for platforms without CPU affinity.
func resetAffinityPlatform() error {
	return api.ErrUnsupportedPlatform
}
