// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations
// are located in separate files guarded by build tags.
//
// Pinning applies to the calling OS thread. Callers that want a goroutine
// pinned must hold runtime.LockOSThread for the lifetime of the pin.

package affinity

import (
	"runtime"

	"github.com/pkg/errors"
)

// SetAffinity pins the current OS thread to a given logical CPU on
// supported platforms. On unsupported platforms returns an error.
func SetAffinity(cpuID int) error {
	if cpuID < 0 || cpuID >= runtime.NumCPU() {
		return errors.Errorf("affinity: cpu %d out of range [0, %d)", cpuID, runtime.NumCPU())
	}
	return setAffinityPlatform(cpuID)
}

// ResetAffinity restores the current OS thread's mask to all online CPUs.
func ResetAffinity() error {
	return resetAffinityPlatform()
}
