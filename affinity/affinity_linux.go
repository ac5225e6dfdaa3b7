//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific implementation for setting thread CPU affinity.
// Uses sched_setaffinity on the calling thread, so no C toolchain is
// required and cross-compilation stays trivial.

package affinity

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// setAffinityPlatform pins the calling thread to cpuID.
func setAffinityPlatform(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	// Pid 0 addresses the calling thread.
	return errors.Wrap(unix.SchedSetaffinity(0, &set), "sched_setaffinity")
}

// resetAffinityPlatform widens the calling thread's mask to all CPUs.
func resetAffinityPlatform() error {
	var set unix.CPUSet
	set.Zero()
	for cpu := 0; cpu < runtime.NumCPU(); cpu++ {
		set.Set(cpu)
	}
	return errors.Wrap(unix.SchedSetaffinity(0, &set), "sched_setaffinity")
}
