//go:build linux
// +build linux

// File: affinity/affinity_linux_test.go
// Author: momentics <momentics@gmail.com>

package affinity

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSetAffinityPinsCallingThread(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer func() { _ = ResetAffinity() }()

	require.NoError(t, SetAffinity(0))

	var set unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &set))
	assert.Equal(t, 1, set.Count())
	assert.True(t, set.IsSet(0))
}

func TestResetAffinityWidensMask(t *testing.T) {
	if runtime.NumCPU() < 2 {
		t.Skip("needs more than one cpu")
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	require.NoError(t, SetAffinity(0))
	require.NoError(t, ResetAffinity())

	var set unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &set))
	assert.Greater(t, set.Count(), 1)
}
