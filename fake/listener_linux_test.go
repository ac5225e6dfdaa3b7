//go:build linux
// +build linux

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/momentics/hioload-waitset/waitset"
)

func TestListenerDrivesWaitSet(t *testing.T) {
	lis, err := NewListener()
	require.NoError(t, err)
	t.Cleanup(func() { _ = lis.Close() })

	ws, err := waitset.NewBuilder().Capacity(2).Logger(zap.NewNop()).Create()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	guard, err := ws.AttachNotification(lis)
	require.NoError(t, err)
	defer guard.Close()
	id := waitset.AttachmentIdFromGuard(guard)

	require.NoError(t, lis.Trigger())

	seen := 0
	_, err = ws.WaitAndProcess(func(got waitset.AttachmentId) {
		seen++
		require.True(t, got.Equal(id))
		require.NoError(t, lis.Acknowledge())
	})
	require.NoError(t, err)
	require.Equal(t, 1, seen)

	// Acknowledged listener leaves nothing ready.
	err = ws.TryWaitAndProcess(func(waitset.AttachmentId) {
		t.Fatal("no trigger pending")
	})
	require.NoError(t, err)
}
