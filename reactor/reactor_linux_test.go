//go:build linux
// +build linux

package reactor_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-waitset/internal/sysfd"
	"github.com/momentics/hioload-waitset/reactor"
)

func newPipe(t *testing.T) *sysfd.Pipe {
	t.Helper()
	p, err := sysfd.NewPipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func newDemux(t *testing.T) reactor.Demultiplexer {
	t.Helper()
	d, err := reactor.NewDemultiplexer()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// A 64-bit token with both halves populated must survive the round trip
// through the epoll event payload.
func TestTokenRoundTrip(t *testing.T) {
	d := newDemux(t)
	p := newPipe(t)

	const token = uint64(0xDEADBEEFCAFEF00D)
	require.NoError(t, d.Add(p.ReadFD(), token))

	_, err := p.Write([]byte{1})
	require.NoError(t, err)

	events := make([]reactor.Event, 4)
	n, err := d.Wait(events, time.Second)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, token, events[0].Token)
}

// Level-triggered semantics: an undrained descriptor stays ready across
// consecutive waits and stops reporting once drained.
func TestLevelTriggered(t *testing.T) {
	d := newDemux(t)
	p := newPipe(t)
	require.NoError(t, d.Add(p.ReadFD(), 7))

	_, err := p.Write([]byte{1})
	require.NoError(t, err)

	events := make([]reactor.Event, 4)
	for i := 0; i < 2; i++ {
		n, err := d.Wait(events, time.Second)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	}

	var buf [8]byte
	_, err = p.Read(buf[:])
	require.NoError(t, err)

	n, err := d.Wait(events, 0)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestZeroTimeoutPolls(t *testing.T) {
	d := newDemux(t)
	p := newPipe(t)
	require.NoError(t, d.Add(p.ReadFD(), 1))

	start := time.Now()
	events := make([]reactor.Event, 4)
	n, err := d.Wait(events, 0)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestDuplicateAdd(t *testing.T) {
	d := newDemux(t)
	p := newPipe(t)
	require.NoError(t, d.Add(p.ReadFD(), 1))

	err := d.Add(p.ReadFD(), 2)
	require.Error(t, err)
	require.True(t, errors.Is(err, reactor.ErrAlreadyRegistered))
}

func TestBadDescriptor(t *testing.T) {
	d := newDemux(t)
	err := d.Add(-1, 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, reactor.ErrBadDescriptor))
}

func TestRemoveStopsDelivery(t *testing.T) {
	d := newDemux(t)
	p := newPipe(t)
	require.NoError(t, d.Add(p.ReadFD(), 1))
	require.NoError(t, d.Remove(p.ReadFD()))

	_, err := p.Write([]byte{1})
	require.NoError(t, err)

	events := make([]reactor.Event, 4)
	n, err := d.Wait(events, 0)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestMultipleReadySameWait(t *testing.T) {
	d := newDemux(t)
	p1 := newPipe(t)
	p2 := newPipe(t)
	require.NoError(t, d.Add(p1.ReadFD(), 101))
	require.NoError(t, d.Add(p2.ReadFD(), 202))

	_, err := p1.Write([]byte{1})
	require.NoError(t, err)
	_, err = p2.Write([]byte{1})
	require.NoError(t, err)

	events := make([]reactor.Event, 8)
	n, err := d.Wait(events, time.Second)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	tokens := map[uint64]bool{}
	for i := 0; i < n; i++ {
		tokens[events[i].Token] = true
	}
	require.True(t, tokens[101])
	require.True(t, tokens[202])
}
