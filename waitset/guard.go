// File: waitset/guard.go
// Author: momentics <momentics@gmail.com>
//
// Attachment lifetime handle.

package waitset

import "sync/atomic"

// Guard pins one attachment into its wait set for as long as it is held.
// Guards are produced only by attach calls. A guard must not outlive its
// wait set; releasing one after the set closed is a logged no-op.
type Guard struct {
	ws     *WaitSet
	setID  uint64
	serial uint64
	slot   int
	closed atomic.Bool
}

// Close deregisters the attachment synchronously: after Close returns the
// wait loop dispatches no further notifications for it. Close is
// idempotent and never fails; OS-level deregistration problems are logged
// and swallowed so teardown paths stay linear.
func (g *Guard) Close() {
	if g == nil || !g.closed.CompareAndSwap(false, true) {
		return
	}
	g.ws.detach(g.slot, g.serial)
}
