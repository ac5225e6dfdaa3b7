// File: waitset/registry.go
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity attachment arena. Slot indexes are embedded in
// demultiplexer tokens; monotonic serials keep recycled slots
// distinguishable from their previous tenants.

package waitset

import (
	"time"

	"github.com/momentics/hioload-waitset/internal/sysfd"
)

// AttachmentKind distinguishes the attachment flavors a wait set multiplexes.
type AttachmentKind int

const (
	// KindNotification watches a caller-owned descriptor for readability.
	KindNotification AttachmentKind = iota
	// KindInterval fires periodically on a wait-set-owned kernel timer.
	KindInterval
	// KindDeadline watches a descriptor and additionally fires when it
	// stays silent past a deadline.
	KindDeadline
)

// String returns a stable name for the kind.
func (k AttachmentKind) String() string {
	switch k {
	case KindNotification:
		return "notification"
	case KindInterval:
		return "interval"
	case KindDeadline:
		return "deadline"
	default:
		return "unknown"
	}
}

// Stats is a point-in-time snapshot of a wait set's registry.
type Stats struct {
	Capacity      int
	Len           int
	Notifications int
	Intervals     int
	Deadlines     int
}

// slot is one arena cell of the registry.
type slot struct {
	serial  uint64
	kind    AttachmentKind
	watchFD int
	timer   *sysfd.Timer
	period  time.Duration
	active  bool
}

// registry is the arena of attachment slots plus a free list.
type registry struct {
	slots  []slot
	free   []int
	counts [3]int
}

func newRegistry(capacity int) *registry {
	r := &registry{
		slots: make([]slot, capacity),
		free:  make([]int, 0, capacity),
	}
	for i := capacity - 1; i >= 0; i-- {
		r.slots[i].watchFD = -1
		r.free = append(r.free, i)
	}
	return r
}

func (r *registry) capacity() int { return len(r.slots) }

func (r *registry) len() int { return len(r.slots) - len(r.free) }

// acquire pops a free slot index. The slot is unaccounted until commit.
func (r *registry) acquire() (int, bool) {
	if len(r.free) == 0 {
		return 0, false
	}
	idx := r.free[len(r.free)-1]
	r.free = r.free[:len(r.free)-1]
	return idx, true
}

// commit activates an acquired slot and counts it.
func (r *registry) commit(idx int) {
	s := &r.slots[idx]
	s.active = true
	r.counts[s.kind]++
}

// abort recycles an acquired slot that never got committed.
func (r *registry) abort(idx int) {
	r.slots[idx] = slot{watchFD: -1}
	r.free = append(r.free, idx)
}

// release deactivates a committed slot and recycles it.
func (r *registry) release(idx int) {
	s := &r.slots[idx]
	r.counts[s.kind]--
	*s = slot{watchFD: -1}
	r.free = append(r.free, idx)
}

// lookup returns the slot at idx when it holds an active attachment.
func (r *registry) lookup(idx int) (*slot, bool) {
	if idx < 0 || idx >= len(r.slots) {
		return nil, false
	}
	s := &r.slots[idx]
	if !s.active {
		return nil, false
	}
	return s, true
}

// serialLive reports whether the attachment (idx, serial) is still
// registered. A recycled slot fails the serial comparison.
func (r *registry) serialLive(idx int, serial uint64) bool {
	s, ok := r.lookup(idx)
	return ok && s.serial == serial
}

func (r *registry) stats() Stats {
	return Stats{
		Capacity:      len(r.slots),
		Len:           r.len(),
		Notifications: r.counts[KindNotification],
		Intervals:     r.counts[KindInterval],
		Deadlines:     r.counts[KindDeadline],
	}
}

// Control tokens occupy the top of the token space; slot tokens grow from
// zero as index*2 plus a timer-side bit.
const (
	tokenStop        = ^uint64(0)
	tokenTermination = ^uint64(0) - 1
)

func slotToken(idx int, timerSide bool) uint64 {
	tok := uint64(idx) << 1
	if timerSide {
		tok |= 1
	}
	return tok
}

func tokenSlot(tok uint64) (idx int, timerSide bool) {
	return int(tok >> 1), tok&1 == 1
}
