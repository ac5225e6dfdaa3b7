// File: waitset/attachment_id.go
// Author: momentics <momentics@gmail.com>
//
// Value identity of "which attachment fired". Comparable, copyable, and
// stable across the lifetime of the attachment it names.

package waitset

import "fmt"

// origin records what kind of readiness produced a delivered identity.
type origin uint8

const (
	originEvent origin = iota
	originDeadline
)

// AttachmentId identifies the attachment behind a dispatched notification.
// Identity is the pair (wait set, attachment serial); the delivery origin
// rides along for HasEventFrom and HasMissedDeadline but takes no part in
// Equal or Less, so an id derived from a guard compares equal to every id
// the wait loop delivers for that guard's attachment.
type AttachmentId struct {
	setID  uint64
	serial uint64
	origin origin
}

// AttachmentIdFromGuard derives the identity of the attachment held by g.
func AttachmentIdFromGuard(g *Guard) AttachmentId {
	return AttachmentId{setID: g.setID, serial: g.serial, origin: originEvent}
}

// HasEventFrom reports whether this identity names an event notification
// from g's attachment.
func (id AttachmentId) HasEventFrom(g *Guard) bool {
	return id.setID == g.setID && id.serial == g.serial && id.origin == originEvent
}

// HasMissedDeadline reports whether this identity names a missed deadline
// of g's attachment.
func (id AttachmentId) HasMissedDeadline(g *Guard) bool {
	return id.setID == g.setID && id.serial == g.serial && id.origin == originDeadline
}

// Equal reports whether both identities name the same attachment.
func (id AttachmentId) Equal(other AttachmentId) bool {
	return id.setID == other.setID && id.serial == other.serial
}

// Less imposes a stable total order so identities can key ordered
// containers.
func (id AttachmentId) Less(other AttachmentId) bool {
	if id.setID != other.setID {
		return id.setID < other.setID
	}
	return id.serial < other.serial
}

// String renders the identity for diagnostics.
func (id AttachmentId) String() string {
	o := "event"
	if id.origin == originDeadline {
		o = "deadline"
	}
	return fmt.Sprintf("attachment{set:%d serial:%d origin:%s}", id.setID, id.serial, o)
}
