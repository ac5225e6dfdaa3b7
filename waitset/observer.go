// File: waitset/observer.go
// Author: momentics <momentics@gmail.com>
//
// Instrumentation hook decoupling the wait set from any metrics backend.

package waitset

// Observer receives lifecycle callbacks from a wait set. Callbacks run
// inline, sometimes with the wait set lock held: they must return quickly
// and must not call back into the wait set.
type Observer interface {
	// AttachmentAdded fires after a successful attach.
	AttachmentAdded(kind AttachmentKind)

	// AttachmentRemoved fires after a guard release or wait set close
	// detaches an attachment.
	AttachmentRemoved(kind AttachmentKind)

	// Triggered fires once per dispatched handler invocation.
	Triggered(kind AttachmentKind, missedDeadline bool)

	// CycleFinished fires when a blocking wait cycle returns a result.
	CycleFinished(result RunResult)
}

// nopObserver ignores all callbacks.
type nopObserver struct{}

func (nopObserver) AttachmentAdded(AttachmentKind)   {}
func (nopObserver) AttachmentRemoved(AttachmentKind) {}
func (nopObserver) Triggered(AttachmentKind, bool)   {}
func (nopObserver) CycleFinished(RunResult)          {}
