// File: waitset/waitset.go
// Author: momentics <momentics@gmail.com>
//
// The wait set core: attachment registration, the wait-and-dispatch cycle,
// and stop control.

package waitset

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/momentics/hioload-waitset/api"
	"github.com/momentics/hioload-waitset/internal/sysfd"
	"github.com/momentics/hioload-waitset/reactor"
)

var attachmentSerial atomic.Uint64

// WaitSet multiplexes attached descriptors, interval timers and deadline
// watched sources behind one blocking wait call.
//
// Attach, wait and close calls belong to one owning goroutine. Stop is the
// exception: it may be called from any goroutine and from inside handlers.
type WaitSet struct {
	id    uint64
	demux reactor.Demultiplexer
	mode  SignalHandlingMode

	logger   *zap.Logger
	observer Observer

	mu     sync.Mutex
	reg    *registry
	closed bool

	stopFD *sysfd.EventFD
	termFD *sysfd.EventFD
	bridge *signalBridge

	events []reactor.Event
	staged *queue.Queue
}

// stagedTrigger is one pending handler invocation collected during a cycle.
type stagedTrigger struct {
	id   AttachmentId
	kind AttachmentKind
	slot int
}

// Capacity returns the maximum number of concurrent attachments.
func (w *WaitSet) Capacity() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reg.capacity()
}

// Len returns the number of active attachments.
func (w *WaitSet) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reg.len()
}

// IsEmpty reports whether no attachments are active.
func (w *WaitSet) IsEmpty() bool {
	return w.Len() == 0
}

// SignalHandlingMode reports how this wait set surfaces process signals.
func (w *WaitSet) SignalHandlingMode() SignalHandlingMode {
	return w.mode
}

// Stats returns a point-in-time snapshot of the registry.
func (w *WaitSet) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reg.stats()
}

// Stop requests that the current or next blocking wait returns
// RunResultStopRequest instead of continuing. Exactly one blocking call
// consumes the request; the wait set stays usable afterwards. Safe from
// any goroutine and from inside handlers. Stopping a closed wait set is a
// no-op.
func (w *WaitSet) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if err := w.stopFD.Notify(); err != nil {
		w.logger.Error("stop wakeup failed", zap.Error(err))
	}
}

// AttachNotificationFD attaches a caller-owned descriptor for
// level-triggered readability notification. The wait set never reads from
// or closes the descriptor.
func (w *WaitSet) AttachNotificationFD(fd int) (*Guard, error) {
	return w.attach(KindNotification, fd, 0)
}

// AttachNotification attaches the readiness descriptor of src.
func (w *WaitSet) AttachNotification(src api.Waitable) (*Guard, error) {
	if src == nil {
		return nil, api.NewAttachmentError(api.CodeInvalidDescriptor, "nil event source")
	}
	return w.attach(KindNotification, src.FileDescriptor(), 0)
}

// AttachInterval attaches a timer firing every period. Ticks are
// delivered as missed-deadline identities: each one means a period
// elapsed. A zero period degenerates to firing as fast as the loop can
// dispatch.
func (w *WaitSet) AttachInterval(period time.Duration) (*Guard, error) {
	return w.attach(KindInterval, -1, period)
}

// AttachDeadlineFD attaches a caller-owned descriptor that must show
// activity within every deadline window. The handler observes descriptor
// readiness through HasEventFrom and an expired window through
// HasMissedDeadline; either occurrence restarts the window.
func (w *WaitSet) AttachDeadlineFD(fd int, deadline time.Duration) (*Guard, error) {
	return w.attach(KindDeadline, fd, deadline)
}

// AttachDeadline attaches the readiness descriptor of src under a deadline.
func (w *WaitSet) AttachDeadline(src api.Waitable, deadline time.Duration) (*Guard, error) {
	if src == nil {
		return nil, api.NewAttachmentError(api.CodeInvalidDescriptor, "nil event source")
	}
	return w.attach(KindDeadline, src.FileDescriptor(), deadline)
}

func (w *WaitSet) attach(kind AttachmentKind, fd int, period time.Duration) (*Guard, error) {
	if kind != KindInterval && fd < 0 {
		return nil, api.NewAttachmentError(api.CodeInvalidDescriptor,
			fmt.Sprintf("descriptor %d cannot be attached", fd))
	}
	if kind != KindNotification && period < 0 {
		return nil, api.NewAttachmentError(api.CodeInvalidDuration,
			fmt.Sprintf("duration %v is negative", period))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, api.NewAttachmentError(api.CodeWaitSetClosed, "wait set is closed")
	}
	idx, ok := w.reg.acquire()
	if !ok {
		return nil, api.NewAttachmentError(api.CodeCapacityExhausted,
			fmt.Sprintf("all %d attachment slots are in use", w.reg.capacity()))
	}

	s := &w.reg.slots[idx]
	s.serial = attachmentSerial.Add(1)
	s.kind = kind
	s.watchFD = fd
	s.period = period

	if kind != KindInterval {
		if err := w.demux.Add(fd, slotToken(idx, false)); err != nil {
			w.reg.abort(idx)
			return nil, attachError(err, fd)
		}
	}
	if kind != KindNotification {
		timer, err := w.armTimer(kind, period, idx)
		if err != nil {
			if kind != KindInterval {
				if derr := w.demux.Remove(fd); derr != nil {
					w.logger.Warn("descriptor rollback failed", zap.Int("fd", fd), zap.Error(derr))
				}
			}
			w.reg.abort(idx)
			return nil, err
		}
		s.timer = timer
	}

	w.reg.commit(idx)
	w.observer.AttachmentAdded(kind)

	return &Guard{ws: w, setID: w.id, serial: s.serial, slot: idx}, nil
}

// armTimer builds and registers the kernel timer side of an attachment.
func (w *WaitSet) armTimer(kind AttachmentKind, period time.Duration, idx int) (*sysfd.Timer, error) {
	timer, err := sysfd.NewTimer()
	if err != nil {
		return nil, api.NewAttachmentError(api.CodeInternal, "timer allocation failed").WithCause(err)
	}
	if kind == KindInterval {
		err = timer.SetPeriodic(period)
	} else {
		err = timer.SetOneShot(period)
	}
	if err == nil {
		err = w.demux.Add(timer.FD(), slotToken(idx, true))
	}
	if err != nil {
		if cerr := timer.Close(); cerr != nil {
			w.logger.Warn("timer rollback failed", zap.Error(cerr))
		}
		return nil, api.NewAttachmentError(api.CodeInternal, "timer registration failed").WithCause(err)
	}
	return timer, nil
}

// attachError maps demultiplexer failures onto the attachment taxonomy.
func attachError(err error, fd int) *api.AttachmentError {
	switch {
	case errors.Is(err, reactor.ErrAlreadyRegistered):
		return api.NewAttachmentError(api.CodeAlreadyAttached,
			fmt.Sprintf("descriptor %d is already attached", fd)).WithCause(err)
	case errors.Is(err, reactor.ErrBadDescriptor):
		return api.NewAttachmentError(api.CodeInvalidDescriptor,
			fmt.Sprintf("descriptor %d cannot be attached", fd)).WithCause(err)
	}
	return api.NewAttachmentError(api.CodeInternal, "attachment registration failed").WithCause(err)
}

// detach tears down the attachment (slotIdx, serial). Invoked by guard
// release; failures are logged per the guard contract.
func (w *WaitSet) detach(slotIdx int, serial uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		w.logger.Debug("guard released after wait set close", zap.Uint64("serial", serial))
		return
	}
	s, ok := w.reg.lookup(slotIdx)
	if !ok || s.serial != serial {
		return
	}
	kind := s.kind
	w.teardownLocked(s)
	w.reg.release(slotIdx)
	w.observer.AttachmentRemoved(kind)
}

// teardownLocked deregisters a slot's descriptors and closes its timer.
func (w *WaitSet) teardownLocked(s *slot) {
	if s.kind != KindInterval && s.watchFD >= 0 {
		if err := w.demux.Remove(s.watchFD); err != nil {
			w.logger.Warn("descriptor deregistration failed", zap.Int("fd", s.watchFD), zap.Error(err))
		}
	}
	if s.timer != nil {
		if err := w.demux.Remove(s.timer.FD()); err != nil {
			w.logger.Warn("timer deregistration failed", zap.Error(err))
		}
		if err := s.timer.Close(); err != nil {
			w.logger.Warn("timer close failed", zap.Error(err))
		}
	}
}

// WaitAndProcess blocks until at least one attachment fires, a stop or
// termination request arrives, or the OS wait is interrupted. Every source
// ready at wake-up is dispatched through fn before the call returns.
// Spurious wakeups are retried internally and never observed by fn.
func (w *WaitSet) WaitAndProcess(fn func(AttachmentId)) (RunResult, error) {
	return w.cycle(fn, -1)
}

// TryWaitAndProcess dispatches whatever is ready without blocking,
// invoking fn zero or more times. Stop and termination requests are left
// pending for the next blocking wait to consume.
func (w *WaitSet) TryWaitAndProcess(fn func(AttachmentId)) error {
	_, err := w.cycle(fn, 0)
	return err
}

// Run drives blocking cycles until fn returns CallbackStop or a stop,
// termination or interrupt result ends the loop.
func (w *WaitSet) Run(fn func(AttachmentId) CallbackProgression) (RunResult, error) {
	for {
		stopped := false
		result, err := w.WaitAndProcess(func(id AttachmentId) {
			if stopped {
				return
			}
			if fn(id) == CallbackStop {
				stopped = true
			}
		})
		if err != nil {
			return result, err
		}
		if stopped || result != RunResultAllEventsHandled {
			return result, nil
		}
	}
}

func (w *WaitSet) cycle(fn func(AttachmentId), timeout time.Duration) (RunResult, error) {
	blocking := timeout < 0
	for {
		w.mu.Lock()
		if w.closed {
			w.mu.Unlock()
			return RunResultAllEventsHandled, api.NewRunError(api.CodeWaitSetClosed, "wait set is closed")
		}
		if w.reg.len() == 0 {
			w.mu.Unlock()
			return RunResultAllEventsHandled, api.NewRunError(api.CodeNoAttachments, "wait set has no attachments")
		}
		w.mu.Unlock()

		n, err := w.demux.Wait(w.events, timeout)
		if err != nil {
			if errors.Is(err, reactor.ErrInterrupted) {
				if blocking {
					w.observer.CycleFinished(RunResultInterrupt)
					return RunResultInterrupt, nil
				}
				return RunResultAllEventsHandled, nil
			}
			return RunResultAllEventsHandled, api.NewRunError(api.CodeInternal, "readiness wait failed").WithCause(err)
		}

		result := w.stage(n, blocking)
		dispatched := w.dispatch(fn)

		if !blocking {
			return RunResultAllEventsHandled, nil
		}
		if result != RunResultAllEventsHandled || dispatched > 0 {
			w.observer.CycleFinished(result)
			return result, nil
		}
		// Readiness evaporated before dispatch (raced guard release or an
		// already-consumed timer). Wait again; callers never observe the
		// spurious wakeup.
	}
}

// stage classifies raw readiness into queued handler invocations and a
// control outcome. Control wakeups are consumed only by blocking cycles.
// A termination request outranks a stop request seen in the same cycle.
func (w *WaitSet) stage(n int, blocking bool) RunResult {
	result := RunResultAllEventsHandled
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := 0; i < n; i++ {
		switch tok := w.events[i].Token; tok {
		case tokenStop:
			if !blocking {
				continue
			}
			if err := w.stopFD.Drain(); err != nil {
				w.logger.Warn("stop wakeup drain failed", zap.Error(err))
			}
			if result == RunResultAllEventsHandled {
				result = RunResultStopRequest
			}
		case tokenTermination:
			if !blocking {
				continue
			}
			if err := w.termFD.Drain(); err != nil {
				w.logger.Warn("termination wakeup drain failed", zap.Error(err))
			}
			result = RunResultTerminationRequest
		default:
			w.stageTrigger(tok)
		}
	}
	return result
}

// stageTrigger validates one slot readiness and queues its dispatch.
func (w *WaitSet) stageTrigger(tok uint64) {
	idx, timerSide := tokenSlot(tok)
	s, ok := w.reg.lookup(idx)
	if !ok {
		return
	}
	trigger := stagedTrigger{
		id:   AttachmentId{setID: w.id, serial: s.serial, origin: originEvent},
		kind: s.kind,
		slot: idx,
	}
	switch {
	case s.kind == KindInterval:
		// Interval ticks are elapsed periods, so they carry the
		// missed-deadline identity.
		trigger.id.origin = originDeadline
		if _, err := s.timer.Drain(); err != nil {
			w.logger.Warn("interval timer drain failed", zap.Error(err))
		}
	case s.kind == KindDeadline && timerSide:
		trigger.id.origin = originDeadline
		if _, err := s.timer.Drain(); err != nil {
			w.logger.Warn("deadline timer drain failed", zap.Error(err))
		}
		w.rearmLocked(s)
	case s.kind == KindDeadline:
		// Activity on the watched descriptor restarts the deadline window.
		w.rearmLocked(s)
	}
	w.staged.Add(trigger)
}

// rearmLocked restarts a deadline countdown from now.
func (w *WaitSet) rearmLocked(s *slot) {
	if err := s.timer.SetOneShot(s.period); err != nil {
		w.logger.Error("deadline rearm failed", zap.Error(err))
	}
}

// dispatch drains the staged queue through fn, suppressing triggers whose
// attachment was detached after staging.
func (w *WaitSet) dispatch(fn func(AttachmentId)) int {
	dispatched := 0
	for w.staged.Length() > 0 {
		t := w.staged.Remove().(stagedTrigger)
		w.mu.Lock()
		live := w.reg.serialLive(t.slot, t.id.serial)
		w.mu.Unlock()
		if !live {
			continue
		}
		w.observer.Triggered(t.kind, t.id.origin == originDeadline)
		dispatched++
		fn(t.id)
	}
	return dispatched
}

// Close detaches everything and releases the OS resources. Guards released
// after Close become logged no-ops. Close is idempotent.
func (w *WaitSet) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for i := range w.reg.slots {
		s := &w.reg.slots[i]
		if !s.active {
			continue
		}
		kind := s.kind
		w.teardownLocked(s)
		w.reg.release(i)
		w.observer.AttachmentRemoved(kind)
	}
	w.mu.Unlock()

	if w.bridge != nil {
		w.bridge.Close()
	}
	return w.closeOS()
}

// closeOS closes the demultiplexer and wakeup descriptors, keeping the
// first failure.
func (w *WaitSet) closeOS() error {
	var first error
	if err := w.demux.Close(); err != nil {
		first = err
	}
	if w.stopFD != nil {
		if err := w.stopFD.Close(); err != nil && first == nil {
			first = err
		}
	}
	if w.termFD != nil {
		if err := w.termFD.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
