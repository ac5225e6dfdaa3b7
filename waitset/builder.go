// File: waitset/builder.go
// Author: momentics <momentics@gmail.com>
//
// Single-use builder assembling a WaitSet and its OS resources.

package waitset

import (
	"errors"
	"sync/atomic"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/momentics/hioload-waitset/api"
	"github.com/momentics/hioload-waitset/internal/sysfd"
	"github.com/momentics/hioload-waitset/logs"
	"github.com/momentics/hioload-waitset/reactor"
)

// DefaultCapacity bounds concurrent attachments unless overridden.
// Capacities beyond a few thousand descriptors are better served by
// sharding across wait sets.
const DefaultCapacity = 256

var waitSetSerial atomic.Uint64

// Builder assembles a WaitSet. The zero value is ready to use; every
// builder creates at most one wait set.
type Builder struct {
	capacity int
	mode     SignalHandlingMode
	logger   *zap.Logger
	observer Observer
	created  bool
}

// NewBuilder returns a builder primed with defaults.
func NewBuilder() *Builder {
	return &Builder{}
}

// Capacity overrides the maximum number of concurrent attachments.
// Values below one select DefaultCapacity.
func (b *Builder) Capacity(n int) *Builder {
	b.capacity = n
	return b
}

// SignalHandling selects how SIGINT and SIGTERM surface from waits.
func (b *Builder) SignalHandling(mode SignalHandlingMode) *Builder {
	b.mode = mode
	return b
}

// Logger routes the wait set's diagnostics to l instead of the library
// logger.
func (b *Builder) Logger(l *zap.Logger) *Builder {
	b.logger = l
	return b
}

// Observer wires instrumentation callbacks into the wait set lifecycle.
func (b *Builder) Observer(o Observer) *Builder {
	b.observer = o
	return b
}

// Create materializes the wait set. Each builder creates at most once.
func (b *Builder) Create() (*WaitSet, error) {
	if b.created {
		return nil, api.NewCreateError(api.CodeInternal, "builder already used")
	}

	capacity := b.capacity
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	logger := b.logger
	if logger == nil {
		logger = logs.Logger()
	}
	observer := b.observer
	if observer == nil {
		observer = nopObserver{}
	}

	demux, err := reactor.NewDemultiplexer()
	if err != nil {
		return nil, createError("readiness demultiplexer unavailable", err)
	}

	w := &WaitSet{
		id:       waitSetSerial.Add(1),
		demux:    demux,
		mode:     b.mode,
		logger:   logger,
		observer: observer,
		reg:      newRegistry(capacity),
		events:   make([]reactor.Event, 2*capacity+2),
		staged:   queue.New(),
	}

	w.stopFD, err = sysfd.NewEventFD()
	if err != nil {
		_ = w.closeOS()
		return nil, createError("stop wakeup unavailable", err)
	}
	if err := demux.Add(w.stopFD.FD(), tokenStop); err != nil {
		_ = w.closeOS()
		return nil, createError("stop wakeup registration failed", err)
	}

	if b.mode == SignalHandlingTermination {
		w.termFD, err = sysfd.NewEventFD()
		if err != nil {
			_ = w.closeOS()
			return nil, createError("termination wakeup unavailable", err)
		}
		if err := demux.Add(w.termFD.FD(), tokenTermination); err != nil {
			_ = w.closeOS()
			return nil, createError("termination wakeup registration failed", err)
		}
		w.bridge = newSignalBridge(w.termFD, logger)
	}

	b.created = true
	return w, nil
}

// createError maps low-level failures onto the creation taxonomy.
func createError(message string, cause error) *api.CreateError {
	code := api.CodeInternal
	if errors.Is(cause, api.ErrUnsupportedPlatform) {
		code = api.CodeUnsupportedPlatform
	}
	return api.NewCreateError(code, message).WithCause(cause)
}
