// File: waitset/signal.go
// Author: momentics <momentics@gmail.com>
//
// Bridges SIGINT/SIGTERM into an eventfd wakeup so the wait loop observes
// termination requests through the same readiness path as everything else.

package waitset

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/momentics/hioload-waitset/internal/sysfd"
)

// signalBridge forwards termination signals into the target eventfd.
type signalBridge struct {
	ch   chan os.Signal
	done chan struct{}
	wg   sync.WaitGroup
}

func newSignalBridge(target *sysfd.EventFD, logger *zap.Logger) *signalBridge {
	b := &signalBridge{
		ch:   make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(b.ch, syscall.SIGINT, syscall.SIGTERM)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case sig := <-b.ch:
				logger.Info("termination signal received", zap.String("signal", sig.String()))
				if err := target.Notify(); err != nil {
					logger.Error("termination wakeup failed", zap.Error(err))
				}
			case <-b.done:
				return
			}
		}
	}()
	return b
}

// Close restores signal disposition and stops the forwarding goroutine.
func (b *signalBridge) Close() {
	signal.Stop(b.ch)
	close(b.done)
	b.wg.Wait()
}
