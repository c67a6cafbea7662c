// File: reactor/loop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-goroutine dispatch loop driving registered event sources.

package reactor

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/momentics/hioload-sink/api"
	"github.com/momentics/hioload-sink/core/concurrency"
)

// Loop owns a reactor and dispatches readiness events to registered
// event sources from one goroutine. That goroutine is the I/O thread of
// every source added to the loop: sources rely on ProcessReadiness
// being invoked from a single stable goroutine.
type Loop struct {
	r       api.Reactor
	wake    api.WakeSignal
	mu      sync.Mutex
	sources map[int]api.EventSource
	quitCh  chan struct{}
	doneCh  chan struct{}
	running atomic.Bool
	log     zerolog.Logger
}

// LoopOption customizes loop construction.
type LoopOption func(*Loop)

// WithLoopLogger attaches a structured logger; default is a no-op.
func WithLoopLogger(log zerolog.Logger) LoopOption {
	return func(l *Loop) { l.log = log }
}

// NewLoop builds a loop around r. The loop registers an internal wake
// signal with r so Stop can interrupt a blocked Poll.
func NewLoop(r api.Reactor, opts ...LoopOption) (*Loop, error) {
	wake, err := concurrency.NewWakeFd()
	if err != nil {
		return nil, err
	}
	l := &Loop{
		r:       r,
		wake:    wake,
		sources: make(map[int]api.EventSource),
		quitCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := r.RegisterDescriptor(wake.Fd(), api.InterestRead, false); err != nil {
		_ = wake.Close()
		return nil, err
	}
	return l, nil
}

// Add registers src with the loop's reactor under read interest and
// starts dispatching its readiness events.
func (l *Loop) Add(src api.EventSource) error {
	if err := l.r.RegisterDescriptor(src.Fd(), api.InterestRead, false); err != nil {
		return err
	}
	l.mu.Lock()
	l.sources[src.Fd()] = src
	l.mu.Unlock()
	return nil
}

// Remove stops dispatching to src. Deregistration failures are ignored
// because a source that closed its descriptor already left the epoll
// interest set.
func (l *Loop) Remove(src api.EventSource) {
	l.mu.Lock()
	delete(l.sources, src.Fd())
	l.mu.Unlock()
	_ = l.r.DeregisterDescriptor(src.Fd())
}

func (l *Loop) lookup(fd int) api.EventSource {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sources[fd]
}

// Run dispatches until Stop is called. It must be invoked from the
// goroutine that will serve as the I/O thread of the added sources.
func (l *Loop) Run() {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	defer func() {
		close(l.doneCh)
		l.running.Store(false)
	}()

	events := make([]api.ReadinessEvent, 64)
	for {
		select {
		case <-l.quitCh:
			return
		default:
		}

		n, err := l.r.Poll(events, -1)
		if err != nil {
			l.log.Error().Err(err).Msg("reactor poll failed, loop exiting")
			return
		}
		for i := 0; i < n; i++ {
			ev := events[i]
			if ev.Fd == l.wake.Fd() {
				_, _ = l.wake.PollAndClear()
				continue
			}
			src := l.lookup(ev.Fd)
			if src == nil {
				continue
			}
			if perr := src.ProcessReadiness(ev); perr != nil {
				if perr == api.ErrSinkClosed {
					l.Remove(src)
					continue
				}
				l.log.Warn().Err(perr).Int("fd", ev.Fd).Msg("event source failed")
			}
		}
	}
}

// Stop signals Run to exit and waits for it to drain.
func (l *Loop) Stop() {
	select {
	case <-l.quitCh:
	default:
		close(l.quitCh)
	}
	_ = l.wake.Raise()
	if l.running.Load() {
		<-l.doneCh
	}
}

// Close releases the wake signal and the underlying reactor. Call only
// after Stop.
func (l *Loop) Close() error {
	_ = l.wake.Close()
	return l.r.Close()
}
