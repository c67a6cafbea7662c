// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package fake provides in-memory reactor and wake-signal doubles for
// deterministic sink tests: readiness events are scripted instead of
// produced by the kernel.
package fake

import (
	"sync"

	"github.com/momentics/hioload-sink/api"
)

// Reactor is a scriptable api.Reactor. Tests queue readiness events
// with Feed; Poll hands them out. Registration state and rearm calls
// are recorded for assertions.
type Reactor struct {
	mu         sync.Mutex
	queued     []api.ReadinessEvent
	Registered map[int]api.Interest
	Rearms     []int
	closed     bool
}

// NewReactor creates an empty fake reactor.
func NewReactor() *Reactor {
	return &Reactor{Registered: make(map[int]api.Interest)}
}

// Feed queues ev for the next Poll.
func (r *Reactor) Feed(ev api.ReadinessEvent) {
	r.mu.Lock()
	r.queued = append(r.queued, ev)
	r.mu.Unlock()
}

func (r *Reactor) RegisterDescriptor(fd int, interest api.Interest, oneShot bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Registered[fd]; ok {
		return api.ErrAlreadyRegistered
	}
	r.Registered[fd] = interest
	return nil
}

func (r *Reactor) RearmDescriptor(fd int, interest api.Interest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Registered[fd]; !ok {
		return api.ErrNotRegistered
	}
	r.Rearms = append(r.Rearms, fd)
	return nil
}

func (r *Reactor) DeregisterDescriptor(fd int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Registered[fd]; !ok {
		return api.ErrNotRegistered
	}
	delete(r.Registered, fd)
	return nil
}

// Poll pops queued events, never blocking regardless of timeout.
func (r *Reactor) Poll(events []api.ReadinessEvent, timeoutMs int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := copy(events, r.queued)
	r.queued = r.queued[n:]
	return n, nil
}

// Fd returns a placeholder descriptor.
func (r *Reactor) Fd() int { return -1 }

func (r *Reactor) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// Closed reports whether Close was called.
func (r *Reactor) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// RearmCount returns how many times fd was re-armed.
func (r *Reactor) RearmCount(fd int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.Rearms {
		if f == fd {
			n++
		}
	}
	return n
}
