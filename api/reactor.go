// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral reactor contract for descriptor readiness dispatch.

package api

// Interest selects which readiness conditions a registration watches.
type Interest uint32

const (
	InterestRead Interest = 1 << iota
	InterestWrite
)

// ReadinessEvent describes one readiness notification for a registered
// descriptor. Hangup covers both peer close and error conditions.
type ReadinessEvent struct {
	Fd       int
	Readable bool
	Writable bool
	Hangup   bool
}

// Reactor multiplexes descriptor readiness. Registration may be
// one-shot: interest disables itself after firing once and must be
// re-armed explicitly.
type Reactor interface {
	// RegisterDescriptor adds fd to the watch set.
	RegisterDescriptor(fd int, interest Interest, oneShot bool) error

	// RearmDescriptor re-enables one-shot interest after it fired.
	RearmDescriptor(fd int, interest Interest) error

	// DeregisterDescriptor removes fd from the watch set.
	DeregisterDescriptor(fd int) error

	// Poll fills events with ready descriptors and returns the count.
	// timeoutMs < 0 blocks indefinitely, 0 polls without blocking.
	Poll(events []ReadinessEvent, timeoutMs int) (int, error)

	// Fd exposes the multiplexer's own pollable descriptor so a reactor
	// instance can be nested inside an outer reactor.
	Fd() int

	// Close releases the multiplexer.
	Close() error
}

// EventSource is anything an event loop can drive: it exposes a
// pollable descriptor and a processing entry point invoked when that
// descriptor becomes ready.
type EventSource interface {
	// Fd returns the descriptor the loop should watch.
	Fd() int

	// ProcessReadiness handles one readiness notification. Returning
	// ErrSinkClosed tells the loop the source is finished and must be
	// removed; any other error is reported but the source stays.
	ProcessReadiness(ev ReadinessEvent) error
}
