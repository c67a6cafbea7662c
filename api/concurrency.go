// File: api/concurrency.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-thread hand-off primitives consumed by the descriptor sink.

package api

// ByteQueue is a multi-producer, single-consumer queue of opaque byte
// payloads. Any goroutine may Push; exactly one consumer goroutine may
// DrainAll. Payload order is arrival order: a single producer's
// payloads are never reordered relative to each other.
type ByteQueue interface {
	// Push enqueues p. Safe for concurrent producers; never blocks.
	Push(p []byte)

	// DrainAll removes and returns every queued payload in enqueue
	// order. Consumer goroutine only.
	DrainAll() [][]byte

	// Len reports the approximate number of queued payloads.
	Len() int
}

// WakeSignal lets any goroutine interrupt the consumer's poll wait.
// Raise is multi-producer safe; PollAndClear belongs to the owner.
type WakeSignal interface {
	// Fd exposes the pollable descriptor that becomes readable while
	// the signal is raised.
	Fd() int

	// Raise marks the signal from any goroutine. Raising an already
	// raised signal coalesces.
	Raise() error

	// PollAndClear consumes the signal, reporting whether it was
	// raised. Owner goroutine only.
	PollAndClear() (bool, error)

	// Close releases the underlying descriptor.
	Close() error
}
