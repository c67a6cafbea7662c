// File: api/sink.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Medium-independent sink contracts for unidirectional data flow.

package api

// SinkState is the lifecycle state of an output sink. Transitions are
// monotonic: SinkOpen -> SinkClosing -> SinkClosed, never backward.
type SinkState int32

const (
	SinkOpen SinkState = iota
	SinkClosing
	SinkClosed
)

// String returns a human-readable state name for logs and probes.
func (s SinkState) String() string {
	switch s {
	case SinkOpen:
		return "open"
	case SinkClosing:
		return "closing"
	case SinkClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// OnWrite delivers a buffer to the underlying medium and returns the
// number of bytes the medium accepted.
type OnWrite func(p []byte) int

// OnClose is invoked exactly once, when a sink reaches SinkClosed.
type OnClose func()

// OnHangup is invoked when the peer end of a descriptor closes.
type OnHangup func()

// OutputSink accepts bytes to send, independent of medium. The provider
// is responsible for making the target resource available and for
// closing it; it also decides thread safety and blocking semantics.
type OutputSink interface {
	// Write delivers p to the medium. Returns false when the sink is no
	// longer accepting data; this is a defined no-op, not an error.
	// Implementations backed by a queue may return true once p is
	// accepted for delivery, before it is confirmed sent.
	Write(p []byte) bool

	// RequestClose is idempotent and callable by either end. After the
	// close completes, Write never succeeds again and OnClose has fired
	// exactly once regardless of how many callers raced here.
	RequestClose()

	// State reports the current lifecycle state.
	State() SinkState
}

// OnData receives a buffer from an input medium.
type OnData func(p []byte)

// InputSink receives bytes from elsewhere. Stateless beyond its
// callbacks; both methods are required, so a missing implementation is
// a compile-time error rather than a runtime throw. An InputSink may
// write to an OutputSink when piping data between two goroutines or
// descriptors.
type InputSink interface {
	// NotifyReceived transfers received data to the sink. The sink must
	// tolerate being invoked from the goroutine owning the input medium.
	NotifyReceived(p []byte)

	// NotifyClosed signals that no more data will be received.
	NotifyClosed()
}
