// File: sink/output.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Default synchronous output sink, usable by composition wherever the
// owner handles thread safety and blocking semantics itself.

package sink

import (
	"sync/atomic"

	"github.com/momentics/hioload-sink/api"
)

// SyncOutputSink delivers writes synchronously through an OnWrite
// callback. It carries no buffering: a write either reaches the medium
// during the call or it does not.
type SyncOutputSink struct {
	state   atomic.Int32
	onWrite api.OnWrite
	onClose api.OnClose
}

// NewSyncOutputSink wires a sink to the medium's write callback.
// onClose may be nil.
func NewSyncOutputSink(onWrite api.OnWrite, onClose api.OnClose) *SyncOutputSink {
	s := &SyncOutputSink{onWrite: onWrite, onClose: onClose}
	s.state.Store(int32(api.SinkOpen))
	return s
}

// Write delivers p via OnWrite and reports whether the medium accepted
// at least one byte. Writing a non-open sink is a defined no-op.
func (s *SyncOutputSink) Write(p []byte) bool {
	if s.State() != api.SinkOpen {
		return false
	}
	return s.onWrite(p) > 0
}

// RequestClose closes the sink. Concurrent callers race on a single
// state transition, so OnClose fires exactly once.
func (s *SyncOutputSink) RequestClose() {
	if !s.state.CompareAndSwap(int32(api.SinkOpen), int32(api.SinkClosing)) {
		return
	}
	s.state.Store(int32(api.SinkClosed))
	if s.onClose != nil {
		s.onClose()
	}
}

// State reports the lifecycle state.
func (s *SyncOutputSink) State() api.SinkState {
	return api.SinkState(s.state.Load())
}
