// File: sink/input.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Trivial input sink variants: discard-everything and callback-forwarding.

package sink

import "github.com/momentics/hioload-sink/api"

// NullInputSink receives and discards.
type NullInputSink struct{}

// NewNullInputSink creates a discarding input sink.
func NewNullInputSink() *NullInputSink {
	return &NullInputSink{}
}

// NotifyReceived discards p.
func (s *NullInputSink) NotifyReceived(p []byte) {}

// NotifyClosed is a no-op.
func (s *NullInputSink) NotifyClosed() {}

// CallbackInputSink forwards received data to a callback. It owns no
// buffering and tolerates invocation from the goroutine owning the
// input medium.
type CallbackInputSink struct {
	onData  api.OnData
	onClose api.OnClose
}

// NewCallbackInputSink wires the sink to onData; onClose may be nil.
func NewCallbackInputSink(onData api.OnData, onClose api.OnClose) *CallbackInputSink {
	return &CallbackInputSink{onData: onData, onClose: onClose}
}

// NotifyReceived forwards p to the data callback.
func (s *CallbackInputSink) NotifyReceived(p []byte) {
	s.onData(p)
}

// NotifyClosed forwards to the close callback when present.
func (s *CallbackInputSink) NotifyClosed() {
	if s.onClose != nil {
		s.onClose()
	}
}
