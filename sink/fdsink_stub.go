//go:build !linux
// +build !linux

// File: sink/fdsink_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub descriptor sink for platforms without epoll/eventfd support.

package sink

import "github.com/momentics/hioload-sink/api"

// FdOutputSink is unavailable on this platform.
type FdOutputSink struct{}

// NewFdOutputSink reports the platform as unsupported.
func NewFdOutputSink(onHangup api.OnHangup, onClose api.OnClose, opts ...FdSinkOption) (*FdOutputSink, error) {
	return nil, api.ErrNotSupported
}

func (s *FdOutputSink) Init(outputFd int) error { return api.ErrNotSupported }

func (s *FdOutputSink) Fd() int { return -1 }

func (s *FdOutputSink) State() api.SinkState { return api.SinkClosed }

func (s *FdOutputSink) Write(p []byte) bool { return false }

func (s *FdOutputSink) RequestClose() {}

func (s *FdOutputSink) ProcessReadiness(ev api.ReadinessEvent) error { return api.ErrNotSupported }
