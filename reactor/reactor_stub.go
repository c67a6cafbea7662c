//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub factory for platforms without an epoll-style multiplexer.

package reactor

import "github.com/momentics/hioload-sink/api"

// New reports the platform as unsupported.
func New() (api.Reactor, error) {
	return nil, api.ErrNotSupported
}
