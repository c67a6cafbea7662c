//go:build !linux
// +build !linux

// File: core/concurrency/wakefd_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub wake signal for platforms without eventfd support.

package concurrency

import "github.com/momentics/hioload-sink/api"

// WakeFd is unavailable on this platform.
type WakeFd struct{}

// NewWakeFd reports the platform as unsupported.
func NewWakeFd() (*WakeFd, error) {
	return nil, api.ErrNotSupported
}

func (w *WakeFd) Fd() int { return -1 }

func (w *WakeFd) Raise() error { return api.ErrNotSupported }

func (w *WakeFd) PollAndClear() (bool, error) { return false, api.ErrNotSupported }

func (w *WakeFd) Close() error { return api.ErrNotSupported }
