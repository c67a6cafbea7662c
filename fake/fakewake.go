// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import "sync/atomic"

// WakeSignal is an in-memory api.WakeSignal double: Raise sets a flag,
// PollAndClear consumes it. The descriptor is a fixed placeholder so
// tests can script readiness events against it.
type WakeSignal struct {
	FakeFd int
	raised atomic.Bool
	closed atomic.Bool
}

// NewWakeSignal creates a cleared signal reporting fd as its descriptor.
func NewWakeSignal(fd int) *WakeSignal {
	return &WakeSignal{FakeFd: fd}
}

func (w *WakeSignal) Fd() int { return w.FakeFd }

func (w *WakeSignal) Raise() error {
	w.raised.Store(true)
	return nil
}

func (w *WakeSignal) PollAndClear() (bool, error) {
	return w.raised.Swap(false), nil
}

func (w *WakeSignal) Close() error {
	w.closed.Store(true)
	return nil
}

// Raised reports the flag without clearing it.
func (w *WakeSignal) Raised() bool { return w.raised.Load() }

// Closed reports whether Close was called.
func (w *WakeSignal) Closed() bool { return w.closed.Load() }
