//go:build linux
// +build linux

// File: core/concurrency/wakefd_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// eventfd(2)-backed wake signal. Any goroutine raises; the owner polls
// the descriptor and clears. Multiple raises coalesce into one wake.

package concurrency

import (
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// WakeFd is a cross-goroutine wake signal backed by a non-blocking
// eventfd. The descriptor stays readable while the counter is non-zero,
// so it composes with level-triggered reactor registrations.
//
// Raise and Close synchronize on an internal lock: a raise racing the
// owner's Close is a silent no-op rather than a write to a descriptor
// number the process may already have reused.
type WakeFd struct {
	mu     sync.RWMutex
	fd     int
	closed bool
}

// NewWakeFd creates a wake signal with a zeroed counter.
func NewWakeFd() (*WakeFd, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("eventfd create: %w", err)
	}
	return &WakeFd{fd: fd}, nil
}

// Fd returns the pollable descriptor.
func (w *WakeFd) Fd() int {
	return w.fd
}

// Raise increments the counter, making the descriptor readable. Safe
// from any goroutine. A full counter already guarantees a pending wake,
// so EAGAIN is treated as success. Raising a closed signal is a no-op:
// the owner that closed it has nothing left to wake.
func (w *WakeFd) Raise() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return nil
	}
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], 1)
	for {
		_, err := unix.Write(w.fd, buf[:])
		switch err {
		case nil, unix.EAGAIN:
			return nil
		case unix.EINTR:
			continue
		default:
			return fmt.Errorf("eventfd raise: %w", err)
		}
	}
}

// PollAndClear consumes the counter and reports whether the signal was
// raised since the last clear. Owner goroutine only.
func (w *WakeFd) PollAndClear() (bool, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return false, nil
	}
	var buf [8]byte
	for {
		_, err := unix.Read(w.fd, buf[:])
		switch err {
		case nil:
			return true, nil
		case unix.EAGAIN:
			return false, nil
		case unix.EINTR:
			continue
		default:
			return false, fmt.Errorf("eventfd clear: %w", err)
		}
	}
}

// Close releases the eventfd. Idempotent; raisers still in flight
// finish against the live descriptor before it closes.
func (w *WakeFd) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return unix.Close(w.fd)
}
