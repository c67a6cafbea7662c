//go:build linux
// +build linux

// File: sink/fdsink_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Non-blocking output sink bound to a file descriptor. Producers on any
// goroutine hand bytes to the I/O goroutine through an MPSC queue and a
// wake signal; the I/O goroutine drives partial writes to completion
// and owns the close protocol.

package sink

import (
	"fmt"
	"sync/atomic"

	"github.com/gammazero/deque"
	"github.com/petermattis/goid"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-sink/api"
	"github.com/momentics/hioload-sink/core/concurrency"
	"github.com/momentics/hioload-sink/pool"
	"github.com/momentics/hioload-sink/reactor"
)

// FdOutputSink sends data to an owned output descriptor without ever
// blocking a producer. It registers the descriptor and a wake signal
// with its own reactor instance, and exposes that reactor's descriptor
// through Fd so an outer loop can nest it. ProcessReadiness is the
// single entry point for all descriptor I/O; the goroutine invoking it
// is the sink's I/O goroutine and the only mutator of the local buffer,
// the descriptor and the transition into SinkClosed.
type FdOutputSink struct {
	log      zerolog.Logger
	onHangup api.OnHangup
	onClose  api.OnClose

	state       atomic.Int32
	finalized   atomic.Bool
	initialized atomic.Bool
	ioGID       atomic.Int64

	poller  api.Reactor
	wake    api.WakeSignal
	pending api.ByteQueue
	chunks  *pool.ChunkPool

	outputFd int

	// local is the flush buffer: chunks not yet accepted by outputFd,
	// in delivery order. I/O goroutine only.
	local deque.Deque[[]byte]

	// writeFd performs one non-blocking write; swapped in tests.
	writeFd func(fd int, p []byte) (int, error)
}

// NewFdOutputSink builds an uninitialized sink. onHangup and onClose
// may be nil. Call Init with an open descriptor before use.
func NewFdOutputSink(onHangup api.OnHangup, onClose api.OnClose, opts ...FdSinkOption) (*FdOutputSink, error) {
	cfg := fdSinkConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.poller == nil {
		p, err := reactor.New()
		if err != nil {
			return nil, err
		}
		cfg.poller = p
	}
	if cfg.wake == nil {
		w, err := concurrency.NewWakeFd()
		if err != nil {
			_ = cfg.poller.Close()
			return nil, err
		}
		cfg.wake = w
	}
	if cfg.pending == nil {
		cfg.pending = concurrency.NewChunkQueue()
	}
	if cfg.chunks == nil {
		cfg.chunks = pool.NewChunkPool(cfg.maxChunk)
	}

	s := &FdOutputSink{
		log:      cfg.log,
		onHangup: onHangup,
		onClose:  onClose,
		poller:   cfg.poller,
		wake:     cfg.wake,
		pending:  cfg.pending,
		chunks:   cfg.chunks,
		outputFd: -1,
		writeFd:  unix.Write,
	}
	s.state.Store(int32(api.SinkOpen))
	return s, nil
}

// Init binds the output descriptor and registers it, together with the
// wake descriptor, with the sink's reactor. The output descriptor is
// switched to non-blocking mode and registered under one-shot writable
// interest; the wake descriptor stays level-triggered readable.
func (s *FdOutputSink) Init(outputFd int) error {
	if !s.initialized.CompareAndSwap(false, true) {
		return api.ErrAlreadyInitialized
	}
	if err := unix.SetNonblock(outputFd, true); err != nil {
		s.initialized.Store(false)
		return fmt.Errorf("set nonblock fd=%d: %w", outputFd, err)
	}
	if err := s.poller.RegisterDescriptor(s.wake.Fd(), api.InterestRead, false); err != nil {
		s.initialized.Store(false)
		return err
	}
	if err := s.poller.RegisterDescriptor(outputFd, api.InterestWrite, true); err != nil {
		_ = s.poller.DeregisterDescriptor(s.wake.Fd())
		s.initialized.Store(false)
		return err
	}
	s.outputFd = outputFd
	s.log.Debug().Int("fd", outputFd).Msg("sink initialized")
	return nil
}

// Fd exposes the sink's reactor descriptor so an outer event loop can
// watch it; it becomes readable whenever the wake signal is raised or
// the output descriptor reports readiness.
func (s *FdOutputSink) Fd() int {
	return s.poller.Fd()
}

// State reports the lifecycle state.
func (s *FdOutputSink) State() api.SinkState {
	return api.SinkState(s.state.Load())
}

// Write hands p to the sink. On the I/O goroutine the bytes join the
// local buffer and are flushed immediately; on any other goroutine they
// are queued and the wake signal is raised, with true returned once the
// bytes are accepted for delivery, before they are confirmed sent.
// A non-open sink rejects the write with false and no side effect.
func (s *FdOutputSink) Write(p []byte) bool {
	if s.State() != api.SinkOpen {
		return false
	}
	if len(p) == 0 {
		return true
	}
	c := s.chunks.Clone(p)
	if goid.Get() == s.ioGID.Load() {
		s.local.PushBack(c)
		s.flushOrFinalize()
		return true
	}
	s.pending.Push(c)
	if err := s.wake.Raise(); err != nil {
		s.log.Debug().Err(err).Msg("wake raise after close")
	}
	return true
}

// RequestClose is idempotent and callable from either end. Bytes
// already accepted are still flushed; new writes are refused. The close
// finalizes on the I/O goroutine once the buffers drain, or inline when
// the sink was never initialized.
func (s *FdOutputSink) RequestClose() {
	if !s.state.CompareAndSwap(int32(api.SinkOpen), int32(api.SinkClosing)) {
		return
	}
	if !s.initialized.Load() {
		s.finalize()
		return
	}
	if goid.Get() == s.ioGID.Load() {
		s.drainPending()
		s.flushOrFinalize()
		return
	}
	if err := s.wake.Raise(); err != nil {
		s.log.Debug().Err(err).Msg("wake raise during close")
	}
}

// ProcessReadiness is the reactor entry point. It polls the sink's own
// reactor without blocking and handles whichever of the wake or output
// descriptors fired. Returns api.ErrSinkClosed once the sink finalized
// so a dispatch loop drops it.
func (s *FdOutputSink) ProcessReadiness(_ api.ReadinessEvent) error {
	s.ioGID.Store(goid.Get())
	if s.State() == api.SinkClosed {
		return api.ErrSinkClosed
	}

	var events [4]api.ReadinessEvent
	n, err := s.poller.Poll(events[:], 0)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		ev := events[i]
		switch ev.Fd {
		case s.wake.Fd():
			if _, werr := s.wake.PollAndClear(); werr != nil {
				s.log.Warn().Err(werr).Msg("wake clear failed")
			}
			s.drainPending()
			s.flushOrFinalize()
		case s.outputFd:
			if ev.Hangup {
				s.handleHangup()
				return api.ErrSinkClosed
			}
			if ev.Writable {
				s.flushOrFinalize()
			}
		}
		if s.State() == api.SinkClosed {
			return api.ErrSinkClosed
		}
	}
	return nil
}

// drainPending moves queued producer chunks into the local buffer,
// preserving queue arrival order. I/O goroutine only.
func (s *FdOutputSink) drainPending() {
	chunks := s.pending.DrainAll()
	for _, c := range chunks {
		s.local.PushBack(c)
	}
	if len(chunks) > 0 {
		s.log.Debug().Int("chunks", len(chunks)).Msg("drained pending queue")
	}
}

// flushOrFinalize writes as much of the local buffer as the descriptor
// accepts. A partial or zero-progress write re-arms one-shot writable
// interest and waits; a hard write error is a peer termination. When
// the buffer empties and a close was requested, the sink finalizes.
func (s *FdOutputSink) flushOrFinalize() {
	for s.local.Len() > 0 {
		chunk := s.local.Front()
		n, err := s.writeFd(s.outputFd, chunk)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if err == unix.EAGAIN {
				s.rearmOutput()
				return
			}
			s.log.Debug().Err(err).Msg("descriptor write failed, treating as hangup")
			s.handleHangup()
			return
		}
		switch {
		case n >= len(chunk):
			s.local.PopFront()
			s.chunks.Recycle(chunk)
		case n > 0:
			s.local.PopFront()
			s.local.PushFront(chunk[n:])
			s.rearmOutput()
			return
		default:
			// Zero progress on a writable descriptor is transient.
			s.rearmOutput()
			return
		}
	}
	if s.State() == api.SinkClosing {
		s.finalize()
	}
}

func (s *FdOutputSink) rearmOutput() {
	if err := s.poller.RearmDescriptor(s.outputFd, api.InterestWrite); err != nil {
		s.log.Warn().Err(err).Int("fd", s.outputFd).Msg("rearm failed")
	}
}

// handleHangup surfaces the peer termination, then forces closure.
// Buffered bytes are discarded: the peer cannot receive them. The sink
// leaves SinkOpen and drops its buffers before OnHangup runs, so a
// callback that re-enters Write or RequestClose hits the rejected-write
// and idempotent-close paths instead of flushing the dead descriptor
// again. I/O goroutine only.
func (s *FdOutputSink) handleHangup() {
	s.state.CompareAndSwap(int32(api.SinkOpen), int32(api.SinkClosing))
	s.local.Clear()
	s.pending.DrainAll()
	if s.onHangup != nil {
		s.onHangup()
	}
	s.finalize()
}

// finalize deregisters both descriptors, releases them and fires
// OnClose exactly once. Reachable only from the I/O goroutine, or
// inline for a sink that never had one.
func (s *FdOutputSink) finalize() {
	if !s.finalized.CompareAndSwap(false, true) {
		return
	}
	if s.initialized.Load() && s.outputFd >= 0 {
		_ = s.poller.DeregisterDescriptor(s.outputFd)
		_ = s.poller.DeregisterDescriptor(s.wake.Fd())
	}
	if s.outputFd >= 0 {
		_ = unix.Close(s.outputFd)
	}
	_ = s.wake.Close()
	_ = s.poller.Close()
	s.state.Store(int32(api.SinkClosed))
	s.log.Debug().Msg("sink finalized")
	if s.onClose != nil {
		s.onClose()
	}
}
