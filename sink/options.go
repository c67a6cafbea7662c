// File: sink/options.go
// Package sink defines functional options for the descriptor sink.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sink

import (
	"github.com/rs/zerolog"

	"github.com/momentics/hioload-sink/api"
	"github.com/momentics/hioload-sink/pool"
)

// FdSinkOption customizes descriptor sink construction.
type FdSinkOption func(*fdSinkConfig)

type fdSinkConfig struct {
	log      zerolog.Logger
	poller   api.Reactor
	wake     api.WakeSignal
	pending  api.ByteQueue
	chunks   *pool.ChunkPool
	maxChunk int
}

// WithSinkLogger attaches a structured logger; default is a no-op.
func WithSinkLogger(log zerolog.Logger) FdSinkOption {
	return func(c *fdSinkConfig) { c.log = log }
}

// WithSinkReactor injects the readiness multiplexer the sink registers
// its descriptors with. Default is a dedicated platform reactor. The
// sink takes ownership and closes it on finalization.
func WithSinkReactor(r api.Reactor) FdSinkOption {
	return func(c *fdSinkConfig) { c.poller = r }
}

// WithSinkWakeSignal injects the cross-goroutine wake signal. The sink
// takes ownership and closes it on finalization.
func WithSinkWakeSignal(w api.WakeSignal) FdSinkOption {
	return func(c *fdSinkConfig) { c.wake = w }
}

// WithSinkQueue injects the pending cross-goroutine queue.
func WithSinkQueue(q api.ByteQueue) FdSinkOption {
	return func(c *fdSinkConfig) { c.pending = q }
}

// WithSinkChunkLimit caps the size of pooled copy chunks.
func WithSinkChunkLimit(maxChunk int) FdSinkOption {
	return func(c *fdSinkConfig) { c.maxChunk = maxChunk }
}
