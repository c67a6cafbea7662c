// File: pool/chunkpool.go
// Author: momentics <momentics@gmail.com>
//
// Recycles the short-lived copies a sink makes of producer buffers.

package pool

import "sync"

// ChunkPool hands out byte slices for sink-internal copies. Slices up
// to maxChunk bytes come from a sync.Pool; larger requests fall through
// to the allocator and are not recycled.
type ChunkPool struct {
	p        sync.Pool
	maxChunk int
}

// NewChunkPool creates a pool recycling chunks up to maxChunk bytes.
func NewChunkPool(maxChunk int) *ChunkPool {
	if maxChunk <= 0 {
		maxChunk = 4096
	}
	cp := &ChunkPool{maxChunk: maxChunk}
	cp.p.New = func() any {
		buf := make([]byte, 0, maxChunk)
		return &buf
	}
	return cp
}

// Clone copies p into a pooled chunk when it fits, otherwise into a
// fresh allocation. The returned slice is owned by the caller.
func (cp *ChunkPool) Clone(p []byte) []byte {
	if len(p) > cp.maxChunk {
		out := make([]byte, len(p))
		copy(out, p)
		return out
	}
	buf := cp.p.Get().(*[]byte)
	out := append((*buf)[:0], p...)
	return out
}

// Recycle returns a fully consumed chunk for reuse. Chunks that were
// resliced past their origin or exceed maxChunk are left to the GC.
func (cp *ChunkPool) Recycle(p []byte) {
	if cap(p) == 0 || cap(p) > cp.maxChunk {
		return
	}
	buf := p[:0:cap(p)]
	cp.p.Put(&buf)
}
