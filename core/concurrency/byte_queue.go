// File: core/concurrency/byte_queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unbounded MPSC queue of byte payloads, FIFO in arrival order.

package concurrency

import (
	"sync"

	"github.com/eapache/queue"
)

// ChunkQueue is a mutex-guarded FIFO of byte payloads. Many producers
// may Push concurrently; exactly one consumer drains. Push never blocks
// and never fails: the backing ring grows on demand, so producers are
// decoupled from the consumer's pace.
type ChunkQueue struct {
	mu sync.Mutex
	q  *queue.Queue
}

// NewChunkQueue creates an empty queue.
func NewChunkQueue() *ChunkQueue {
	return &ChunkQueue{q: queue.New()}
}

// Push enqueues p. The queue takes ownership of the slice.
func (c *ChunkQueue) Push(p []byte) {
	c.mu.Lock()
	c.q.Add(p)
	c.mu.Unlock()
}

// DrainAll removes every queued payload and returns them in enqueue
// order. Returns nil when the queue is empty.
func (c *ChunkQueue) DrainAll() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.q.Length()
	if n == 0 {
		return nil
	}
	out := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, c.q.Remove().([]byte))
	}
	return out
}

// Len reports the number of queued payloads.
func (c *ChunkQueue) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Length()
}
