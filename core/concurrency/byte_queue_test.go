package concurrency

import (
	"encoding/binary"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestChunkQueue_FIFO(t *testing.T) {
	q := NewChunkQueue()
	q.Push([]byte("a"))
	q.Push([]byte("b"))
	q.Push([]byte("c"))

	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}
	out := q.DrainAll()
	if len(out) != 3 {
		t.Fatalf("DrainAll returned %d chunks, want 3", len(out))
	}
	for i, want := range []string{"a", "b", "c"} {
		if string(out[i]) != want {
			t.Errorf("chunk %d = %q, want %q", i, out[i], want)
		}
	}
	if q.DrainAll() != nil {
		t.Errorf("second DrainAll not nil")
	}
}

func TestChunkQueue_MPSC(t *testing.T) {
	q := NewChunkQueue()
	producers := 8
	itemsPerProducer := 5000

	var wg sync.WaitGroup
	var produced int64

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				payload := make([]byte, 8)
				binary.LittleEndian.PutUint32(payload[0:], uint32(pid))
				binary.LittleEndian.PutUint32(payload[4:], uint32(i))
				q.Push(payload)
				atomic.AddInt64(&produced, 1)
			}
		}(p)
	}

	// Single consumer drains concurrently with production and checks
	// that each producer's payloads arrive in its own push order.
	lastSeen := make([]int64, producers)
	for i := range lastSeen {
		lastSeen[i] = -1
	}
	total := 0
	want := producers * itemsPerProducer

	producersDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(producersDone)
	}()

	deadline := time.After(10 * time.Second)
	for total < want {
		chunks := q.DrainAll()
		for _, c := range chunks {
			pid := int(binary.LittleEndian.Uint32(c[0:]))
			seq := int64(binary.LittleEndian.Uint32(c[4:]))
			if seq != lastSeen[pid]+1 {
				t.Fatalf("producer %d: got seq %d after %d", pid, seq, lastSeen[pid])
			}
			lastSeen[pid] = seq
			total++
		}
		if len(chunks) == 0 {
			select {
			case <-deadline:
				t.Fatalf("timeout: drained %d/%d", total, want)
			default:
				runtime.Gosched()
			}
		}
	}

	<-producersDone
	if q.Len() != 0 {
		t.Errorf("queue not empty after full drain: %d", q.Len())
	}
}
