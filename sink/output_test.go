package sink

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-sink/api"
)

func TestSyncOutputSink_WriteDeliversThroughCallback(t *testing.T) {
	var got []byte
	s := NewSyncOutputSink(func(p []byte) int {
		got = append(got, p...)
		return len(p)
	}, nil)

	require.Equal(t, api.SinkOpen, s.State())
	assert.True(t, s.Write([]byte("hello")))
	assert.Equal(t, "hello", string(got))
}

func TestSyncOutputSink_WriteReportsRejectedBytes(t *testing.T) {
	s := NewSyncOutputSink(func(p []byte) int { return 0 }, nil)
	assert.False(t, s.Write([]byte("dropped")), "zero accepted bytes must report false")
}

func TestSyncOutputSink_WriteAfterCloseIsNoOp(t *testing.T) {
	var calls int
	s := NewSyncOutputSink(func(p []byte) int {
		calls++
		return len(p)
	}, nil)

	s.RequestClose()
	require.Equal(t, api.SinkClosed, s.State())
	assert.False(t, s.Write([]byte("late")))
	assert.Zero(t, calls, "OnWrite must not run after close")
}

func TestSyncOutputSink_OnCloseFiresExactlyOnce(t *testing.T) {
	var closes atomic.Int64
	s := NewSyncOutputSink(func(p []byte) int { return len(p) }, func() {
		closes.Add(1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RequestClose()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), closes.Load())
	assert.Equal(t, api.SinkClosed, s.State())
}
