//go:build linux
// +build linux

package reactor

import (
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-sink/api"
)

// pipeSource counts readiness notifications for the read end of a pipe
// and can be told to report itself closed.
type pipeSource struct {
	fd       int
	notified atomic.Int64
	finished atomic.Bool
}

func (p *pipeSource) Fd() int { return p.fd }

func (p *pipeSource) ProcessReadiness(ev api.ReadinessEvent) error {
	p.notified.Add(1)
	if p.finished.Load() {
		return api.ErrSinkClosed
	}
	var buf [64]byte
	for {
		if _, err := unix.Read(p.fd, buf[:]); err != nil {
			return nil
		}
	}
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}

func TestLoop_DispatchAndRemove(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l, err := NewLoop(r)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	defer l.Close()

	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		t.Fatalf("pipe2: %v", err)
	}
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	src := &pipeSource{fd: fds[0]}
	if err := l.Add(src); err != nil {
		t.Fatalf("Add: %v", err)
	}

	go l.Run()
	defer l.Stop()

	if _, err := unix.Write(fds[1], []byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, func() bool { return src.notified.Load() >= 1 }, "dispatch")

	// A source returning ErrSinkClosed is dropped from the loop.
	src.finished.Store(true)
	if _, err := unix.Write(fds[1], []byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, func() bool { return src.notified.Load() >= 2 }, "second dispatch")

	seen := src.notified.Load()
	if _, err := unix.Write(fds[1], []byte("ping")); err != nil {
		t.Fatalf("write: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if src.notified.Load() != seen {
		t.Errorf("removed source still notified: %d -> %d", seen, src.notified.Load())
	}
}

func TestLoop_StopInterruptsBlockedPoll(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l, err := NewLoop(r)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	defer l.Close()

	done := make(chan struct{})
	go func() {
		l.Run()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	l.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Stop did not interrupt blocked poll")
	}
}
