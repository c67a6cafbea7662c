//go:build linux
// +build linux

// File: reactor/epoll_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7) implementation of api.Reactor with one-shot support.

package reactor

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-sink/api"
)

// epollReactor multiplexes descriptor readiness via an epoll instance.
// The instance descriptor itself is pollable, so one epollReactor can
// be registered inside another.
type epollReactor struct {
	epfd int
}

// New creates the platform reactor. On Linux this is epoll-backed.
func New() (api.Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &epollReactor{epfd: epfd}, nil
}

func epollEvents(interest api.Interest, oneShot bool) uint32 {
	var ev uint32
	if interest&api.InterestRead != 0 {
		ev |= unix.EPOLLIN
	}
	if interest&api.InterestWrite != 0 {
		ev |= unix.EPOLLOUT
	}
	if oneShot {
		ev |= unix.EPOLLONESHOT
	}
	return ev
}

// RegisterDescriptor adds fd to the epoll interest set.
func (r *epollReactor) RegisterDescriptor(fd int, interest api.Interest, oneShot bool) error {
	ev := unix.EpollEvent{Events: epollEvents(interest, oneShot), Fd: int32(fd)}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		if err == unix.EEXIST {
			return api.ErrAlreadyRegistered
		}
		return fmt.Errorf("epoll ctl add fd=%d: %w", fd, err)
	}
	return nil
}

// RearmDescriptor re-enables one-shot interest that has already fired.
func (r *epollReactor) RearmDescriptor(fd int, interest api.Interest) error {
	ev := unix.EpollEvent{Events: epollEvents(interest, true), Fd: int32(fd)}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		if err == unix.ENOENT {
			return api.ErrNotRegistered
		}
		return fmt.Errorf("epoll ctl mod fd=%d: %w", fd, err)
	}
	return nil
}

// DeregisterDescriptor removes fd from the interest set.
func (r *epollReactor) DeregisterDescriptor(fd int) error {
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		if err == unix.ENOENT || err == unix.EBADF {
			return api.ErrNotRegistered
		}
		return fmt.Errorf("epoll ctl del fd=%d: %w", fd, err)
	}
	return nil
}

// Poll waits for readiness and fills events. EINTR is not an error;
// the caller simply observes zero events and polls again.
func (r *epollReactor) Poll(events []api.ReadinessEvent, timeoutMs int) (int, error) {
	raw := make([]unix.EpollEvent, len(events))
	n, err := unix.EpollWait(r.epfd, raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("epoll wait: %w", err)
	}
	for i := 0; i < n; i++ {
		events[i] = api.ReadinessEvent{
			Fd:       int(raw[i].Fd),
			Readable: raw[i].Events&unix.EPOLLIN != 0,
			Writable: raw[i].Events&unix.EPOLLOUT != 0,
			Hangup:   raw[i].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0,
		}
	}
	return n, nil
}

// Fd exposes the epoll descriptor for nesting in an outer reactor.
func (r *epollReactor) Fd() int {
	return r.epfd
}

// Close releases the epoll instance.
func (r *epollReactor) Close() error {
	return unix.Close(r.epfd)
}
