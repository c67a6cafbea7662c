// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the epoll-backed readiness multiplexer used
// by descriptor sinks, plus a dispatch loop that drives registered
// event sources from a single I/O goroutine.
package reactor
