// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package concurrency provides the cross-goroutine hand-off primitives
// the descriptor sink is built on: an unbounded multi-producer,
// single-consumer byte queue and an eventfd-backed wake signal.
package concurrency
