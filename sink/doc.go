// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package sink implements the api sink contracts: a synchronous
// medium-agnostic output sink, the non-blocking descriptor-backed
// output sink with cross-goroutine write coalescing, and the trivial
// input sink variants.
package sink
