// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package api defines the contract surface of hioload-sink: the sink
// interfaces consumed by pipe orchestration and process I/O bridging,
// plus the collaborator interfaces (reactor, cross-thread queue, wake
// signal) the descriptor-backed sink is built on.
//
// Implementations live in sink, reactor and core/concurrency. Owners
// depend only on the interfaces here; internal buffer and descriptor
// state is never exposed.
package api
