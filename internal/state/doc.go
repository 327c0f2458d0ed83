// Package state holds the shared snapshot of backend data.
//
// # Overview
//
// The poller writes, commands and the watch loop read. Store mediates that
// with an RWMutex and hands out defensive copies so no consumer can mutate
// shared data or observe a half-written update.
//
// # Failure Semantics
//
// A failed refresh never discards the last good data: the error and a
// consecutive-failure counter are recorded alongside it. Snapshot.IsOffline
// reports true after two consecutive failures, which is the signal consumers
// use to flag the backend as unreachable rather than merely slow.
//
// # Cloning
//
// Snapshot returns copied slices and a wrapped error instance. Mutating a
// returned snapshot is always safe and never visible to other readers.
package state
