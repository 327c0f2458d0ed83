// Package app wires configuration, the API client, polling, and state into
// the watch loop behind `aura watch`.
//
// # Overview
//
// This is the composition root for the long-running mode: it loads the Aura
// config and user preferences, builds the HTTP client, starts the background
// poller, and prints a rendered status line per refresh until the context is
// cancelled.
//
// # Components
//
//   - app.go: Run, the composition root and print loop
//   - poller.go: background goroutine refreshing the shared state.Store
//
// # Data Flow
//
// The poller fetches status, projects, and jobs in that order; the first
// failure aborts the cycle and records the error in the store without
// discarding previously fetched data. The print loop reads snapshots on its
// own ticker, so a stalled backend never blocks output — the line simply
// reports the growing failure count until the store goes offline.
//
// # Shutdown
//
// Both loops watch the same context. Cancellation (Ctrl-C via
// signal.NotifyContext in main) stops the poller goroutine and returns from
// Run with no error.
package app
