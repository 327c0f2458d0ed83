// Package cache is the on-disk cache for downloaded project assets.
//
// # Overview
//
// Preview frames and thumbnails fetched from the backend are kept locally so
// re-opening a project does not re-download them. The cache is a directory
// holding an index.json plus one payload file per asset under objects/.
//
// # Layout
//
//	<cache_dir>/index.json      entry metadata (asset ID, project, size, age)
//	<cache_dir>/objects/<id>    raw payload bytes, IDs sanitized for the fs
//
// # Operations
//
//   - Lookup / Store / Remove: per-asset access
//   - List / Usage: inspection for the CLI
//   - Prune(maxAge): drop entries older than the cutoff
//   - Clear: delete every payload and the index
//
// The index is rewritten atomically (temp file + rename) on every mutation.
//
// # Unconfigured Mode
//
// A Cache built with an empty directory is a no-op: stores succeed silently,
// lookups miss, clears do nothing. Callers never have to branch on whether
// caching is configured.
//
// # Concurrency
//
// All operations are safe for concurrent use; an RWMutex guards the in-memory
// index and serializes disk writes.
package cache
