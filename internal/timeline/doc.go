// Package timeline provides client-side timeline services: snap candidate
// generation, drag-position snapping, and zoom-aware grid spacing.
//
// # Overview
//
// When a user drags a clip, the playhead, or a marker along the timeline, the
// editor pulls the dragged element onto nearby alignment targets so edits land
// exactly on scene boundaries, grid lines, and other markers. This package
// implements that magnetism. It is a pure in-process library: no I/O, no
// persistence, no goroutines.
//
// # Components
//
//   - GenerateSnapPoints: builds the candidate set for one drag frame
//   - Snapper: resolves a drag position against the candidates
//   - GridInterval: maps the current zoom to a sensible grid spacing
//
// # Usage
//
// A drag handler recomputes everything per pointer event:
//
//	grid := timeline.GridInterval(zoom)
//	points := timeline.GenerateSnapPoints(playhead, starts, ends, grid, duration, markers)
//	result := snapper.Resolve(dragPos, points, zoom)
//	if result.Snapped {
//		place(result.Position)
//	}
//
// Candidate sets are cheap to build and are never cached; their lifecycle is
// one drag frame, owned by the caller.
//
// # Priorities
//
// Every candidate carries a priority, lower wins: the playhead is 1, scene
// boundaries and markers are 2, grid lines are 3. Resolution is strictly
// priority-first — a grid line 10ms away never beats the playhead 100ms away
// when both are inside the snap radius. Within a priority the closest
// candidate wins, and exact ties keep the candidate generated first.
//
// # Screen-space threshold
//
// The snap radius is expressed in pixels (8 by default) and divided by the
// current pixels-per-second zoom to get a radius in seconds. Zooming in
// therefore shrinks the time window while the felt magnetism stays constant
// on screen.
//
// # Contract
//
// All three operations are total over their documented domains and never
// panic: a non-positive grid interval produces no grid points, and a
// non-positive zoom disables snapping for that call. A Snapper holds only two
// settings (threshold, enabled); mutate them from the same goroutine that
// resolves, per the single UI event loop model.
package timeline
