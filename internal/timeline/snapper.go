package timeline

import "math"

// DefaultThresholdPx is the snap radius in screen pixels. The radius is fixed
// in screen space so snapping feels the same at every zoom level.
const DefaultThresholdPx = 8.0

// SnapResult reports the outcome of a resolution. Point is non-nil only when
// Snapped is true; on a miss Position carries the drag position unchanged.
type SnapResult struct {
	Snapped  bool
	Position float64
	Point    *SnapPoint
}

// Snapper resolves drag positions against snap candidates. Each caller owns
// its instance; there is no shared state beyond the two settings, so a
// Snapper is safe to share only if the settings are not mutated concurrently
// with Resolve (the single UI event loop model).
type Snapper struct {
	thresholdPx float64
	enabled     bool
}

// NewSnapper returns a Snapper with the default pixel threshold, enabled.
func NewSnapper() *Snapper {
	return &Snapper{thresholdPx: DefaultThresholdPx, enabled: true}
}

// SetThreshold overrides the snap radius in pixels. Non-positive values are
// ignored and the current threshold is kept.
func (s *Snapper) SetThreshold(px float64) {
	if px > 0 {
		s.thresholdPx = px
	}
}

// Threshold reports the current snap radius in pixels.
func (s *Snapper) Threshold() float64 {
	return s.thresholdPx
}

// SetEnabled toggles snapping. When disabled Resolve always passes the drag
// position through.
func (s *Snapper) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled reports whether snapping is active.
func (s *Snapper) Enabled() bool {
	return s.enabled
}

// Resolve decides whether dragPosition should be pulled onto a nearby
// candidate. The pixel threshold is converted to seconds using the current
// zoom, then candidates are scanned in priority order: a lower priority
// number always beats a closer candidate with a higher number, and within a
// priority the smaller distance wins. Exact ties keep the candidate seen
// first.
//
// A disabled snapper, an empty candidate list, or a non-positive
// pixelsPerSecond all pass the drag position through unchanged.
func (s *Snapper) Resolve(dragPosition float64, points []SnapPoint, pixelsPerSecond float64) SnapResult {
	if !s.enabled || len(points) == 0 || pixelsPerSecond <= 0 {
		return SnapResult{Position: dragPosition}
	}

	threshold := s.thresholdPx / pixelsPerSecond

	var best *SnapPoint
	var bestDistance float64
	for i := range points {
		candidate := &points[i]
		distance := math.Abs(candidate.Position - dragPosition)
		if distance > threshold {
			continue
		}
		switch {
		case best == nil:
			best = candidate
			bestDistance = distance
		case candidate.Priority < best.Priority:
			best = candidate
			bestDistance = distance
		case candidate.Priority == best.Priority && distance < bestDistance:
			best = candidate
			bestDistance = distance
		}
	}

	if best == nil {
		return SnapResult{Position: dragPosition}
	}
	point := *best
	return SnapResult{Snapped: true, Position: point.Position, Point: &point}
}
