package timeline

// PointType identifies what a snap point aligns against.
type PointType string

// Snap point types. The resolver never branches on type; it only exists so
// callers can tell what a match aligned to.
const (
	PointPlayhead   PointType = "playhead"
	PointSceneStart PointType = "scene-start"
	PointSceneEnd   PointType = "scene-end"
	PointGrid       PointType = "grid"
	PointMarker     PointType = "marker"
)

// Snap priorities, lower wins. Fixed per point type by the generator.
const (
	PriorityPlayhead = 1
	PriorityScene    = 2
	PriorityMarker   = 2
	PriorityGrid     = 3
)

// SnapPoint is a candidate position a dragged element can be pulled toward.
type SnapPoint struct {
	Position float64
	Type     PointType
	Priority int
}

// GenerateSnapPoints builds the full candidate set for the current timeline
// state: the playhead, every scene boundary, every marker, and a grid line
// every gridInterval seconds from 0 through duration inclusive.
//
// The returned slice is ordered playhead, scene starts, scene ends, markers,
// then grid points ascending. The order is a convenience for callers that
// iterate; Snapper.Resolve does not depend on it.
//
// A gridInterval <= 0 yields no grid points rather than looping forever.
// Candidates are regenerated per call; nothing is cached.
func GenerateSnapPoints(playhead float64, sceneStarts, sceneEnds []float64, gridInterval, duration float64, markers []float64) []SnapPoint {
	points := make([]SnapPoint, 0, 1+len(sceneStarts)+len(sceneEnds)+len(markers)+gridCount(gridInterval, duration))

	points = append(points, SnapPoint{Position: playhead, Type: PointPlayhead, Priority: PriorityPlayhead})

	for _, start := range sceneStarts {
		points = append(points, SnapPoint{Position: start, Type: PointSceneStart, Priority: PriorityScene})
	}
	for _, end := range sceneEnds {
		points = append(points, SnapPoint{Position: end, Type: PointSceneEnd, Priority: PriorityScene})
	}
	for _, marker := range markers {
		points = append(points, SnapPoint{Position: marker, Type: PointMarker, Priority: PriorityMarker})
	}

	if gridInterval > 0 {
		for pos := 0.0; pos <= duration; pos += gridInterval {
			points = append(points, SnapPoint{Position: pos, Type: PointGrid, Priority: PriorityGrid})
		}
	}

	return points
}

func gridCount(gridInterval, duration float64) int {
	if gridInterval <= 0 || duration < 0 {
		return 0
	}
	return int(duration/gridInterval) + 1
}

// GridInterval picks a grid spacing in seconds for the given zoom level so
// grid lines stay legible: dense timelines get coarse grids, zoomed-in
// timelines get fine ones.
func GridInterval(pixelsPerSecond float64) float64 {
	switch {
	case pixelsPerSecond >= 100:
		return 1
	case pixelsPerSecond >= 20:
		return 5
	case pixelsPerSecond >= 10:
		return 10
	case pixelsPerSecond >= 5:
		return 30
	default:
		return 60
	}
}
