package aura

import (
	"time"
)

const auraTimestampLayout = "2006-01-02 15:04:05"

// StatusResponse mirrors the payload returned by /api/status.
type StatusResponse struct {
	Version       string         `json:"version"`
	Running       bool           `json:"running"`
	UptimeSeconds int64          `json:"uptimeSeconds"`
	JobStats      map[string]int `json:"jobStats"`
	LastError     string         `json:"lastError"`
}

// ProjectListResponse mirrors /api/projects.
type ProjectListResponse struct {
	Projects []Project `json:"projects"`
}

// Project describes a video project in transport-friendly form.
type Project struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Duration   float64 `json:"duration"`
	SceneCount int     `json:"sceneCount"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (p Project) ParsedCreatedAt() time.Time {
	return parseTime(p.CreatedAt)
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (p Project) ParsedUpdatedAt() time.Time {
	return parseTime(p.UpdatedAt)
}

// TimelineResponse mirrors /api/projects/{id}/timeline.
type TimelineResponse struct {
	ProjectID string   `json:"projectId"`
	Duration  float64  `json:"duration"`
	Playhead  float64  `json:"playhead"`
	Scenes    []Scene  `json:"scenes"`
	Markers   []Marker `json:"markers"`
}

// Scene is one contiguous segment of a project's timeline.
type Scene struct {
	Name  string  `json:"name"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Marker is a named position on the timeline.
type Marker struct {
	Label    string  `json:"label"`
	Position float64 `json:"position"`
}

// SceneStarts returns the start time of every scene.
func (t TimelineResponse) SceneStarts() []float64 {
	starts := make([]float64, len(t.Scenes))
	for i, scene := range t.Scenes {
		starts[i] = scene.Start
	}
	return starts
}

// SceneEnds returns the end time of every scene.
func (t TimelineResponse) SceneEnds() []float64 {
	ends := make([]float64, len(t.Scenes))
	for i, scene := range t.Scenes {
		ends[i] = scene.End
	}
	return ends
}

// MarkerPositions returns the position of every marker.
func (t TimelineResponse) MarkerPositions() []float64 {
	positions := make([]float64, len(t.Markers))
	for i, marker := range t.Markers {
		positions[i] = marker.Position
	}
	return positions
}

// JobListResponse mirrors /api/jobs.
type JobListResponse struct {
	Jobs []RenderJob `json:"jobs"`
}

// RenderJob describes a render job in transport-friendly form.
type RenderJob struct {
	ID           int64       `json:"id"`
	ProjectID    string      `json:"projectId"`
	ProjectName  string      `json:"projectName"`
	Preset       string      `json:"preset"`
	Status       string      `json:"status"`
	Progress     JobProgress `json:"progress"`
	ErrorMessage string      `json:"errorMessage"`
	OutputFile   string      `json:"outputFile"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
}

// JobProgress tracks stage progress for a render job.
type JobProgress struct {
	Stage   string  `json:"stage"`
	Percent float64 `json:"percent"`
	Message string  `json:"message"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (j RenderJob) ParsedCreatedAt() time.Time {
	return parseTime(j.CreatedAt)
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (j RenderJob) ParsedUpdatedAt() time.Time {
	return parseTime(j.UpdatedAt)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(auraTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
