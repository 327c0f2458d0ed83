package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aurastudio/aura/internal/aura"
	"github.com/aurastudio/aura/internal/logging"
	"github.com/aurastudio/aura/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeFetcher struct {
	status   *aura.StatusResponse
	projects []aura.Project
	jobs     []aura.RenderJob
	err      error
}

func (f *fakeFetcher) FetchStatus(ctx context.Context) (*aura.StatusResponse, error) {
	return f.status, f.err
}

func (f *fakeFetcher) FetchProjects(ctx context.Context) ([]aura.Project, error) {
	return f.projects, f.err
}

func (f *fakeFetcher) FetchTimeline(ctx context.Context, projectID string) (*aura.TimelineResponse, error) {
	return nil, f.err
}

func (f *fakeFetcher) FetchJobs(ctx context.Context) ([]aura.RenderJob, error) {
	return f.jobs, f.err
}

func TestRefresh_SuccessPopulatesStore(t *testing.T) {
	store := &state.Store{}
	fetcher := &fakeFetcher{
		status:   &aura.StatusResponse{Running: true, Version: "1.4.0"},
		projects: []aura.Project{{ID: "p-1"}},
		jobs:     []aura.RenderJob{{ID: 3}},
	}

	refresh(context.Background(), store, fetcher, logging.NewNop())

	snap := store.Snapshot()
	if !snap.HasStatus || snap.Status.Version != "1.4.0" {
		t.Fatalf("snapshot status = %#v, want version 1.4.0", snap.Status)
	}
	if len(snap.Projects) != 1 || len(snap.Jobs) != 1 {
		t.Fatalf("snapshot = %d projects %d jobs, want 1 and 1", len(snap.Projects), len(snap.Jobs))
	}
}

func TestRefresh_ErrorRecordsFailure(t *testing.T) {
	store := &state.Store{}
	fetcher := &fakeFetcher{err: errors.New("connection refused")}

	refresh(context.Background(), store, fetcher, logging.NewNop())

	snap := store.Snapshot()
	if snap.LastError == nil || snap.ConsecutiveFailures != 1 {
		t.Fatalf("snapshot = err %v failures %d, want recorded failure", snap.LastError, snap.ConsecutiveFailures)
	}
}
