package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aurastudio/aura/internal/aura"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	status := &aura.StatusResponse{Running: true, Version: "1.4.0"}
	projects := []aura.Project{{ID: "p-1"}, {ID: "p-2"}}
	jobs := []aura.RenderJob{{ID: 7}}

	before := time.Now()
	s.Update(status, projects, jobs, nil)

	snap := s.Snapshot()
	if !snap.HasStatus || snap.Status.Version != "1.4.0" {
		t.Fatalf("snapshot status = %#v, want version 1.4.0 HasStatus=true", snap.Status)
	}
	if len(snap.Projects) != 2 || snap.Projects[0].ID != "p-1" {
		t.Fatalf("snapshot projects = %#v, want 2 projects", snap.Projects)
	}
	if len(snap.Jobs) != 1 || snap.Jobs[0].ID != 7 {
		t.Fatalf("snapshot jobs = %#v, want 1 job", snap.Jobs)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Projects[0].ID = "mutated"
	snap2 := s.Snapshot()
	if snap2.Projects[0].ID != "p-1" {
		t.Fatalf("Snapshot should clone projects; got id %q want p-1", snap2.Projects[0].ID)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(&aura.StatusResponse{Version: "1.0"}, []aura.Project{{ID: "p-1"}}, nil, nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, nil, nil, origErr)

	snap := s.Snapshot()
	if snap.HasStatus != prev.HasStatus || snap.Status.Version != prev.Status.Version {
		t.Fatalf("status changed on error: got %#v want %#v", snap.Status, prev.Status)
	}
	if len(snap.Projects) != 1 || snap.Projects[0].ID != "p-1" {
		t.Fatalf("projects changed on error: got %#v want %#v", snap.Projects, prev.Projects)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store = %d failures offline=%v, want 0 and online", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, nil, nil, errors.New("fail 1"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure = %d offline=%v, want 1 and online", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, nil, nil, errors.New("fail 2"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures = %d offline=%v, want 2 and offline", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, nil, nil, errors.New("fail 3"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 3 || !snap.IsOffline() {
		t.Fatalf("after 3 failures = %d offline=%v, want 3 and offline", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(&aura.StatusResponse{Running: true}, nil, nil, nil)
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success = %d offline=%v, want 0 and online", snap.ConsecutiveFailures, snap.IsOffline())
	}
}
