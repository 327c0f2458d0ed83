package aura

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBind {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBind)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpoints(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	var gotRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/status":
			_ = json.NewEncoder(w).Encode(StatusResponse{Running: true, Version: "1.4.0"})
		case "/api/projects":
			_ = json.NewEncoder(w).Encode(ProjectListResponse{Projects: []Project{{ID: "p-1", Name: "Launch Teaser"}}})
		case "/api/projects/p-1/timeline":
			_ = json.NewEncoder(w).Encode(TimelineResponse{
				ProjectID: "p-1",
				Duration:  90,
				Playhead:  12.5,
				Scenes:    []Scene{{Name: "Intro", Start: 0, End: 14.5}},
				Markers:   []Marker{{Label: "beat", Position: 7.25}},
			})
		case "/api/jobs":
			_ = json.NewEncoder(w).Encode(JobListResponse{Jobs: []RenderJob{{ID: 42, Status: "encoding"}}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	status, err := c.FetchStatus(ctx)
	if err != nil {
		t.Fatalf("FetchStatus returned error: %v", err)
	}
	if !status.Running || status.Version != "1.4.0" {
		t.Fatalf("FetchStatus payload = %#v, want running version 1.4.0", status)
	}

	projects, err := c.FetchProjects(ctx)
	if err != nil {
		t.Fatalf("FetchProjects returned error: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "p-1" {
		t.Fatalf("FetchProjects = %#v, want 1 project p-1", projects)
	}

	tl, err := c.FetchTimeline(ctx, "p-1")
	if err != nil {
		t.Fatalf("FetchTimeline returned error: %v", err)
	}
	if tl.Duration != 90 || len(tl.Scenes) != 1 || len(tl.Markers) != 1 {
		t.Fatalf("FetchTimeline = %#v, want duration 90 with 1 scene and 1 marker", tl)
	}

	jobs, err := c.FetchJobs(ctx)
	if err != nil {
		t.Fatalf("FetchJobs returned error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != 42 {
		t.Fatalf("FetchJobs = %#v, want 1 job id=42", jobs)
	}

	if gotUserAgent == "" || !strings.HasPrefix(gotUserAgent, "aura/") {
		t.Fatalf("User-Agent = %q, want aura/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
}

func TestClient_FetchTimelineRequiresProjectID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchTimeline(context.Background(), "  "); err == nil {
		t.Fatalf("FetchTimeline returned nil error, want error")
	}
}

func TestClient_DecodesErrorEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"code": "project_not_found", "message": "no project with id p-9"}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchTimeline(context.Background(), "p-9")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v (%T), want *APIError", err, err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "project_not_found" {
		t.Fatalf("APIError = %#v, want 404 project_not_found", apiErr)
	}
	if apiErr.Kind() != KindNotFound {
		t.Fatalf("Kind() = %q, want %q", apiErr.Kind(), KindNotFound)
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "temporary", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(StatusResponse{Running: true})
	}))
	t.Cleanup(server.Close)

	var delays []time.Duration
	c, err := NewClient(server.URL,
		WithRetryBackoff(10*time.Millisecond, 15*time.Millisecond),
		WithSleeper(func(d time.Duration) { delays = append(delays, d) }),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	status, err := c.FetchStatus(context.Background())
	if err != nil {
		t.Fatalf("FetchStatus returned error after retries: %v", err)
	}
	if !status.Running {
		t.Fatalf("FetchStatus = %#v, want running", status)
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("server hits = %d, want 3", got)
	}
	if len(delays) != 2 || delays[0] != 10*time.Millisecond || delays[1] != 15*time.Millisecond {
		t.Fatalf("backoff delays = %v, want [10ms 15ms] (doubled then capped)", delays)
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithSleeper(func(time.Duration) {}))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := c.FetchProjects(context.Background()); err == nil {
		t.Fatalf("FetchProjects returned nil error, want 404")
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("server hits = %d, want 1 (no retry on 404)", got)
	}
}

func TestClient_RetriesAreBounded(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL,
		WithRetryMaxAttempts(2),
		WithSleeper(func(time.Duration) {}),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchStatus(context.Background())
	if err == nil {
		t.Fatalf("FetchStatus returned nil error, want persistent 500")
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("server hits = %d, want 2", got)
	}
}

func TestClient_ConcurrentIdenticalGetsShareOneRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(StatusResponse{Running: true, Version: "1.4.0"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	const callers = 5
	var wg sync.WaitGroup
	results := make([]*StatusResponse, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.FetchStatus(context.Background())
		}(i)
	}

	// Give every caller time to join the in-flight request before the server
	// responds.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := hits.Load(); got != 1 {
		t.Fatalf("server hits = %d, want 1 shared request", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d returned error: %v", i, errs[i])
		}
		if results[i] == nil || results[i].Version != "1.4.0" {
			t.Fatalf("caller %d result = %#v, want shared payload", i, results[i])
		}
	}
}

func TestClient_DedupSlotClearsAfterSettlement(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(StatusResponse{Running: true})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := c.FetchStatus(context.Background()); err != nil {
		t.Fatalf("first FetchStatus returned error: %v", err)
	}
	if _, err := c.FetchStatus(context.Background()); err != nil {
		t.Fatalf("second FetchStatus returned error: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("server hits = %d, want 2 (sequential calls are not cached)", got)
	}
}

func TestClient_CancelJob(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if err := c.CancelJob(context.Background(), 42); err != nil {
		t.Fatalf("CancelJob returned error: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/jobs/42/cancel" {
		t.Fatalf("request = %s %s, want POST /api/jobs/42/cancel", gotMethod, gotPath)
	}

	if err := c.CancelJob(context.Background(), 0); err == nil {
		t.Fatalf("CancelJob(0) returned nil error, want error")
	}
}

func TestClient_CancelJobIsNotRetried(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithSleeper(func(time.Duration) {}))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if err := c.CancelJob(context.Background(), 7); err == nil {
		t.Fatalf("CancelJob returned nil error, want 500")
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("server hits = %d, want 1 (mutations are never retried)", got)
	}
}
