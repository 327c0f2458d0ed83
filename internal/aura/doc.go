// Package aura provides an HTTP client for the Aura Video Studio backend API.
//
// # Overview
//
// This package defines the typed API client the rest of the tool is built on.
// It handles HTTP communication, JSON serialization, error classification,
// bounded retry, and de-duplication of concurrent identical reads.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client, retry loop, request de-duplication
//   - types.go: data structures mirroring the backend API schema
//   - errors.go: error taxonomy and user-facing message mapping
//
// # Endpoints
//
//   - GET /api/status: backend health, version, job statistics
//   - GET /api/projects: all projects with durations and scene counts
//   - GET /api/projects/{id}/timeline: duration, playhead, scenes, markers
//   - GET /api/jobs: render jobs with per-stage progress
//   - POST /api/jobs/{id}/cancel: cancel one render job
//
// # Request handling
//
// All requests use context for cancellation, send Accept and User-Agent
// headers, and carry a fresh X-Request-ID so failures can be correlated with
// backend logs. The underlying http.Client enforces a 10-second timeout.
//
// # Error classification
//
// Failed responses are decoded from the backend's error envelope
// ({"error": {"code", "message"}}) into *APIError. Classify collapses any
// client error into a Kind (network, server, rate_limited, validation,
// not_found, auth), IsRetryable marks the transient kinds, and UserMessage
// maps kinds to stable strings suitable for direct display.
//
// # Retry
//
// Idempotent requests retry transient failures with capped exponential
// backoff (3 attempts, 250ms base, 2s cap by default). The policy is
// configurable through functional options; WithSleeper lets tests observe
// delays without sleeping. Mutations are never retried.
//
// # De-duplication
//
// Concurrent identical GETs share a single in-flight request and its result;
// the slot is cleared when the request settles. This keeps a hot poller and
// an interactive command from stacking duplicate reads on the backend.
//
// # Thread safety
//
// The Client is safe for concurrent use.
package aura
