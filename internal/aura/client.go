package aura

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Fetcher defines the read side of the Aura backend API. It is implemented
// by *Client and can be substituted in tests.
type Fetcher interface {
	FetchStatus(ctx context.Context) (*StatusResponse, error)
	FetchProjects(ctx context.Context) ([]Project, error)
	FetchTimeline(ctx context.Context, projectID string) (*TimelineResponse, error)
	FetchJobs(ctx context.Context) ([]RenderJob, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the Aura backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(time.Duration)

	group singleflight.Group
}

const (
	defaultAPIBind       = "127.0.0.1:7319"
	defaultUserAgent     = "aura/0.1"
	requestTimeout       = 10 * time.Second
	defaultRetryAttempts = 3
	defaultRetryBase     = 250 * time.Millisecond
	defaultRetryMax      = 2 * time.Second
)

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithRetryMaxAttempts overrides the retry count for idempotent requests
// (defaults to 3).
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retryMaxAttempts = attempts
		}
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		if baseDelay > 0 {
			c.retryBaseDelay = baseDelay
		}
		if maxDelay > 0 {
			c.retryMaxDelay = maxDelay
		}
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		if sleeper != nil {
			c.sleeper = sleeper
		}
	}
}

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent:        defaultUserAgent,
		retryMaxAttempts: defaultRetryAttempts,
		retryBaseDelay:   defaultRetryBase,
		retryMaxDelay:    defaultRetryMax,
		sleeper:          time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchStatus retrieves backend status and job statistics.
func (c *Client) FetchStatus(ctx context.Context) (*StatusResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload StatusResponse
	if err := c.getJSON(ctx, "/api/status", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchProjects retrieves the current project list.
func (c *Client) FetchProjects(ctx context.Context) ([]Project, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ProjectListResponse
	if err := c.getJSON(ctx, "/api/projects", &payload); err != nil {
		return nil, err
	}
	return payload.Projects, nil
}

// FetchTimeline retrieves the timeline for one project: duration, playhead,
// scenes, and markers.
func (c *Client) FetchTimeline(ctx context.Context, projectID string) (*TimelineResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, fmt.Errorf("project id required")
	}
	var payload TimelineResponse
	path := "/api/projects/" + url.PathEscape(projectID) + "/timeline"
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchJobs retrieves the current render job list.
func (c *Client) FetchJobs(ctx context.Context) ([]RenderJob, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload JobListResponse
	if err := c.getJSON(ctx, "/api/jobs", &payload); err != nil {
		return nil, err
	}
	return payload.Jobs, nil
}

// CancelJob asks the backend to cancel a render job. Cancellation is not
// idempotent from the backend's point of view, so it is never retried or
// de-duplicated.
func (c *Client) CancelJob(ctx context.Context, jobID int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if jobID <= 0 {
		return fmt.Errorf("job id required")
	}
	path := "/api/jobs/" + strconv.FormatInt(jobID, 10) + "/cancel"
	if _, err := c.doOnce(ctx, http.MethodPost, path); err != nil {
		return err
	}
	return nil
}

// getJSON fetches a GET endpoint with retry, sharing the fetch between
// concurrent callers of the same path, and decodes the body into dest.
func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	body, err, _ := c.group.Do(http.MethodGet+" "+path, func() (any, error) {
		return c.doRetry(ctx, http.MethodGet, path)
	})
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body.([]byte), dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doRetry performs the request, repeating transient failures with capped
// exponential backoff. Only idempotent requests go through here.
func (c *Client) doRetry(ctx context.Context, method, path string) ([]byte, error) {
	delay := c.retryBaseDelay
	var lastErr error
	for attempt := 1; attempt <= c.retryMaxAttempts; attempt++ {
		body, err := c.doOnce(ctx, method, path)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == c.retryMaxAttempts {
			break
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("execute request: %w", ctx.Err())
		}
		c.sleeper(delay)
		delay *= 2
		if delay > c.retryMaxDelay {
			delay = c.retryMaxDelay
		}
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path string) ([]byte, error) {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, decodeAPIError(path, resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// decodeAPIError parses the backend's error envelope, falling back to a bare
// status error when the body is not the expected shape.
func decodeAPIError(path string, resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = strings.TrimSpace(envelope.Error.Message)
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("api %s returned status %d", path, resp.StatusCode)
	}
	return apiErr
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
