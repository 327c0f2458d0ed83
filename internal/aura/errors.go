package aura

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a client error for retry decisions and user-facing display.
type Kind string

// Error kinds. Network, server, and rate-limited errors are transient and
// worth retrying; the rest need a different request or operator action.
const (
	KindNetwork     Kind = "network"
	KindServer      Kind = "server"
	KindRateLimited Kind = "rate_limited"
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindAuth        Kind = "auth"
	KindUnknown     Kind = "unknown"
)

// APIError is a structured error decoded from the backend's error envelope.
type APIError struct {
	Status  int    // HTTP status code
	Code    string // backend error code, e.g. "project_not_found"
	Message string // backend-supplied detail
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Kind classifies the error from its status code and backend code.
func (e *APIError) Kind() Kind {
	code := strings.ToLower(strings.TrimSpace(e.Code))
	switch {
	case e.Status == http.StatusTooManyRequests:
		return KindRateLimited
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return KindAuth
	case e.Status == http.StatusNotFound || strings.HasSuffix(code, "not_found"):
		return KindNotFound
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity || strings.HasPrefix(code, "validation"):
		return KindValidation
	case e.Status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// Classify maps any client error to a Kind. Errors that are not APIErrors are
// treated as transport failures.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind()
	}
	return KindNetwork
}

// IsRetryable reports whether a request that failed with err is worth
// repeating: transport failures, 5xx responses, and rate limiting.
func IsRetryable(err error) bool {
	switch Classify(err) {
	case KindNetwork, KindServer, KindRateLimited:
		return true
	default:
		return false
	}
}

// UserMessage renders err as a short, stable message suitable for direct
// display. Backend detail is appended only where it helps the user act.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch Classify(err) {
	case KindNetwork:
		return "Cannot reach the Aura backend. Check that it is running and that api_bind is correct."
	case KindServer:
		return "The Aura backend hit an internal error. Try again in a moment."
	case KindRateLimited:
		return "Too many requests. Wait a moment and try again."
	case KindAuth:
		return "The backend rejected the request as unauthorized."
	case KindNotFound:
		return "The requested item no longer exists on the backend."
	case KindValidation:
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return "The backend rejected the request: " + apiErr.Message
		}
		return "The backend rejected the request as invalid."
	default:
		return err.Error()
	}
}
