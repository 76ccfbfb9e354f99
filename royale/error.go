package royale

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/swaggest/usecase/status"
	"github.com/vearutop/cache"
)

const (
	// ErrInvalidToken indicates empty API token or token with whitespace.
	ErrInvalidToken = cache.SentinelError("invalid api token")

	// ErrInvalidTag indicates malformed player or clan tag.
	ErrInvalidTag = cache.SentinelError("invalid tag")

	// ErrInvalidArgument indicates invalid request parameters.
	ErrInvalidArgument = cache.SentinelError("invalid argument")

	// ErrInvalidResponse indicates server response that can not be decoded.
	ErrInvalidResponse = cache.SentinelError("invalid server response")

	// ErrBadRequest is returned for status 400.
	ErrBadRequest = cache.SentinelError("bad request")

	// ErrUnauthorized is returned for status 401.
	ErrUnauthorized = cache.SentinelError("unauthorized")

	// ErrNotFound is returned for status 404 and for empty battle lists.
	ErrNotFound = cache.SentinelError("not found")

	// ErrTooManyRequests is returned for status 429.
	ErrTooManyRequests = cache.SentinelError("too many requests")

	// ErrInternalServerError is returned for status 500.
	ErrInternalServerError = cache.SentinelError("internal server error")

	// ErrServerUnderMaintenance is returned for status 503.
	ErrServerUnderMaintenance = cache.SentinelError("server under maintenance")

	// ErrServerOffline is returned for status 522.
	ErrServerOffline = cache.SentinelError("server offline")

	// ErrAPI is returned for other error statuses.
	ErrAPI = cache.SentinelError("api error")
)

// APIError is an error reported by API server.
type APIError struct {
	// StatusCode is a status reported in error body or HTTP status.
	StatusCode int

	// Message is an optional server message.
	Message string

	err  error
	code status.Code
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message == "" {
		return e.err.Error()
	}

	return e.err.Error() + ": " + e.Message
}

// Unwrap returns sentinel error of status.
func (e *APIError) Unwrap() error {
	return e.err
}

// Status returns status code.
func (e *APIError) Status() status.Code {
	return e.code
}

func newAPIError(statusCode int, message string) *APIError {
	e := &APIError{StatusCode: statusCode, Message: message}

	switch statusCode {
	case http.StatusBadRequest:
		e.err, e.code = ErrBadRequest, status.InvalidArgument
	case http.StatusUnauthorized:
		e.err, e.code = ErrUnauthorized, status.Unauthenticated
	case http.StatusNotFound:
		e.err, e.code = ErrNotFound, status.NotFound
	case http.StatusTooManyRequests:
		e.err, e.code = ErrTooManyRequests, status.ResourceExhausted
	case http.StatusInternalServerError:
		e.err, e.code = ErrInternalServerError, status.Internal
	case http.StatusServiceUnavailable:
		e.err, e.code = ErrServerUnderMaintenance, status.Unavailable
	case 522:
		e.err, e.code = ErrServerOffline, status.Unavailable
	default:
		e.err, e.code = ErrAPI, status.Unknown
	}

	return e
}

type errorBody struct {
	Error   bool   `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// checkResponse validates response body and maps error reports to APIError.
func checkResponse(statusCode int, body []byte, text bool) error {
	if text {
		if statusCode >= http.StatusBadRequest {
			return newAPIError(statusCode, string(bytes.TrimSpace(body)))
		}

		return nil
	}

	if !json.Valid(body) {
		if statusCode >= http.StatusBadRequest {
			return newAPIError(statusCode, "")
		}

		return fmt.Errorf("%w: status %d", ErrInvalidResponse, statusCode)
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		eb := errorBody{}

		if err := json.Unmarshal(trimmed, &eb); err == nil && eb.Error {
			if eb.Status == 0 {
				eb.Status = statusCode
			}

			return newAPIError(eb.Status, eb.Message)
		}
	}

	if statusCode >= http.StatusBadRequest {
		return newAPIError(statusCode, "")
	}

	return nil
}
