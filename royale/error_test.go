package royale

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swaggest/usecase/status"
)

func TestCheckResponse(t *testing.T) {
	for _, tc := range []struct {
		body     string
		httpCode int
		err      error
		code     status.Code
	}{
		{`{"error":true,"status":400,"message":"m"}`, http.StatusOK, ErrBadRequest, status.InvalidArgument},
		{`{"error":true,"status":401,"message":"m"}`, http.StatusOK, ErrUnauthorized, status.Unauthenticated},
		{`{"error":true,"status":404,"message":"m"}`, http.StatusNotFound, ErrNotFound, status.NotFound},
		{`{"error":true,"status":429,"message":"m"}`, http.StatusOK, ErrTooManyRequests, status.ResourceExhausted},
		{`{"error":true,"status":500,"message":"m"}`, http.StatusOK, ErrInternalServerError, status.Internal},
		{`{"error":true,"status":503,"message":"m"}`, http.StatusOK, ErrServerUnderMaintenance, status.Unavailable},
		{`{"error":true,"status":522,"message":"m"}`, http.StatusOK, ErrServerOffline, status.Unavailable},
		{`{"error":true,"status":418,"message":"m"}`, http.StatusOK, ErrAPI, status.Unknown},
		{`{"error":true,"message":"m"}`, http.StatusTooManyRequests, ErrTooManyRequests, status.ResourceExhausted},
		{``, http.StatusServiceUnavailable, ErrServerUnderMaintenance, status.Unavailable},
	} {
		err := checkResponse(tc.httpCode, []byte(tc.body), false)
		assert.True(t, errors.Is(err, tc.err), tc.body)

		var apiErr *APIError

		if assert.True(t, errors.As(err, &apiErr), tc.body) {
			assert.Equal(t, tc.code, apiErr.Status(), tc.body)
		}
	}

	err := checkResponse(http.StatusNotFound, []byte(`{"error":true,"status":404,"message":"No such player"}`), false)
	assert.EqualError(t, err, "not found: No such player")

	assert.NoError(t, checkResponse(http.StatusOK, []byte(`{"error":false,"name":"A"}`), false))
	assert.NoError(t, checkResponse(http.StatusOK, []byte(`[{"name":"A"}]`), false))
	assert.NoError(t, checkResponse(http.StatusOK, []byte(`1.2.3`), true))

	err = checkResponse(http.StatusOK, []byte(`<html>`), false)
	assert.True(t, errors.Is(err, ErrInvalidResponse))

	err = checkResponse(http.StatusBadGateway, []byte(`bad gateway`), true)
	assert.True(t, errors.Is(err, ErrAPI))
	assert.EqualError(t, err, "api error: bad gateway")
}
