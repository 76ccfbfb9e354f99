package cache

import (
	"github.com/swaggest/usecase/status"
)

// SentinelError is an error.
type SentinelError string

const (
	// ErrNothingToInvalidate indicates no caches were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

var (
	// ErrCacheItemNotFound indicates missing cache entry.
	ErrCacheItemNotFound = status.Wrap(SentinelError("missing cache item"), status.NotFound)

	// ErrInvalidConfig indicates invalid cache configuration.
	ErrInvalidConfig = status.Wrap(SentinelError("invalid cache config"), status.InvalidArgument)
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}
