package cache

import (
	"context"
)

// NoOp is a ReadWritePurger stub for disabled cache.
type NoOp struct{}

var _ ReadWritePurger = NoOp{}

// Read does not find anything.
func (NoOp) Read(ctx context.Context, key string) (interface{}, error) {
	return nil, ErrCacheItemNotFound
}

// Write discards value.
func (NoOp) Write(ctx context.Context, key string, v interface{}) error {
	return nil
}

// Purge does nothing.
func (NoOp) Purge() {}
