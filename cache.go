package cache

import (
	"context"
	"io"
	"time"
)

// Reader reads from cache.
type Reader interface {
	// Read returns cached value or ErrCacheItemNotFound.
	//
	// Stale values are returned until the owner purges cache.
	Read(ctx context.Context, key string) (interface{}, error)
}

// Writer writes to cache.
type Writer interface {
	// Write stores value in cache with a given key.
	Write(ctx context.Context, key string, value interface{}) error
}

// Purger removes entries that exceed cache bounds.
type Purger interface {
	Purge()
}

// ReadWriter reads from and writes to cache.
type ReadWriter interface {
	Reader
	Writer
}

// ReadWritePurger is a cache that is purged explicitly by its owner.
type ReadWritePurger interface {
	ReadWriter
	Purger
}

// Entry is a cached value with its insertion time.
type Entry interface {
	Value() interface{}
	InsertedAt() time.Time
}

// Walker calls function for every entry in cache and fails on first error returned by that function.
//
// Count of processed entries is returned.
type Walker interface {
	Walk(func(key string, entry Entry) error) (int, error)
}

// Dumper dumps cache entries in binary format.
type Dumper interface {
	Dump(w io.Writer) (int, error)
}

// Restorer restores cache entries from binary dump.
type Restorer interface {
	Restore(r io.Reader) (int, error)
}
