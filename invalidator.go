package cache

import (
	"fmt"
	"sync"
	"time"
)

// Invalidator is a registry of cache expiration triggers.
type Invalidator struct {
	sync.Mutex

	// SkipInterval defines minimal duration between two cache invalidations (flood protection), default 15s.
	SkipInterval time.Duration

	// Callbacks contains a list of functions to call on invalidate.
	Callbacks []func()

	// TimeNow returns current time, default time.Now.
	TimeNow func() time.Time

	lastRun time.Time
}

// Add registers invalidation callbacks.
func (i *Invalidator) Add(callbacks ...func()) {
	i.Lock()
	defer i.Unlock()

	i.Callbacks = append(i.Callbacks, callbacks...)
}

// Invalidate triggers cache expiration.
func (i *Invalidator) Invalidate() error {
	i.Lock()
	defer i.Unlock()

	if len(i.Callbacks) == 0 {
		return ErrNothingToInvalidate
	}

	if i.SkipInterval == 0 {
		i.SkipInterval = 15 * time.Second
	}

	if i.TimeNow == nil {
		i.TimeNow = time.Now
	}

	now := i.TimeNow()

	if !i.lastRun.IsZero() && now.Sub(i.lastRun) < i.SkipInterval {
		return fmt.Errorf("%w at %s, %s did not pass",
			ErrAlreadyInvalidated, i.lastRun.String(), i.SkipInterval.String())
	}

	i.lastRun = now
	for _, cb := range i.Callbacks {
		cb()
	}

	return nil
}
