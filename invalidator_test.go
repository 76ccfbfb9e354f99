package cache_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearutop/cache"
)

func TestInvalidator_Invalidate(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	cache1, err := cache.NewExpiring(cache.ExpiringConfig{TimeToLive: time.Hour, TimeNow: clock})
	require.NoError(t, err)

	cache2, err := cache.NewExpiring(cache.ExpiringConfig{TimeToLive: time.Hour, TimeNow: clock})
	require.NoError(t, err)

	i := &cache.Invalidator{TimeNow: clock}
	err = i.Invalidate()
	assert.True(t, errors.Is(err, cache.ErrNothingToInvalidate))

	i.Add(cache1.RemoveAll, cache2.RemoveAll)

	cache1.Set("key", 1)
	cache2.Set("key", 2)

	val, found := cache1.Get("key")
	assert.True(t, found)
	assert.Equal(t, 1, val)

	val, found = cache2.Get("key")
	assert.True(t, found)
	assert.Equal(t, 2, val)

	assert.NoError(t, i.Invalidate())

	_, found = cache1.Get("key")
	assert.False(t, found)

	_, found = cache2.Get("key")
	assert.False(t, found)

	err = i.Invalidate()
	assert.True(t, errors.Is(err, cache.ErrAlreadyInvalidated))

	now = now.Add(16 * time.Second)
	assert.NoError(t, i.Invalidate())
}
