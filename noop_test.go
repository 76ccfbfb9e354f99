package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vearutop/cache"
)

func TestNoOp_Read(t *testing.T) {
	v, err := cache.NoOp{}.Read(context.Background(), "foo")
	assert.Nil(t, v)
	assert.EqualError(t, err, "not found: missing cache item")
}

func TestNoOp_Write(t *testing.T) {
	c := cache.NoOp{}

	err := c.Write(context.Background(), "foo", 123)
	assert.NoError(t, err)

	c.Purge()

	v, err := c.Read(context.Background(), "foo")
	assert.Nil(t, v)
	assert.True(t, errors.Is(err, cache.ErrCacheItemNotFound))
}
