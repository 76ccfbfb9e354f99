package cache

import (
	"container/list"
	"context"
	"fmt"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// entry is a cache entry.
type entry struct {
	Val interface{}
	At  time.Time
}

func (e entry) Value() interface{} {
	return e.Val
}

func (e entry) InsertedAt() time.Time {
	return e.At
}

// node is an element of insertion order list.
type node struct {
	key string
	entry
}

// Item is a key-value pair of cached entry.
type Item struct {
	Key   string
	Value interface{}
}

// ExpiringConfig controls expiring cache instance.
type ExpiringConfig struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Name is cache instance name, used in stats and logging.
	Name string

	// TimeToLive is an age of entry after which it is removed by Purge, must be positive.
	TimeToLive time.Duration

	// Capacity is a maximum count of entries left by Purge, nil means unbounded.
	Capacity *int

	// TimeNow returns current time, default time.Now.
	TimeNow func() time.Time
}

// Capacity returns a pointer to capacity value for ExpiringConfig.
func Capacity(n int) *int {
	return &n
}

var (
	_ ReadWritePurger = &Expiring{}
	_ Walker          = &Expiring{}
	_ Dumper          = &Expiring{}
	_ Restorer        = &Expiring{}
)

// Expiring is an in-memory cache bounded by entries count and entry age.
//
// Bounds are only enforced by Purge, entries are not checked on read.
// Capacity eviction removes entries in order of their first insertion,
// overwriting a key refreshes its value and insertion time, but keeps its position.
//
// Expiring is not safe for concurrent use, owner must synchronize access.
type Expiring struct {
	index map[string]*list.Element
	order *list.List

	bounded  bool
	capacity int

	config ExpiringConfig
	log    ctxd.Logger
	stat   stats.Tracker
}

// NewExpiring creates an instance of expiring cache.
//
// ErrInvalidConfig is returned for non-positive time to live or negative capacity.
func NewExpiring(cfg ExpiringConfig) (*Expiring, error) {
	if cfg.TimeToLive <= 0 {
		return nil, fmt.Errorf("%w: time to live must be positive, %s given", ErrInvalidConfig, cfg.TimeToLive)
	}

	c := &Expiring{
		index:  make(map[string]*list.Element),
		order:  list.New(),
		config: cfg,
		log:    cfg.Logger,
		stat:   cfg.Stats,
	}

	if cfg.Capacity != nil {
		if *cfg.Capacity < 0 {
			return nil, fmt.Errorf("%w: capacity must be non-negative, %d given", ErrInvalidConfig, *cfg.Capacity)
		}

		c.bounded = true
		c.capacity = *cfg.Capacity
	}

	if c.config.TimeNow == nil {
		c.config.TimeNow = time.Now
	}

	return c, nil
}

// Get returns stored value and true, or false if key is missing.
//
// Stale value is returned if cache was not purged after its expiration.
func (c *Expiring) Get(k string) (interface{}, bool) {
	return c.lookup(context.Background(), k)
}

// GetOrDefault returns stored value or default if key is missing.
func (c *Expiring) GetOrDefault(k string, def interface{}) interface{} {
	if v, found := c.lookup(context.Background(), k); found {
		return v
	}

	return def
}

// Read gets value or ErrCacheItemNotFound.
func (c *Expiring) Read(ctx context.Context, k string) (interface{}, error) {
	if SkipRead(ctx) {
		return nil, ErrCacheItemNotFound
	}

	v, found := c.lookup(ctx, k)
	if !found {
		return nil, ErrCacheItemNotFound
	}

	return v, nil
}

func (c *Expiring) lookup(ctx context.Context, k string) (interface{}, bool) {
	el, found := c.index[k]
	if !found {
		if c.log != nil {
			c.log.Debug(ctx, "cache miss",
				"name", c.config.Name,
				"key", k)
		}

		if c.stat != nil {
			c.stat.Add(ctx, MetricMiss, 1, "name", c.config.Name)
		}

		return nil, false
	}

	n := el.Value.(*node)

	if c.stat != nil {
		c.stat.Add(ctx, MetricHit, 1, "name", c.config.Name)
	}

	if c.log != nil {
		c.log.Debug(ctx, "cache hit",
			"name", c.config.Name,
			"key", k,
			"insertedAt", n.At)
	}

	return n.Val, true
}

// Set stores value with current time.
func (c *Expiring) Set(k string, v interface{}) {
	c.store(context.Background(), k, v)
}

// Write stores value with current time, it never fails.
func (c *Expiring) Write(ctx context.Context, k string, v interface{}) error {
	c.store(ctx, k, v)

	return nil
}

func (c *Expiring) store(ctx context.Context, k string, v interface{}) {
	c.put(k, entry{Val: v, At: c.config.TimeNow()})

	if c.log != nil {
		c.log.Debug(ctx, "wrote to cache", "name", c.config.Name, "key", k, "value", v)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)
	}
}

// put inserts new key at the back of order list or updates existing one in place.
func (c *Expiring) put(k string, e entry) {
	if el, found := c.index[k]; found {
		el.Value.(*node).entry = e

		return
	}

	c.index[k] = c.order.PushBack(&node{key: k, entry: e})
}

// Delete removes entry and returns true if it was present.
func (c *Expiring) Delete(k string) bool {
	el, found := c.index[k]
	if !found {
		return false
	}

	c.remove(el)

	return true
}

func (c *Expiring) remove(el *list.Element) string {
	n := c.order.Remove(el).(*node)
	delete(c.index, n.key)

	return n.key
}

// RemoveAll deletes all entries.
func (c *Expiring) RemoveAll() {
	c.index = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns number of entries in cache, including stale ones.
func (c *Expiring) Len() int {
	return c.order.Len()
}

// Keys returns keys in insertion order.
func (c *Expiring) Keys() []string {
	keys := make([]string, 0, c.order.Len())

	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*node).key)
	}

	return keys
}

// Values returns values in insertion order.
func (c *Expiring) Values() []interface{} {
	values := make([]interface{}, 0, c.order.Len())

	for el := c.order.Front(); el != nil; el = el.Next() {
		values = append(values, el.Value.(*node).Val)
	}

	return values
}

// Items returns key-value pairs in insertion order.
func (c *Expiring) Items() []Item {
	items := make([]Item, 0, c.order.Len())

	for el := c.order.Front(); el != nil; el = el.Next() {
		n := el.Value.(*node)
		items = append(items, Item{Key: n.key, Value: n.Val})
	}

	return items
}

// Walk walks cached entries in insertion order.
//
// Entries are collected before the walk, so walkFn may modify cache.
func (c *Expiring) Walk(walkFn func(key string, value Entry) error) (int, error) {
	nodes := make([]node, 0, c.order.Len())

	for el := c.order.Front(); el != nil; el = el.Next() {
		nodes = append(nodes, *el.Value.(*node))
	}

	n := 0

	for _, nd := range nodes {
		if err := walkFn(nd.key, nd.entry); err != nil {
			return n, err
		}

		n++
	}

	return n, nil
}
