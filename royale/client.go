package royale

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	"github.com/puzpuzpuz/xsync"
	"github.com/vearutop/cache"
)

const (
	// MetricRequest is a name of a metric to count API requests.
	MetricRequest = "royale_request"

	// MetricRequestFailed is a name of a metric to count failed API requests.
	MetricRequestFailed = "royale_request_failed"
)

// namespace is a cache with its own bounds, guarded by a mutex.
type namespace struct {
	sync.Mutex
	cache cache.ReadWritePurger
}

// Client requests API and caches responses.
//
// Player, clan and battle responses share dynamic cache, version, health and status share server info cache,
// endpoints list has its own cache. Each cache is purged before it is read.
//
// Use cache.WithSkipRead to request fresh data, such response is not cached.
//
// Client is safe for concurrent use.
type Client struct {
	config  ClientConfig
	headers http.Header

	dynamic    *namespace
	serverInfo *namespace
	constants  *namespace

	inflight    *xsync.Map // Preventing identical concurrent requests.
	invalidator *cache.Invalidator
	log         ctxd.Logger
	stat        stats.Tracker
}

// NewClient creates API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := validateToken(cfg.DevKey); err != nil {
		return nil, err
	}

	cfg.setDefaults()

	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	c := &Client{
		config:      cfg,
		headers:     http.Header{},
		inflight:    xsync.NewMap(),
		invalidator: &cache.Invalidator{},
		log:         cfg.Logger,
		stat:        cfg.Stats,
	}

	c.headers.Set("auth", cfg.DevKey)

	for k, v := range cfg.Headers {
		c.headers.Set(k, v)
	}

	var err error

	if c.dynamic, err = c.namespace("dynamic", cfg.DynamicCacheTime, cfg.DynamicCacheCapacity); err != nil {
		return nil, err
	}

	if c.serverInfo, err = c.namespace("server_info", cfg.ServerInfoCacheTime, 3); err != nil {
		return nil, err
	}

	if c.constants, err = c.namespace("constants", cfg.ConstantsCacheTime, 2); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) namespace(name string, ttl time.Duration, capacity int) (*namespace, error) {
	if !c.config.UseCache || ttl < 0 {
		return &namespace{cache: cache.NoOp{}}, nil
	}

	e, err := cache.NewExpiring(cache.ExpiringConfig{
		Name:       name,
		Logger:     c.log,
		Stats:      c.stat,
		TimeToLive: ttl,
		Capacity:   cache.Capacity(capacity),
		TimeNow:    c.config.TimeNow,
	})
	if err != nil {
		return nil, fmt.Errorf("%s cache: %w", name, err)
	}

	ns := &namespace{cache: e}

	c.invalidator.Add(func() {
		ns.Lock()
		defer ns.Unlock()

		e.RemoveAll()
	})

	return ns, nil
}

// Invalidate removes all cached responses.
//
// It fails with cache.ErrNothingToInvalidate if caching is disabled and
// with cache.ErrAlreadyInvalidated if called again within 15 seconds.
func (c *Client) Invalidate() error {
	return c.invalidator.Invalidate()
}

// Close releases idle connections.
func (c *Client) Close() {
	c.config.HTTPClient.CloseIdleConnections()
}

type request struct {
	name  string // Endpoint name for logs and stats.
	ns    *namespace
	path  string
	query url.Values
	keys  []string

	// text disables JSON validation of response.
	text bool

	// split enables storing elements of array response under corresponding keys.
	// Multi-key responses that are not split are never stored.
	split bool

	// check validates fetched documents before they are stored.
	check func(docs []json.RawMessage) error
}

// do serves documents for request keys from cache or fetches them with a single request.
func (c *Client) do(ctx context.Context, r request) ([]json.RawMessage, error) {
	cached := !cache.SkipRead(ctx)

	if docs, found := c.load(ctx, r, cached); found {
		return docs, nil
	}

	if cached {
		release, waited, err := c.lock(ctx, r.path+"?"+r.query.Encode())
		if err != nil {
			return nil, err
		}

		if waited {
			if docs, found := c.load(ctx, r, true); found {
				return docs, nil
			}
		} else {
			defer release()
		}
	}

	docs, err := c.fetch(ctx, r)
	if err != nil {
		return nil, err
	}

	if cached {
		c.save(ctx, r, docs)
	}

	return docs, nil
}

// load purges namespace and reads all request keys, a single miss fails the whole read.
func (c *Client) load(ctx context.Context, r request, read bool) ([]json.RawMessage, bool) {
	r.ns.Lock()
	defer r.ns.Unlock()

	r.ns.cache.Purge()

	if !read {
		return nil, false
	}

	docs := make([]json.RawMessage, 0, len(r.keys))

	for _, k := range r.keys {
		v, err := r.ns.cache.Read(ctx, k)
		if err != nil {
			return nil, false
		}

		doc, ok := v.(json.RawMessage)
		if !ok {
			return nil, false
		}

		docs = append(docs, doc)
	}

	return docs, true
}

func (c *Client) save(ctx context.Context, r request, docs []json.RawMessage) {
	if len(r.keys) > 1 && !r.split {
		return
	}

	r.ns.Lock()
	defer r.ns.Unlock()

	for i, k := range r.keys {
		if i >= len(docs) {
			break
		}

		if err := r.ns.cache.Write(ctx, k, docs[i]); err != nil {
			c.log.Warn(ctx, "failed to cache response", "error", err, "endpoint", r.name, "key", k)
		}
	}
}

// lock marks request as in flight, concurrent callers of the same request wait for the first one to finish.
func (c *Client) lock(ctx context.Context, key string) (release func(), waited bool, err error) {
	keyLock := make(chan struct{})

	if existing, loaded := c.inflight.LoadOrStore(key, keyLock); loaded {
		c.log.Debug(ctx, "waiting for in-flight request", "key", key)

		select {
		case <-existing.(chan struct{}):
			return nil, true, nil
		case <-ctx.Done():
			return nil, true, ctxd.WrapError(ctx, ctx.Err(), "waiting for in-flight request", "key", key)
		}
	}

	return func() {
		c.inflight.Delete(key)
		close(keyLock)
	}, false, nil
}

func (c *Client) fetch(ctx context.Context, r request) (docs []json.RawMessage, err error) {
	c.stat.Add(ctx, MetricRequest, 1, "endpoint", r.name)

	defer func() {
		if err != nil {
			c.stat.Add(ctx, MetricRequestFailed, 1, "endpoint", r.name)
			c.log.Warn(ctx, "api request failed", "error", err, "endpoint", r.name, "path", r.path)
		}
	}()

	body, err := c.get(ctx, r)
	if err != nil {
		return nil, err
	}

	if len(r.keys) > 1 && r.split {
		if err := json.Unmarshal(body, &docs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	} else {
		docs = []json.RawMessage{body}
	}

	if r.check != nil {
		if err := r.check(docs); err != nil {
			return nil, err
		}
	}

	return docs, nil
}

func (c *Client) get(ctx context.Context, r request) ([]byte, error) {
	u := c.config.BaseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, ctxd.WrapError(ctx, err, "failed to prepare request", "url", u)
	}

	req.Header = c.headers.Clone()

	c.log.Debug(ctx, "requesting api", "endpoint", r.name, "url", u)

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return nil, ctxd.WrapError(ctx, err, "request failed", "url", u)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Error(ctx, "failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ctxd.WrapError(ctx, err, "failed to read response", "url", u)
	}

	if err := checkResponse(resp.StatusCode, body, r.text); err != nil {
		return nil, err
	}

	return body, nil
}
