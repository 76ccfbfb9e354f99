package royale

import (
	"net/http"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// DefaultBaseURL is an address of API server.
const DefaultBaseURL = "https://api.royaleapi.com/"

// ClientConfig controls API client.
type ClientConfig struct {
	// DevKey is an API token, sent in "auth" header.
	DevKey string

	// BaseURL is API server address, default DefaultBaseURL.
	BaseURL string

	// Headers are added to every request.
	Headers map[string]string

	// HTTPClient is a transport, default http.DefaultClient.
	HTTPClient *http.Client

	// UseCache enables response caching.
	UseCache bool

	// DynamicCacheTime is time to live of player, clan and battle responses, default 60s.
	// Negative value disables this cache.
	DynamicCacheTime time.Duration

	// DynamicCacheCapacity is a maximum count of cached player, clan and battle responses, default 128.
	DynamicCacheCapacity int

	// ServerInfoCacheTime is time to live of version, health and status responses, default 3m.
	// Negative value disables this cache.
	ServerInfoCacheTime time.Duration

	// ConstantsCacheTime is time to live of endpoints list, default 24h.
	// Negative value disables this cache.
	ConstantsCacheTime time.Duration

	// TimeNow returns current time for caches, default time.Now.
	TimeNow func() time.Time

	// Logger collects messages with context.
	Logger ctxd.Logger

	// Stats tracks stats.
	Stats stats.Tracker
}

func (cfg *ClientConfig) setDefaults() {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	if cfg.DynamicCacheTime == 0 {
		cfg.DynamicCacheTime = time.Minute
	}

	if cfg.DynamicCacheCapacity == 0 {
		cfg.DynamicCacheCapacity = 128
	}

	if cfg.ServerInfoCacheTime == 0 {
		cfg.ServerInfoCacheTime = 3 * time.Minute
	}

	if cfg.ConstantsCacheTime == 0 {
		cfg.ConstantsCacheTime = 24 * time.Hour
	}

	if cfg.Logger == nil {
		cfg.Logger = ctxd.NoOpLogger{}
	}

	if cfg.Stats == nil {
		cfg.Stats = stats.NoOp{}
	}
}
