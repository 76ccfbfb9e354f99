package royale

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Cache key prefixes.
const (
	playerPrefix        = "p"
	playerChestsPrefix  = "pc"
	playerBattlesPrefix = "pb"
	clanPrefix          = "c"
	clanBattlesPrefix   = "cb"

	versionKey   = "v"
	healthKey    = "h"
	statusKey    = "s"
	endpointsKey = "e"
)

// QueryKey builds a deterministic cache key from a prefix and filter parameters.
//
// Parameters are canonicalized (keys and values sorted) and hashed, empty parameters give prefix as is.
func QueryKey(prefix string, params url.Values) string {
	if len(params) == 0 {
		return prefix
	}

	canonical := make(url.Values, len(params))

	for k, vv := range params {
		v := append([]string(nil), vv...)
		sort.Strings(v)
		canonical[k] = v
	}

	return prefix + "?" + strconv.FormatUint(xxhash.Sum64String(canonical.Encode()), 36)
}

func tagKeys(prefix string, tags []string, params url.Values) []string {
	keys := make([]string, 0, len(tags))

	for _, tag := range tags {
		keys = append(keys, QueryKey(prefix+tag, params))
	}

	return keys
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}
