package royale

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// BattleType filters clan battles.
type BattleType string

// Clan battle types.
const (
	BattleAll      = BattleType("all")
	BattleWar      = BattleType("war")
	BattleClanMate = BattleType("clanMate")
)

// Page limits battle lists, zero value requests default list.
type Page struct {
	// Max is a maximum count of results, must be set if Page is set.
	Max int

	// Page is a zero-based page number.
	Page int
}

func (p Page) query() (url.Values, error) {
	if p.Max < 0 {
		return nil, fmt.Errorf("%w: max must be positive, %d given", ErrInvalidArgument, p.Max)
	}

	if p.Page < 0 {
		return nil, fmt.Errorf("%w: page must be non-negative, %d given", ErrInvalidArgument, p.Page)
	}

	if p.Page > 0 && p.Max == 0 {
		return nil, fmt.Errorf("%w: max must be set with page", ErrInvalidArgument)
	}

	q := url.Values{}

	if p.Max > 0 {
		q.Set("max", strconv.Itoa(p.Max))
	}

	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}

	return q, nil
}

// Player returns player profiles, a document per tag.
func (c *Client) Player(ctx context.Context, tags ...string) ([]json.RawMessage, error) {
	return c.byTags(ctx, "player", "player/%s", playerPrefix, tags)
}

// PlayerChests returns upcoming chests of players, a document per tag.
func (c *Client) PlayerChests(ctx context.Context, tags ...string) ([]json.RawMessage, error) {
	return c.byTags(ctx, "player_chests", "player/%s/chests", playerChestsPrefix, tags)
}

// Clan returns clan profiles, a document per tag.
func (c *Client) Clan(ctx context.Context, tags ...string) ([]json.RawMessage, error) {
	return c.byTags(ctx, "clan", "clan/%s", clanPrefix, tags)
}

func (c *Client) byTags(ctx context.Context, name, pathFormat, prefix string, tags []string) ([]json.RawMessage, error) {
	t, err := validateTags(tags)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, request{
		name:  name,
		ns:    c.dynamic,
		path:  fmt.Sprintf(pathFormat, joinTags(t)),
		keys:  tagKeys(prefix, t, nil),
		split: true,
	})
}

// PlayerBattles returns recent battles of players merged in a single list.
//
// Battles of a single player are cached per page.
func (c *Client) PlayerBattles(ctx context.Context, page Page, tags ...string) ([]json.RawMessage, error) {
	t, err := validateTags(tags)
	if err != nil {
		return nil, err
	}

	q, err := page.query()
	if err != nil {
		return nil, err
	}

	return c.battles(ctx, request{
		name:  "player_battles",
		ns:    c.dynamic,
		path:  "player/" + joinTags(t) + "/battle",
		query: q,
		keys:  tagKeys(playerBattlesPrefix, t, q),
	})
}

// ClanBattles returns recent battles of clans merged in a single list.
//
// Battles of a single clan are cached per battle type and page.
func (c *Client) ClanBattles(ctx context.Context, battleType BattleType, page Page, tags ...string) ([]json.RawMessage, error) {
	switch battleType {
	case BattleAll, BattleWar, BattleClanMate:
	default:
		return nil, fmt.Errorf("%w: unknown battle type %q", ErrInvalidArgument, battleType)
	}

	t, err := validateTags(tags)
	if err != nil {
		return nil, err
	}

	q, err := page.query()
	if err != nil {
		return nil, err
	}

	keys := tagKeys(clanBattlesPrefix+strings.ToLower(string(battleType[0])), t, q)

	q.Set("type", string(battleType))

	return c.battles(ctx, request{
		name:  "clan_battles",
		ns:    c.dynamic,
		path:  "clan/" + joinTags(t) + "/battle",
		query: q,
		keys:  keys,
	})
}

func (c *Client) battles(ctx context.Context, r request) ([]json.RawMessage, error) {
	r.check = func(docs []json.RawMessage) error {
		battles, err := flatten(docs)
		if err != nil {
			return err
		}

		if len(battles) == 0 {
			return newAPIError(http.StatusNotFound, "no battles found")
		}

		return nil
	}

	docs, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	return flatten(docs)
}

func flatten(docs []json.RawMessage) ([]json.RawMessage, error) {
	var all []json.RawMessage

	for _, doc := range docs {
		var list []json.RawMessage

		if err := json.Unmarshal(doc, &list); err != nil {
			return nil, fmt.Errorf("%w: battle list expected: %v", ErrInvalidResponse, err)
		}

		all = append(all, list...)
	}

	return all, nil
}

// Version returns API server version.
func (c *Client) Version(ctx context.Context) (string, error) {
	return c.text(ctx, "version", versionKey)
}

// Health returns API server health report.
func (c *Client) Health(ctx context.Context) (string, error) {
	return c.text(ctx, "health", healthKey)
}

func (c *Client) text(ctx context.Context, path, key string) (string, error) {
	docs, err := c.do(ctx, request{
		name: path,
		ns:   c.serverInfo,
		path: path,
		keys: []string{key},
		text: true,
	})
	if err != nil {
		return "", err
	}

	return string(docs[0]), nil
}

// Status returns API server status document.
func (c *Client) Status(ctx context.Context) (json.RawMessage, error) {
	return c.document(ctx, c.serverInfo, "status", statusKey)
}

// Endpoints returns a list of API endpoints.
func (c *Client) Endpoints(ctx context.Context) (json.RawMessage, error) {
	return c.document(ctx, c.constants, "endpoints", endpointsKey)
}

func (c *Client) document(ctx context.Context, ns *namespace, path, key string) (json.RawMessage, error) {
	docs, err := c.do(ctx, request{
		name: path,
		ns:   ns,
		path: path,
		keys: []string{key},
	})
	if err != nil {
		return nil, err
	}

	return docs[0], nil
}
