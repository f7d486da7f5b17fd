package opendota

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/user/opendota-mcp/logging"
)

const (
	// DefaultBaseURL is the public OpenDota API root.
	DefaultBaseURL = "https://api.opendota.com/api"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "opendota-mcp-go/1.0"
)

// Client is the single point of outbound communication with the OpenDota
// API. Its configuration is resolved once at construction and read-only
// afterwards, so concurrent calls need no coordination. Failures are never
// retried; the upstream's own rate limiting is not second-guessed here.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	http      *http.Client
	log       *logging.Logger
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		l, _ := logging.New("info", "")
		c.log = l
	}
	return c
}

// get funnels every request: it builds the URL, attaches the API key when
// configured, issues the GET with the identifying header, classifies
// failures, and logs one entry per attempt.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if c.apiKey != "" {
		if q == nil {
			q = url.Values{}
		}
		q.Set("api_key", c.apiKey)
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return AsError(err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	// Logged URL omits the query string so the API key never reaches the log.
	logURL := c.baseURL + path

	start := time.Now()
	res, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.log.Error("request method=GET url=%s duration=%s err=%v", logURL, elapsed, err)
		if isTimeout(err) {
			return Timeout(fmt.Sprintf("request to %s timed out after %s", path, elapsed.Round(time.Millisecond)))
		}
		return API(0, err.Error())
	}
	defer res.Body.Close()

	c.log.Info("request method=GET url=%s status=%d duration=%s", logURL, res.StatusCode, elapsed)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
		return API(res.StatusCode, strings.TrimSpace(string(b)))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return AsError(fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

// GetMatch fetches /matches/{id}.
func (c *Client) GetMatch(ctx context.Context, matchID int64) (*Match, error) {
	var m Match
	if err := c.get(ctx, fmt.Sprintf("/matches/%d", matchID), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetPlayer fetches /players/{id}.
func (c *Client) GetPlayer(ctx context.Context, accountID int64) (*PlayerData, error) {
	var d PlayerData
	if err := c.get(ctx, fmt.Sprintf("/players/%d", accountID), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// PlayerMatchesOptions are the optional filters of /players/{id}/matches.
// Zero values mean "not set".
type PlayerMatchesOptions struct {
	Limit     int
	HeroID    int64
	GameMode  int
	LobbyType int
}

// GetPlayerMatches fetches /players/{id}/matches. The element shape is not
// interpreted here; the body passes through as raw JSON.
func (c *Client) GetPlayerMatches(ctx context.Context, accountID int64, opts PlayerMatchesOptions) (json.RawMessage, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.HeroID > 0 {
		q.Set("hero_id", strconv.FormatInt(opts.HeroID, 10))
	}
	if opts.GameMode > 0 {
		q.Set("game_mode", strconv.Itoa(opts.GameMode))
	}
	if opts.LobbyType > 0 {
		q.Set("lobby_type", strconv.Itoa(opts.LobbyType))
	}

	var raw json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("/players/%d/matches", accountID), q, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetPlayerRecentMatches fetches /players/{id}/recentMatches.
func (c *Client) GetPlayerRecentMatches(ctx context.Context, accountID int64) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("/players/%d/recentMatches", accountID), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetPlayerHeroes fetches /players/{id}/heroes.
func (c *Client) GetPlayerHeroes(ctx context.Context, accountID int64) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("/players/%d/heroes", accountID), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetHeroes fetches the /heroes list.
func (c *Client) GetHeroes(ctx context.Context) ([]Hero, error) {
	var heroes []Hero
	if err := c.get(ctx, "/heroes", nil, &heroes); err != nil {
		return nil, err
	}
	return heroes, nil
}

// SearchPlayers fetches /search?q=query.
func (c *Client) SearchPlayers(ctx context.Context, query string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("q", query)

	var raw json.RawMessage
	if err := c.get(ctx, "/search", q, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetProMatches fetches /proMatches.
func (c *Client) GetProMatches(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/proMatches", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetPublicMatches fetches /publicMatches.
func (c *Client) GetPublicMatches(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/publicMatches", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
