package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
	"github.com/preston-bernstein/nfl-scores-service/internal/timeutil"
)

// Config controls how the ESPN client reaches the public API.
type Config struct {
	ScoreboardURL string
	TeamsURL      string
	StandingsURL  string
	HTTPClient    *http.Client
	Timeout       time.Duration
	Timezone      string
	Navigator     season.Navigator
}

// Client fetches scoreboards, teams and standings from ESPN and maps them to domain models.
type Client struct {
	scoreboardURL string
	teamsURL      string
	standingsURL  string
	httpClient    httpDoer
	timeout       time.Duration
	loc           *time.Location
	nav           season.Navigator
	now           func() time.Time
}

// NewClient constructs an ESPN client with the provided configuration.
func NewClient(cfg Config) *Client {
	tz := cfg.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	return &Client{
		scoreboardURL: normalizeURL(cfg.ScoreboardURL, defaultScoreboardURL),
		teamsURL:      normalizeURL(cfg.TeamsURL, defaultTeamsURL),
		standingsURL:  normalizeURL(cfg.StandingsURL, defaultStandingsURL),
		httpClient:    resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		timeout:       resolveTimeout(cfg.Timeout),
		loc:           timeutil.ResolveLocation(tz),
		nav:           cfg.Navigator,
		now:           time.Now,
	}
}

// FetchScoreboard retrieves the scoreboard for q. An empty query returns ESPN's current week.
func (c *Client) FetchScoreboard(ctx context.Context, q season.Query) (games.Scoreboard, error) {
	var payload scoreboardResponse
	if err := c.get(ctx, c.scoreboardURL, q.Values(), &payload); err != nil {
		return games.Scoreboard{}, err
	}
	return mapScoreboard(payload, c.nav, c.loc), nil
}

// FetchPostseasonWeek retrieves the raw postseason events for one week.
func (c *Client) FetchPostseasonWeek(ctx context.Context, year, week int) ([]playoffs.RawGame, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))
	params.Set("seasontype", strconv.Itoa(int(season.Postseason)))
	params.Set("week", strconv.Itoa(week))

	var payload scoreboardResponse
	if err := c.get(ctx, c.scoreboardURL, params, &payload); err != nil {
		return nil, err
	}
	return mapPostseason(payload), nil
}

// FetchTeams retrieves the league's teams.
func (c *Client) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	var payload teamsResponse
	if err := c.get(ctx, c.teamsURL, nil, &payload); err != nil {
		return nil, err
	}
	return mapTeams(payload), nil
}

// FetchStandings retrieves current standings as minimal rows plus full per-division records.
func (c *Client) FetchStandings(ctx context.Context) (standings.Table, error) {
	var payload standingsResponse
	if err := c.get(ctx, c.standingsURL, nil, &payload); err != nil {
		return standings.Table{}, err
	}
	return mapStandings(payload), nil
}

func (c *Client) get(ctx context.Context, base string, params url.Values, dest any) error {
	target, err := withQuery(base, params)
	if err != nil {
		return fmt.Errorf("espn: build url: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("espn: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "espn rate limited",
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if ctx.Err() != nil {
			return classifyTransportError(ctx.Err())
		}
		return fmt.Errorf("%w: %w", providers.ErrMalformedPayload, err)
	}
	return nil
}
