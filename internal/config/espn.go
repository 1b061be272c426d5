package config

import "time"

// ESPNConfig controls how we talk to the ESPN public API.
type ESPNConfig struct {
	ScoreboardURL   string        `env:"ESPN_SCOREBOARD_URL" env-default:"https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"`
	TeamsURL        string        `env:"ESPN_TEAMS_URL" env-default:"https://site.api.espn.com/apis/site/v2/sports/football/nfl/teams"`
	StandingsURL    string        `env:"ESPN_STANDINGS_URL" env-default:"https://cdn.espn.com/core/nfl/standings?xhr=1"`
	Timeout         time.Duration `env:"ESPN_TIMEOUT" env-default:"6s"`
	DisplayTimezone string        `env:"DISPLAY_TIMEZONE" env-default:"Europe/Helsinki"`
	// MinInterval spaces upstream calls; zero disables throttling.
	MinInterval   time.Duration `env:"ESPN_MIN_INTERVAL"`
	RetryAttempts int           `env:"ESPN_RETRY_ATTEMPTS" env-default:"3"`
	RetryDelay    time.Duration `env:"ESPN_RETRY_DELAY" env-default:"200ms"`
}

func (c *ESPNConfig) normalize() {
	c.ScoreboardURL = stringOrDefault(c.ScoreboardURL, defaultScoreboardURL)
	c.TeamsURL = stringOrDefault(c.TeamsURL, defaultTeamsURL)
	c.StandingsURL = stringOrDefault(c.StandingsURL, defaultStandingsURL)
	c.Timeout = durationOrDefault(c.Timeout, defaultESPNTimeout)
	c.DisplayTimezone = stringOrDefault(c.DisplayTimezone, defaultDisplayTimezone)
	if c.MinInterval < 0 {
		c.MinInterval = 0
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = defaultRetryAttempts
	}
	c.RetryDelay = durationOrDefault(c.RetryDelay, defaultRetryDelay)
}

// NewsConfig points at the headline feed.
type NewsConfig struct {
	FeedURL string `env:"NEWS_FEED_URL" env-default:"https://www.espn.com/espn/rss/nfl/news"`
}

func (c *NewsConfig) normalize() {
	c.FeedURL = stringOrDefault(c.FeedURL, defaultNewsFeedURL)
}
