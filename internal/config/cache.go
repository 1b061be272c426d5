package config

import "time"

// CacheConfig holds per-resource TTLs for the in-process cache.
type CacheConfig struct {
	GamesTTL         time.Duration `env:"GAMES_TTL" env-default:"60s"`
	TeamsTTL         time.Duration `env:"TEAMS_TTL" env-default:"24h"`
	LiveStandingsTTL time.Duration `env:"LIVE_STANDINGS_TTL" env-default:"5m"`
	NewsTTL          time.Duration `env:"NEWS_TTL" env-default:"10m"`
}

func (c *CacheConfig) normalize() {
	c.GamesTTL = durationOrDefault(c.GamesTTL, defaultGamesTTL)
	c.TeamsTTL = durationOrDefault(c.TeamsTTL, defaultTeamsTTL)
	c.LiveStandingsTTL = durationOrDefault(c.LiveStandingsTTL, defaultLiveTTL)
	c.NewsTTL = durationOrDefault(c.NewsTTL, defaultNewsTTL)
}

// SeasonConfig controls calendar boundaries.
type SeasonConfig struct {
	PostseasonWeeks int `env:"POSTSEASON_WEEKS" env-default:"5"`
}

func (c *SeasonConfig) normalize() {
	if c.PostseasonWeeks < 4 || c.PostseasonWeeks > 5 {
		c.PostseasonWeeks = defaultPostseasonWeeks
	}
}
