package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds runtime configuration for the server and the ingestion utility.
type Config struct {
	Port       string `env:"PORT" env-default:"4000"`
	Provider   string `env:"PROVIDER" env-default:"espn"`
	MockESPN   string `env:"MOCK_ESPN"`
	AdminToken string `env:"ADMIN_TOKEN"`
	// RequestTimeout bounds each API request, upstream retries included.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"8s"`

	ESPN      ESPNConfig
	News      NewsConfig
	Cache     CacheConfig
	Season    SeasonConfig
	Standings StandingsConfig
	Metrics   MetricsConfig
	Log       LogConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// UseFixtures reports whether upstream calls should be served from fixture data.
func (c Config) UseFixtures() bool {
	return c.Provider == ProviderFixture || parseBool(c.MockESPN, false)
}

func (c *Config) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	if c.Port == "" {
		c.Port = defaultPort
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = defaultProvider
	}
	if parseBool(c.MockESPN, false) {
		c.Provider = ProviderFixture
	}
	c.RequestTimeout = durationOrDefault(c.RequestTimeout, defaultRequestTimeout)
	c.ESPN.normalize()
	c.News.normalize()
	c.Cache.normalize()
	c.Season.normalize()
	c.Standings.normalize()
	c.Metrics.normalize()
}
