package config

import "time"

const (
	envPort            = "PORT"
	envProvider        = "PROVIDER"
	envMockESPN        = "MOCK_ESPN"
	envAdminToken      = "ADMIN_TOKEN"
	envRequestTimeout  = "REQUEST_TIMEOUT"
	envScoreboardURL   = "ESPN_SCOREBOARD_URL"
	envTeamsURL        = "ESPN_TEAMS_URL"
	envStandingsURL    = "ESPN_STANDINGS_URL"
	envESPNTimeout     = "ESPN_TIMEOUT"
	envDisplayTimezone = "DISPLAY_TIMEZONE"
	envMinInterval     = "ESPN_MIN_INTERVAL"
	envRetryAttempts   = "ESPN_RETRY_ATTEMPTS"
	envRetryDelay      = "ESPN_RETRY_DELAY"
	envNewsFeedURL     = "NEWS_FEED_URL"
	envGamesTTL        = "GAMES_TTL"
	envTeamsTTL        = "TEAMS_TTL"
	envLiveTTL         = "LIVE_STANDINGS_TTL"
	envNewsTTL         = "NEWS_TTL"
	envPostseasonWeeks = "POSTSEASON_WEEKS"
	envStandingsFile   = "STANDINGS_FILE"
	envDataDir         = "DATA_DIR"
	envArchivePath     = "ARCHIVE_PATH"
	envArchiveKeep     = "ARCHIVE_KEEP"
	envSyncEnabled     = "STANDINGS_SYNC_ENABLED"
	envSyncInterval    = "STANDINGS_SYNC_INTERVAL"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"

	defaultPort            = "4000"
	defaultProvider        = ProviderESPN
	defaultScoreboardURL   = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"
	defaultTeamsURL        = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/teams"
	defaultStandingsURL    = "https://cdn.espn.com/core/nfl/standings?xhr=1"
	defaultNewsFeedURL     = "https://www.espn.com/espn/rss/nfl/news"
	defaultESPNTimeout     = 6 * time.Second
	defaultRequestTimeout  = 8 * time.Second
	defaultDisplayTimezone = "Europe/Helsinki"
	defaultRetryAttempts   = 3
	defaultRetryDelay      = 200 * time.Millisecond
	defaultGamesTTL        = 60 * time.Second
	defaultTeamsTTL        = 24 * time.Hour
	defaultLiveTTL         = 5 * time.Minute
	defaultNewsTTL         = 10 * time.Minute
	// ESPN numbers the Super Bowl as postseason week 5; week 4 is the Pro Bowl gap.
	defaultPostseasonWeeks = 5
	defaultStandingsFile   = "data/standings_cache.json"
	defaultDataDir         = "data"
	defaultSyncInterval    = 6 * time.Hour
	defaultMetricsPort     = "9090"
	defaultServiceName     = "nfl-scores-service"
)

// Provider names accepted by PROVIDER.
const (
	ProviderESPN    = "espn"
	ProviderFixture = "fixture"
)
