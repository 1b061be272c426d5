package server

import (
	"log/slog"

	"github.com/preston-bernstein/nfl-scores-service/internal/config"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers/espn"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	nav := season.NewNavigator(cfg.Season.PostseasonWeeks)
	switch cfg.Provider {
	case config.ProviderFixture:
		return fixture.New(fixture.WithTimezone(cfg.ESPN.DisplayTimezone), fixture.WithNavigator(nav))
	case config.ProviderESPN, "":
		return espn.NewClient(espn.Config{
			ScoreboardURL: cfg.ESPN.ScoreboardURL,
			TeamsURL:      cfg.ESPN.TeamsURL,
			StandingsURL:  cfg.ESPN.StandingsURL,
			Timeout:       cfg.ESPN.Timeout,
			Timezone:      cfg.ESPN.DisplayTimezone,
			Navigator:     nav,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New(fixture.WithTimezone(cfg.ESPN.DisplayTimezone), fixture.WithNavigator(nav))
	}
}
