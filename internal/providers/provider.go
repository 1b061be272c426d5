package providers

import (
	"context"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
)

// ScoreboardProvider fetches a week of games. An empty query asks upstream for its current week.
type ScoreboardProvider interface {
	FetchScoreboard(ctx context.Context, q season.Query) (games.Scoreboard, error)
}

// PostseasonProvider fetches the raw events of one postseason week.
type PostseasonProvider interface {
	FetchPostseasonWeek(ctx context.Context, year, week int) ([]playoffs.RawGame, error)
}

// TeamProvider fetches the league's teams.
type TeamProvider interface {
	FetchTeams(ctx context.Context) ([]teams.Team, error)
}

// StandingsProvider fetches current standings.
type StandingsProvider interface {
	FetchStandings(ctx context.Context) (standings.Table, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	ScoreboardProvider
	PostseasonProvider
	TeamProvider
	StandingsProvider
}
