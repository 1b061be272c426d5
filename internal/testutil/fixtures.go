package testutil

import (
	domaingames "github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	domainnews "github.com/preston-bernstein/nfl-scores-service/internal/domain/news"
	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
)

// SampleGame returns a finished game between away and home.
func SampleGame(away, home string) domaingames.Game {
	awayScore, homeScore := 17, 24
	return domaingames.Game{
		AwayTeam:  away,
		HomeTeam:  home,
		AwayScore: &awayScore,
		HomeScore: &homeScore,
		Status:    domaingames.StatusFinal,
		StartTime: "2025-09-21T17:00Z",
	}
}

// SampleRow builds a standings row. An empty division leaves it unset.
func SampleRow(team, division string, wins, losses, ties int) domainstandings.Row {
	row := domainstandings.Row{Team: team, Wins: wins, Losses: losses, Ties: ties}
	if division != "" {
		row.Division = &division
	}
	return row
}

// SampleHeadline returns a headline without a publish time.
func SampleHeadline(title string) domainnews.Headline {
	return domainnews.Headline{
		Title: title,
		Link:  "https://example.com/" + title,
	}
}
