package standings

import (
	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
)

// leagueRows gives every franchise a distinct record. Within each conference
// the first listed team is best; played is split into wins and losses.
func leagueRows(played int) []domainstandings.Row {
	rows := make([]domainstandings.Row, 0, len(teams.League))
	for i, f := range teams.League {
		j := i % 16
		wins := played - (j*played)/16
		if wins > played {
			wins = played
		}
		rows = append(rows, domainstandings.Row{
			Team:     f.Name,
			Wins:     wins,
			Losses:   played - wins,
			Division: domainstandings.StringPtr(f.Division),
		})
	}
	return rows
}

func row(team string, wins, losses, ties int, division string) domainstandings.Row {
	r := domainstandings.Row{Team: team, Wins: wins, Losses: losses, Ties: ties}
	if division != "" {
		r.Division = domainstandings.StringPtr(division)
	}
	return r
}

func intPtr(v int) *int { return &v }
