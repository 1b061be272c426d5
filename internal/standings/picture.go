package standings

import (
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
)

// BuildPicture describes every team's playoff outlook. During the regular
// season all conference teams are listed; in the postseason only the seeds.
func (d *Deriver) BuildPicture(seasonType season.Type, year int, rows []domainstandings.Row, bracket playoffs.Bracket) playoffs.Picture {
	pic := playoffs.Picture{
		SeasonYear:     year,
		SeasonType:     int(seasonType),
		AFCTeams:       []playoffs.PictureTeam{},
		NFCTeams:       []playoffs.PictureTeam{},
		SuperBowlTeams: superBowlTeams(bracket),
	}
	if seasonType == season.Postseason {
		pic.AFCTeams = d.postseasonTeams(teams.ConferenceAFC, bracket.AFCSeeds, rows, bracket)
		pic.NFCTeams = d.postseasonTeams(teams.ConferenceNFC, bracket.NFCSeeds, rows, bracket)
		return pic
	}
	pic.AFCTeams = d.regularSeasonTeams(teams.ConferenceAFC, rows)
	pic.NFCTeams = d.regularSeasonTeams(teams.ConferenceNFC, rows)
	return pic
}

func (d *Deriver) regularSeasonTeams(conf string, rows []domainstandings.Row) []playoffs.PictureTeam {
	confRows := ConferenceRows(rows, conf)
	seeds := d.SeedConference(confRows)
	eliminated := d.Eliminated(confRows)

	out := make([]playoffs.PictureTeam, 0, len(confRows))
	seeded := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		seeded[s.Team] = true
		status := playoffs.StatusWildCard
		if s.Seed <= DivisionLeaderSeeds {
			status = playoffs.StatusDivisionLeader
		}
		seed := s.Seed
		out = append(out, playoffs.PictureTeam{
			Team:         s.Team,
			Abbreviation: s.Abbreviation,
			Conference:   conf,
			Status:       status,
			Seed:         &seed,
		})
	}
	for _, r := range SortRows(confRows) {
		if seeded[r.Team] {
			continue
		}
		status := playoffs.StatusInHunt
		if eliminated[r.Team] {
			status = playoffs.StatusEliminated
		}
		out = append(out, playoffs.PictureTeam{
			Team:         r.Team,
			Abbreviation: d.Abbreviation(r.Team),
			Conference:   conf,
			Status:       status,
		})
	}
	return out
}

func (d *Deriver) postseasonTeams(conf string, seeds []playoffs.Seed, rows []domainstandings.Row, bracket playoffs.Bracket) []playoffs.PictureTeam {
	if len(seeds) == 0 {
		seeds = d.SeedConference(ConferenceRows(rows, conf))
	}
	out := make([]playoffs.PictureTeam, 0, len(seeds))
	for _, s := range seeds {
		if len(out) == playoffs.SeedsPerConference {
			break
		}
		status, detail := postseasonStatus(s.Team, bracket)
		seed := s.Seed
		out = append(out, playoffs.PictureTeam{
			Team:         s.Team,
			Abbreviation: s.Abbreviation,
			Conference:   conf,
			Status:       status,
			StatusDetail: detail,
			Seed:         &seed,
		})
	}
	return out
}

func postseasonStatus(team string, bracket playoffs.Bracket) (string, *string) {
	for _, g := range bracket.Games {
		if g.Status != games.StatusFinal || g.Winner == nil {
			continue
		}
		if g.HomeTeam != team && g.AwayTeam != team {
			continue
		}
		if *g.Winner != team {
			detail := "Lost " + g.Round
			return playoffs.StatusEliminated, &detail
		}
		if g.Conference == playoffs.ConferenceSuperBowl {
			detail := "Won Super Bowl"
			return playoffs.StatusChampion, &detail
		}
	}
	return playoffs.StatusAlive, nil
}

func superBowlTeams(bracket playoffs.Bracket) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, g := range bracket.Games {
		if g.Conference != playoffs.ConferenceSuperBowl {
			continue
		}
		for _, team := range []string{g.AwayTeam, g.HomeTeam} {
			if team != "" && !seen[team] {
				seen[team] = true
				out = append(out, team)
			}
		}
	}
	return out
}
