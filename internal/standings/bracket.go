package standings

import (
	"sort"
	"strings"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
)

// unseeded is ESPN's curatedRank placeholder for teams without a rank.
const unseeded = 99

// ConferenceMap maps team name to "AFC"/"NFC" using the rows' division labels.
func ConferenceMap(rows []domainstandings.Row) map[string]string {
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		if conf, ok := r.Conference(); ok {
			out[r.Team] = conf
		}
	}
	return out
}

// BuildBracket assembles the bracket from postseason weeks. Pro Bowl events
// are skipped and losers of final games are marked eliminated.
func (d *Deriver) BuildBracket(year int, weeks []playoffs.WeekGames, conf map[string]string) playoffs.Bracket {
	bracket := playoffs.EmptyBracket(year)
	seedOf := map[string]int{}
	var seenOrder []string

	for _, wk := range weeks {
		round := playoffs.RoundName(wk.Week)
		for _, raw := range wk.Games {
			if strings.Contains(raw.Name, "Pro Bowl") {
				continue
			}
			g := playoffs.Game{
				Round:       round,
				RoundNumber: wk.Week,
				Conference:  gameConference(wk.Week, raw, conf),
				HomeTeam:    raw.Home.Team,
				HomeSeed:    validSeed(raw.Home.Seed),
				HomeScore:   raw.Home.Score,
				AwayTeam:    raw.Away.Team,
				AwaySeed:    validSeed(raw.Away.Seed),
				AwayScore:   raw.Away.Score,
				Status:      raw.Status,
				Winner:      winner(raw),
			}
			for _, side := range []struct {
				team string
				seed *int
			}{{g.AwayTeam, g.AwaySeed}, {g.HomeTeam, g.HomeSeed}} {
				if side.seed == nil {
					continue
				}
				if _, ok := seedOf[side.team]; !ok {
					seenOrder = append(seenOrder, side.team)
				}
				seedOf[side.team] = *side.seed
			}
			bracket.Games = append(bracket.Games, g)
		}
	}

	eliminated := map[string]bool{}
	for _, g := range bracket.Games {
		if g.Status != games.StatusFinal {
			continue
		}
		if loser, ok := g.Loser(); ok {
			eliminated[loser] = true
		}
	}

	for _, team := range seenOrder {
		entry := playoffs.Seed{
			Seed:         seedOf[team],
			Team:         team,
			Abbreviation: d.Abbreviation(team),
			Eliminated:   eliminated[team],
		}
		switch conf[team] {
		case teams.ConferenceAFC:
			bracket.AFCSeeds = append(bracket.AFCSeeds, entry)
		case teams.ConferenceNFC:
			bracket.NFCSeeds = append(bracket.NFCSeeds, entry)
		}
	}
	sortSeeds(bracket.AFCSeeds)
	sortSeeds(bracket.NFCSeeds)
	return bracket
}

func gameConference(week int, raw playoffs.RawGame, conf map[string]string) string {
	if week >= 4 {
		return playoffs.ConferenceSuperBowl
	}
	if c, ok := conf[raw.Home.Team]; ok {
		return c
	}
	if c, ok := conf[raw.Away.Team]; ok {
		return c
	}
	return ConferenceUnknown
}

func validSeed(seed *int) *int {
	if seed == nil || *seed <= 0 || *seed == unseeded {
		return nil
	}
	v := *seed
	return &v
}

func winner(raw playoffs.RawGame) *string {
	if raw.Status != games.StatusFinal || raw.Home.Score == nil || raw.Away.Score == nil {
		return nil
	}
	switch {
	case *raw.Away.Score > *raw.Home.Score:
		w := raw.Away.Team
		return &w
	case *raw.Home.Score > *raw.Away.Score:
		w := raw.Home.Team
		return &w
	default:
		return nil
	}
}

func sortSeeds(seeds []playoffs.Seed) {
	sort.SliceStable(seeds, func(i, j int) bool {
		if seeds[i].Seed != seeds[j].Seed {
			return seeds[i].Seed < seeds[j].Seed
		}
		return seeds[i].Team < seeds[j].Team
	})
}
