package standings

import (
	"log/slog"
	"sort"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
)

const (
	// SeasonGames is the length of the regular season schedule.
	SeasonGames = 17
	// DivisionLeaderSeeds is how many seeds go to division winners.
	DivisionLeaderSeeds = 4
	// huntRank is the last conference rank still considered in contention late in the season.
	huntRank = 10
)

// Deriver turns standings into seeds, brackets and pictures.
type Deriver struct {
	logger      *slog.Logger
	seasonGames int
}

// NewDeriver builds a Deriver. The logger receives abbreviation fallbacks.
func NewDeriver(logger *slog.Logger) *Deriver {
	return &Deriver{logger: logger, seasonGames: SeasonGames}
}

// Abbreviation resolves a team abbreviation, warning when the name is unknown.
func (d *Deriver) Abbreviation(name string) string {
	abbr, ok := teams.Abbreviation(name)
	if !ok && d != nil {
		logging.Warn(d.logger, "unknown team name, using fallback abbreviation",
			logging.FieldTeam, name,
			"abbreviation", abbr,
		)
	}
	return abbr
}

// SeedConference seeds up to seven teams from a single conference's rows.
// Seeds 1-4 are division leaders by record, seeds 5-7 the best of the rest.
func (d *Deriver) SeedConference(rows []domainstandings.Row) []playoffs.Seed {
	leaders, rest := splitLeaders(rows)
	if len(leaders) > DivisionLeaderSeeds {
		rest = SortRows(append(rest, leaders[DivisionLeaderSeeds:]...))
		leaders = leaders[:DivisionLeaderSeeds]
	}

	eliminated := d.Eliminated(rows)
	seeds := make([]playoffs.Seed, 0, playoffs.SeedsPerConference)
	add := func(r domainstandings.Row) {
		seeds = append(seeds, playoffs.Seed{
			Seed:         len(seeds) + 1,
			Team:         r.Team,
			Abbreviation: d.Abbreviation(r.Team),
			Eliminated:   eliminated[r.Team],
		})
	}
	for _, r := range leaders {
		add(r)
	}
	for _, r := range rest {
		if len(seeds) == playoffs.SeedsPerConference {
			break
		}
		add(r)
	}
	return seeds
}

// Seeds seeds both conferences.
func (d *Deriver) Seeds(rows []domainstandings.Row) map[string][]playoffs.Seed {
	return map[string][]playoffs.Seed{
		teams.ConferenceAFC: d.SeedConference(ConferenceRows(rows, teams.ConferenceAFC)),
		teams.ConferenceNFC: d.SeedConference(ConferenceRows(rows, teams.ConferenceNFC)),
	}
}

// Eliminated approximates mathematical elimination within one conference.
// A team is out when at least seven other teams are guaranteed a better win
// percentage than its best reachable one, or when it sits outside the top ten
// with two or fewer games left. Current division leaders are never flagged.
func (d *Deriver) Eliminated(rows []domainstandings.Row) map[string]bool {
	games := SeasonGames
	if d != nil && d.seasonGames > 0 {
		games = d.seasonGames
	}
	leaders, _ := splitLeaders(rows)
	isLeader := make(map[string]bool, len(leaders))
	for _, r := range leaders {
		isLeader[r.Team] = true
	}

	ranked := SortRows(rows)
	out := make(map[string]bool, len(ranked))
	for rank, r := range ranked {
		if isLeader[r.Team] {
			continue
		}
		remaining := games - r.Played()
		if remaining < 0 {
			remaining = 0
		}
		ceiling := (float64(r.Wins+remaining) + 0.5*float64(r.Ties)) / float64(games)

		ahead := 0
		for _, other := range ranked {
			if other.Team == r.Team {
				continue
			}
			floor := (float64(other.Wins) + 0.5*float64(other.Ties)) / float64(games)
			if floor > ceiling {
				ahead++
			}
		}
		if ahead >= playoffs.SeedsPerConference || (rank >= huntRank && remaining <= 2) {
			out[r.Team] = true
		}
	}
	return out
}

// splitLeaders returns division leaders sorted by record and every other row sorted.
func splitLeaders(rows []domainstandings.Row) (leaders, rest []domainstandings.Row) {
	byDivision := map[string][]domainstandings.Row{}
	var order []string
	for _, r := range rows {
		div := r.DivisionName()
		if _, ok := byDivision[div]; !ok {
			order = append(order, div)
		}
		byDivision[div] = append(byDivision[div], r)
	}
	sort.Strings(order)
	for _, div := range order {
		sorted := SortRows(byDivision[div])
		leaders = append(leaders, sorted[0])
		rest = append(rest, sorted[1:]...)
	}
	return SortRows(leaders), SortRows(rest)
}
