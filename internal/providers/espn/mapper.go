package espn

import (
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/timeutil"
)

func mapScoreboard(resp scoreboardResponse, nav season.Navigator, loc *time.Location) games.Scoreboard {
	sb := games.Scoreboard{
		Context: nav.ContextFromUpstream(resp.Season.Year.intPtr(), resp.Season.Type.intPtr(), resp.Week.Number.intPtr()),
		Games:   make([]games.Game, 0, len(resp.Events)),
	}
	for _, ev := range resp.Events {
		if g, ok := mapGame(ev, loc); ok {
			sb.Games = append(sb.Games, g)
		}
	}
	return sb
}

func mapGame(ev event, loc *time.Location) (games.Game, bool) {
	comp, away, home, ok := matchup(ev)
	if !ok {
		return games.Game{}, false
	}
	g := games.Game{
		AwayTeam:  teamName(away.Team),
		HomeTeam:  teamName(home.Team),
		AwayScore: score(away),
		HomeScore: score(home),
		Status:    games.StatusFromState(state(ev, comp)),
		StartTime: ev.Date,
	}
	switch g.Status {
	case games.StatusUpcoming:
		if ev.Date != "" {
			g.StartTimeLocal = optional(timeutil.FormatLocalClock(ev.Date, loc))
			g.StartDateTimeLocal = optional(timeutil.FormatLocalDayClock(ev.Date, loc))
		}
	case games.StatusLive:
		if comp.Status.Type.Name == statusInProgress {
			g.GameTime = optional(games.ClockLabel(comp.Status.Period, comp.Status.DisplayClock))
		}
	}
	return g, true
}

func mapPostseason(resp scoreboardResponse) []playoffs.RawGame {
	out := make([]playoffs.RawGame, 0, len(resp.Events))
	for _, ev := range resp.Events {
		comp, away, home, ok := matchup(ev)
		if !ok {
			continue
		}
		out = append(out, playoffs.RawGame{
			Name:   ev.Name,
			Status: games.StatusFromState(state(ev, comp)),
			Home:   playoffs.Competitor{Team: teamName(home.Team), Score: score(home), Seed: home.CuratedRank.Current.intPtr()},
			Away:   playoffs.Competitor{Team: teamName(away.Team), Score: score(away), Seed: away.CuratedRank.Current.intPtr()},
		})
	}
	return out
}

// matchup picks away/home by homeAway, falling back to competitor order.
func matchup(ev event) (competition, competitor, competitor, bool) {
	if len(ev.Competitions) == 0 {
		return competition{}, competitor{}, competitor{}, false
	}
	comp := ev.Competitions[0]
	if len(comp.Competitors) < 2 {
		return competition{}, competitor{}, competitor{}, false
	}
	away, home := comp.Competitors[0], comp.Competitors[1]
	for _, c := range comp.Competitors {
		if c.HomeAway == "away" {
			away = c
			break
		}
	}
	for _, c := range comp.Competitors {
		if c.HomeAway == "home" {
			home = c
			break
		}
	}
	return comp, away, home, true
}

func state(ev event, comp competition) string {
	if s := comp.Status.Type.State; s != "" {
		return s
	}
	return ev.Status.Type.State
}

func teamName(t teamRef) string {
	for _, name := range []string{t.DisplayName, t.ShortDisplayName, t.Name} {
		if name != "" {
			return name
		}
	}
	return "Unknown"
}

func score(c competitor) *int {
	if c.Score == nil {
		return nil
	}
	return c.Score.intPtr()
}

func optional(value string, ok bool) *string {
	if !ok {
		return nil
	}
	return &value
}

func mapTeams(resp teamsResponse) []teams.Team {
	out := []teams.Team{}
	if len(resp.Sports) == 0 || len(resp.Sports[0].Leagues) == 0 {
		return out
	}
	for _, entry := range resp.Sports[0].Leagues[0].Teams {
		name := entry.Team.DisplayName
		if name == "" {
			name = entry.Team.Name
		}
		if name == "" || entry.Team.Abbreviation == "" {
			continue
		}
		out = append(out, teams.Team{Name: name, Abbreviation: entry.Team.Abbreviation})
	}
	return out
}

func mapStandings(resp standingsResponse) standings.Table {
	table := standings.Table{
		Rows: []standings.Row{},
		AFC:  []standings.ConferenceGroup{},
		NFC:  []standings.ConferenceGroup{},
	}
	for _, conf := range resp.Content.Standings.Groups {
		for _, div := range conf.Groups {
			name := divisionName(div)
			group := standings.ConferenceGroup{Name: div.Name, Teams: []standings.TeamRecord{}}
			for _, entry := range div.Standings.Entries {
				if r, ok := minimalRow(entry, name); ok {
					table.Rows = append(table.Rows, r)
				}
				if rec, ok := teamRecord(entry); ok {
					group.Teams = append(group.Teams, rec)
				}
			}
			switch conf.Abbreviation {
			case teams.ConferenceAFC:
				table.AFC = append(table.AFC, group)
			case teams.ConferenceNFC:
				table.NFC = append(table.NFC, group)
			}
		}
	}
	return table
}

func divisionName(g standingsGroup) *string {
	for _, name := range []string{g.Name, g.Abbreviation, g.ShortName} {
		if name != "" {
			return standings.StringPtr(name)
		}
	}
	return nil
}

// minimalRow requires a team name plus parseable wins and losses; ties default to 0.
func minimalRow(e standingsEntry, division *string) (standings.Row, bool) {
	if e.Team.DisplayName == "" {
		return standings.Row{}, false
	}
	stats := indexStats(e.Stats)
	wins, okW := stats["wins"].Value.Int()
	losses, okL := stats["losses"].Value.Int()
	if !okW || !okL {
		return standings.Row{}, false
	}
	ties, _ := stats["ties"].Value.Int()
	return standings.Row{
		Team:     e.Team.DisplayName,
		Wins:     wins,
		Losses:   losses,
		Ties:     ties,
		Division: division,
	}, true
}

// teamRecord builds the full ingestion record. Missing numeric stats read as zero.
func teamRecord(e standingsEntry) (standings.TeamRecord, bool) {
	if e.Team.DisplayName == "" {
		return standings.TeamRecord{}, false
	}
	stats := indexStats(e.Stats)
	intStat := func(name string) int {
		v, _ := stats[name].Value.Int()
		return v
	}
	rec := standings.TeamRecord{
		Name:             e.Team.DisplayName,
		Abbreviation:     e.Team.Abbreviation,
		Wins:             intStat("wins"),
		Losses:           intStat("losses"),
		Ties:             intStat("ties"),
		WinPercentage:    stats["winPercent"].Value.value,
		PointsFor:        intStat("pointsFor"),
		PointsAgainst:    intStat("pointsAgainst"),
		Streak:           intStat("streak"),
		HomeRecord:       parseSplit(stats["Home"].DisplayValue),
		AwayRecord:       parseSplit(stats["Road"].DisplayValue),
		DivisionRecord:   parseSplit(stats["vs. Div."].DisplayValue),
		ConferenceRecord: parseSplit(stats["vs. Conf."].DisplayValue),
	}
	rec.PointsDiff = rec.PointsFor - rec.PointsAgainst
	return rec, true
}

func indexStats(list []stat) map[string]stat {
	out := make(map[string]stat, len(list))
	for _, s := range list {
		if _, dup := out[s.Name]; !dup {
			out[s.Name] = s
		}
	}
	return out
}

// parseSplit reads "W-L" (a trailing "-T" is ignored). Unparseable values give 0-0.
func parseSplit(display string) standings.Split {
	parts := strings.SplitN(strings.TrimSpace(display), "-", 3)
	if len(parts) < 2 {
		return standings.Split{}
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	l, errL := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errL != nil {
		return standings.Split{}
	}
	return standings.Split{w, l}
}
