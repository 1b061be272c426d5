// Package fixture serves deterministic offline data for every franchise.
package fixture

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/timeutil"
)

const (
	defaultTimezone = "Europe/Helsinki"
	proBowlWeek     = 4
	superBowlWeek   = 5
	kickoffHourUTC  = 17
)

// Provider returns static league data useful for local runs and tests.
type Provider struct {
	now     func() time.Time
	loc     *time.Location
	nav     season.Navigator
	deriver *standings.Deriver
}

// Option customizes a fixture provider.
type Option func(*Provider)

// WithTimezone sets the display timezone used for local kickoff times.
func WithTimezone(name string) Option {
	return func(p *Provider) {
		if loc := timeutil.ResolveLocation(name); loc != nil {
			p.loc = loc
		}
	}
}

// WithNavigator sets the navigator used to resolve the current week.
func WithNavigator(nav season.Navigator) Option {
	return func(p *Provider) { p.nav = nav }
}

// New creates a fixture provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		now:     time.Now,
		loc:     timeutil.ResolveLocation(defaultTimezone),
		nav:     season.Default,
		deriver: standings.NewDeriver(nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchScoreboard returns the week named by q, defaulting to the calendar week.
// Regular and preseason weeks mix final, live and upcoming games.
func (p *Provider) FetchScoreboard(ctx context.Context, q season.Query) (games.Scoreboard, error) {
	if err := ctx.Err(); err != nil {
		return games.Scoreboard{}, err
	}
	c := p.nav.Clamp(q.Fill(p.nav.Current(p.now())))

	if c.SeasonType == season.Postseason {
		raw := p.postseasonWeek(c.Week)
		out := make([]games.Game, 0, len(raw))
		for i, g := range raw {
			out = append(out, games.Game{
				AwayTeam:  g.Away.Team,
				HomeTeam:  g.Home.Team,
				AwayScore: g.Away.Score,
				HomeScore: g.Home.Score,
				Status:    g.Status,
				StartTime: p.kickoff(c, i),
			})
		}
		return games.Scoreboard{Context: c, Games: out}, nil
	}

	half := len(teams.League) / 2
	out := make([]games.Game, 0, half)
	for k := 0; k < half; k++ {
		away := teams.League[k]
		home := teams.League[half+(k+c.Week)%half]
		g := games.Game{
			AwayTeam:  away.Name,
			HomeTeam:  home.Name,
			StartTime: p.kickoff(c, k),
		}
		switch k % 3 {
		case 0:
			g.Status = games.StatusFinal
			g.AwayScore = intPtr(20 + k%7)
			g.HomeScore = intPtr(17 + (k*3)%14)
		case 1:
			g.Status = games.StatusLive
			g.AwayScore = intPtr(k % 10)
			g.HomeScore = intPtr(7)
			label, _ := games.ClockLabel(k%4+1, "7:30")
			g.GameTime = &label
		default:
			g.Status = games.StatusUpcoming
			if v, ok := timeutil.FormatLocalClock(g.StartTime, p.loc); ok {
				g.StartTimeLocal = &v
			}
			if v, ok := timeutil.FormatLocalDayClock(g.StartTime, p.loc); ok {
				g.StartDateTimeLocal = &v
			}
		}
		out = append(out, g)
	}
	return games.Scoreboard{Context: c, Games: out}, nil
}

// FetchPostseasonWeek plays the fixture bracket: the higher seed always wins,
// week 4 is the Pro Bowl and week 5 the Super Bowl. Every year plays the same
// bracket.
func (p *Provider) FetchPostseasonWeek(ctx context.Context, _, week int) ([]playoffs.RawGame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.postseasonWeek(week), nil
}

// FetchTeams returns every franchise.
func (p *Provider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	_ = ctx
	out := make([]teams.Team, 0, len(teams.League))
	for _, f := range teams.League {
		out = append(out, teams.Team{Name: f.Name, Abbreviation: f.Abbreviation})
	}
	return out, nil
}

// FetchStandings returns a completed season. Within each conference the
// first listed team has the best record.
func (p *Provider) FetchStandings(ctx context.Context) (domainstandings.Table, error) {
	if err := ctx.Err(); err != nil {
		return domainstandings.Table{}, err
	}
	table := domainstandings.Table{
		Rows: Rows(),
		AFC:  []domainstandings.ConferenceGroup{},
		NFC:  []domainstandings.ConferenceGroup{},
	}
	byDivision := map[string]int{}
	for _, r := range table.Rows {
		f, _ := teams.Lookup(r.Team)
		target := &table.AFC
		if f.Conference == teams.ConferenceNFC {
			target = &table.NFC
		}
		idx, ok := byDivision[f.Division]
		if !ok {
			*target = append(*target, domainstandings.ConferenceGroup{Name: f.Division})
			idx = len(*target) - 1
			byDivision[f.Division] = idx
		}
		(*target)[idx].Teams = append((*target)[idx].Teams, record(f, r))
	}
	return table, nil
}

// Rows is the fixture's regular-season standings.
func Rows() []domainstandings.Row {
	const played = standings.SeasonGames
	half := len(teams.League) / 2
	rows := make([]domainstandings.Row, 0, len(teams.League))
	for i, f := range teams.League {
		j := i % half
		wins := played - (j*played)/half
		rows = append(rows, domainstandings.Row{
			Team:     f.Name,
			Wins:     wins,
			Losses:   played - wins,
			Division: domainstandings.StringPtr(f.Division),
		})
	}
	return rows
}

func record(f teams.Franchise, r domainstandings.Row) domainstandings.TeamRecord {
	rec := domainstandings.TeamRecord{
		Name:          f.Name,
		Abbreviation:  f.Abbreviation,
		Wins:          r.Wins,
		Losses:        r.Losses,
		WinPercentage: math.Round(r.WinPct()*1000) / 1000,
		PointsFor:     300 + 12*r.Wins,
		PointsAgainst: 300 + 12*r.Losses,
		Streak:        r.Wins%4 - 1,
		HomeRecord:    domainstandings.Split{(r.Wins + 1) / 2, (r.Losses + 1) / 2},
		AwayRecord:    domainstandings.Split{r.Wins / 2, r.Losses / 2},
	}
	rec.PointsDiff = rec.PointsFor - rec.PointsAgainst
	rec.DivisionRecord = domainstandings.Split{r.Wins * 6 / standings.SeasonGames, 6 - r.Wins*6/standings.SeasonGames}
	rec.ConferenceRecord = domainstandings.Split{r.Wins * 12 / standings.SeasonGames, 12 - r.Wins*12/standings.SeasonGames}
	return rec
}

func (p *Provider) postseasonWeek(week int) []playoffs.RawGame {
	if week < 1 || week > superBowlWeek {
		return []playoffs.RawGame{}
	}
	seeds := p.deriver.Seeds(Rows())
	afc, nfc := seeds[teams.ConferenceAFC], seeds[teams.ConferenceNFC]

	if week == proBowlWeek {
		return []playoffs.RawGame{{
			Name:   "Pro Bowl Games",
			Status: games.StatusFinal,
			Home:   playoffs.Competitor{Team: "NFC", Score: intPtr(38)},
			Away:   playoffs.Competitor{Team: "AFC", Score: intPtr(31)},
		}}
	}

	for w := 1; w <= 3; w++ {
		var afcGames, nfcGames []playoffs.RawGame
		afcGames, afc = playRound(teams.ConferenceAFC, w, afc)
		nfcGames, nfc = playRound(teams.ConferenceNFC, w, nfc)
		if w == week {
			return append(afcGames, nfcGames...)
		}
	}
	if len(afc) == 0 || len(nfc) == 0 {
		return []playoffs.RawGame{}
	}
	return []playoffs.RawGame{matchup(fmt.Sprintf("%s: %s at %s", playoffs.RoundSuperBowl, afc[0].Team, nfc[0].Team), nfc[0], afc[0], 0)}
}

// playRound pairs the best remaining seed with the worst. The top seed has a
// bye in the first round.
func playRound(conf string, week int, alive []playoffs.Seed) ([]playoffs.RawGame, []playoffs.Seed) {
	playing := alive
	advancing := []playoffs.Seed{}
	if week == 1 && len(alive) > 0 {
		advancing = append(advancing, alive[0])
		playing = alive[1:]
	}
	out := []playoffs.RawGame{}
	for i := 0; i < len(playing)/2; i++ {
		home, away := playing[i], playing[len(playing)-1-i]
		name := fmt.Sprintf("%s %s: %s at %s", conf, playoffs.RoundName(week), away.Team, home.Team)
		out = append(out, matchup(name, home, away, i))
		advancing = append(advancing, home)
	}
	sort.Slice(advancing, func(i, j int) bool { return advancing[i].Seed < advancing[j].Seed })
	return out, advancing
}

func matchup(name string, home, away playoffs.Seed, i int) playoffs.RawGame {
	return playoffs.RawGame{
		Name:   name,
		Status: games.StatusFinal,
		Home:   playoffs.Competitor{Team: home.Team, Score: intPtr(27 - i), Seed: intPtr(home.Seed)},
		Away:   playoffs.Competitor{Team: away.Team, Score: intPtr(17 + i), Seed: intPtr(away.Seed)},
	}
}

// kickoff spaces games three hours apart from 17:00 UTC on the week's Sunday.
func (p *Provider) kickoff(c season.Context, slot int) string {
	start := season.KickoffDate(c.Year).AddDate(0, 0, 3+7*(c.Week-1))
	if c.SeasonType == season.Preseason {
		start = start.AddDate(0, 0, -7*season.PreseasonWeeks)
	}
	if c.SeasonType == season.Postseason {
		start = start.AddDate(0, 0, 7*season.RegularWeeks)
	}
	at := time.Date(start.Year(), start.Month(), start.Day(), kickoffHourUTC, 0, 0, 0, time.UTC).
		Add(time.Duration(slot%3) * 3 * time.Hour)
	return at.Format(time.RFC3339)
}

func intPtr(v int) *int { return &v }
