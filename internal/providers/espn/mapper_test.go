package espn

import (
	"encoding/json"
	"testing"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
)

const standingsBody = `{"content": {"standings": {"groups": [
	{"name": "American Football Conference", "abbreviation": "AFC", "groups": [
		{"name": "AFC East", "standings": {"entries": [
			{"team": {"displayName": "Buffalo Bills", "abbreviation": "BUF"}, "stats": [
				{"name": "wins", "value": 11},
				{"name": "losses", "value": "5"},
				{"name": "ties", "value": 1},
				{"name": "winPercent", "value": 0.676},
				{"name": "pointsFor", "value": 451},
				{"name": "pointsAgainst", "value": 311},
				{"name": "streak", "value": 3},
				{"name": "Home", "displayValue": "6-2"},
				{"name": "Road", "displayValue": "5-3-1"},
				{"name": "vs. Div.", "displayValue": "4-2"},
				{"name": "vs. Conf.", "displayValue": "bad"}
			]},
			{"team": {"displayName": "Miami Dolphins", "abbreviation": "MIA"}, "stats": [
				{"name": "wins", "value": "n/a"},
				{"name": "losses", "value": 9}
			]}
		]}}
	]},
	{"name": "National Football Conference", "abbreviation": "NFC", "groups": [
		{"abbreviation": "NFC North", "standings": {"entries": [
			{"team": {"displayName": "Detroit Lions", "abbreviation": "DET"}, "stats": [
				{"name": "wins", "value": 15},
				{"name": "losses", "value": 2}
			]}
		]}}
	]}
]}}}`

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestMapStandingsBuildsRowsAndConferenceFiles(t *testing.T) {
	table := mapStandings(decode[standingsResponse](t, standingsBody))

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 minimal rows, got %d", len(table.Rows))
	}
	bills := table.Rows[0]
	if bills.Team != "Buffalo Bills" || bills.Wins != 11 || bills.Losses != 5 || bills.Ties != 1 {
		t.Fatalf("unexpected row %+v", bills)
	}
	if bills.DivisionName() != "AFC East" {
		t.Fatalf("expected AFC East, got %q", bills.DivisionName())
	}
	if table.Rows[1].DivisionName() != "NFC North" {
		t.Fatalf("expected abbreviation fallback for division, got %q", table.Rows[1].DivisionName())
	}

	if len(table.AFC) != 1 || len(table.NFC) != 1 {
		t.Fatalf("expected one division per conference, got %d/%d", len(table.AFC), len(table.NFC))
	}
	afcTeams := table.AFC[0].Teams
	if len(afcTeams) != 2 {
		t.Fatalf("full records keep teams with missing stats, got %d", len(afcTeams))
	}
	rec := afcTeams[0]
	if rec.PointsDiff != 140 || rec.Streak != 3 || rec.WinPercentage != 0.676 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.HomeRecord != (standings.Split{6, 2}) || rec.AwayRecord != (standings.Split{5, 3}) {
		t.Fatalf("unexpected splits %+v %+v", rec.HomeRecord, rec.AwayRecord)
	}
	if rec.ConferenceRecord != (standings.Split{}) {
		t.Fatalf("unparseable split should be zero, got %+v", rec.ConferenceRecord)
	}
	if afcTeams[1].Wins != 0 || afcTeams[1].Losses != 9 {
		t.Fatalf("unexpected lenient record %+v", afcTeams[1])
	}
}

func TestMapStandingsEmptyPayload(t *testing.T) {
	table := mapStandings(standingsResponse{})
	if table.Rows == nil || table.AFC == nil || table.NFC == nil {
		t.Fatalf("expected non-nil empty slices")
	}
	if table.TeamCount() != 0 {
		t.Fatalf("expected no rows")
	}
}

func TestMapGameSkipsIncompleteEvents(t *testing.T) {
	resp := decode[scoreboardResponse](t, `{"events": [
		{"name": "no competitions"},
		{"competitions": [{"competitors": [{"homeAway": "home", "team": {"displayName": "Solo"}}]}]}
	]}`)
	sb := mapScoreboard(resp, season.Default, nil)
	if len(sb.Games) != 0 {
		t.Fatalf("expected incomplete events dropped, got %d", len(sb.Games))
	}
}

func TestMapGameFallsBackToCompetitorOrder(t *testing.T) {
	resp := decode[scoreboardResponse](t, `{"events": [{
		"date": "not a date",
		"competitions": [{"competitors": [
			{"team": {"shortDisplayName": "Jets"}},
			{"team": {}, "score": null}
		]}]
	}]}`)
	sb := mapScoreboard(resp, season.Default, nil)
	if len(sb.Games) != 1 {
		t.Fatalf("expected one game, got %d", len(sb.Games))
	}
	g := sb.Games[0]
	if g.AwayTeam != "Jets" || g.HomeTeam != "Unknown" {
		t.Fatalf("unexpected teams %q %q", g.AwayTeam, g.HomeTeam)
	}
	if g.AwayScore != nil || g.HomeScore != nil {
		t.Fatalf("missing scores should be nil")
	}
	if g.Status != games.StatusUpcoming {
		t.Fatalf("expected upcoming default, got %s", g.Status)
	}
	if g.StartTimeLocal != nil || g.StartDateTimeLocal != nil {
		t.Fatalf("unparseable date should leave local times nil")
	}
}

func TestMapGameLiveWithoutInProgressNameHasNoClock(t *testing.T) {
	resp := decode[scoreboardResponse](t, `{"events": [{
		"competitions": [{
			"status": {"period": 2, "displayClock": "0:00", "type": {"name": "STATUS_HALFTIME", "state": "in"}},
			"competitors": [
				{"homeAway": "away", "score": "10", "team": {"displayName": "A"}},
				{"homeAway": "home", "score": "7", "team": {"displayName": "B"}}
			]
		}]
	}]}`)
	g := mapScoreboard(resp, season.Default, nil).Games[0]
	if g.Status != games.StatusLive {
		t.Fatalf("expected live, got %s", g.Status)
	}
	if g.GameTime != nil {
		t.Fatalf("halftime should have no game clock, got %q", *g.GameTime)
	}
}

func TestMapScoreboardReplacesInvalidContext(t *testing.T) {
	resp := decode[scoreboardResponse](t, `{"season": {"year": 1900, "type": 7}, "week": {"number": 40}}`)
	got := mapScoreboard(resp, season.Default, nil).Context
	want := season.Context{Year: season.DefaultYear, Week: 1, SeasonType: season.Regular}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestNumberDecodesStringsAndNumbers(t *testing.T) {
	var n struct {
		A number `json:"a"`
		B number `json:"b"`
		C number `json:"c"`
		D number `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a": 7, "b": "12", "c": "abc", "d": null}`), &n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := n.A.Int(); !ok || v != 7 {
		t.Fatalf("expected 7, got %d %v", v, ok)
	}
	if v, ok := n.B.Int(); !ok || v != 12 {
		t.Fatalf("expected 12, got %d %v", v, ok)
	}
	if _, ok := n.C.Int(); ok {
		t.Fatalf("non-numeric string should be absent")
	}
	if n.D.intPtr() != nil {
		t.Fatalf("null should be absent")
	}
}

func TestParseSplit(t *testing.T) {
	cases := map[string]standings.Split{
		"10-7":   {10, 7},
		" 3-2-1": {3, 2},
		"":       {},
		"7":      {},
		"a-b":    {},
	}
	for in, want := range cases {
		if got := parseSplit(in); got != want {
			t.Fatalf("parseSplit(%q) = %v, want %v", in, got, want)
		}
	}
}
