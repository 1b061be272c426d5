package games

import (
	"reflect"
	"testing"
)

func TestStatusFromState(t *testing.T) {
	cases := map[string]Status{
		"in":   StatusLive,
		"IN":   StatusLive,
		"post": StatusFinal,
		"pre":  StatusUpcoming,
		"":     StatusUpcoming,
	}
	for state, want := range cases {
		if got := StatusFromState(state); got != want {
			t.Fatalf("state %q: expected %q got %q", state, want, got)
		}
	}
}

func TestGameJSONTags(t *testing.T) {
	gameType := reflect.TypeOf(Game{})
	fields := map[string]string{
		"AwayTeam":           "team_a",
		"HomeTeam":           "team_b",
		"AwayScore":          "score_a",
		"HomeScore":          "score_b",
		"Status":             "status",
		"StartTime":          "start_time",
		"StartTimeLocal":     "start_time_local",
		"StartDateTimeLocal": "start_date_time_local",
		"GameTime":           "game_time",
	}
	for name, tag := range fields {
		field, ok := gameType.FieldByName(name)
		if !ok {
			t.Fatalf("missing field %s", name)
		}
		if got := field.Tag.Get("json"); got != tag {
			t.Fatalf("field %s expected json tag %s, got %s", name, tag, got)
		}
	}
}

func TestClockLabel(t *testing.T) {
	if got, ok := ClockLabel(2, "7:41"); !ok || got != "Q2 7:41" {
		t.Fatalf("expected Q2 7:41, got %q", got)
	}
	if got, ok := ClockLabel(4, ""); !ok || got != "Q4" {
		t.Fatalf("expected Q4, got %q", got)
	}
	if _, ok := ClockLabel(0, "15:00"); ok {
		t.Fatalf("expected no label without a period")
	}
}

func TestScoreboardEmpty(t *testing.T) {
	if !(Scoreboard{}).Empty() {
		t.Fatalf("expected empty scoreboard")
	}
	if (Scoreboard{Games: []Game{{}}}).Empty() {
		t.Fatalf("expected non-empty scoreboard")
	}
}
