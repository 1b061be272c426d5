package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domaingames "github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
	"github.com/preston-bernstein/nfl-scores-service/internal/teststubs"
	"github.com/preston-bernstein/nfl-scores-service/internal/testutil"
)

func scoreboard() domaingames.Scoreboard {
	return domaingames.Scoreboard{
		Context: season.Context{Year: 2024, Week: 3, SeasonType: season.Regular},
		Games:   []domaingames.Game{testutil.SampleGame("Buffalo Bills", "Miami Dolphins")},
	}
}

func TestGamesDeprecated(t *testing.T) {
	h := newHarness(&teststubs.StubProvider{}, harnessOptions{}).handler

	rr := serve(h.GamesDeprecated, "/games")
	testutil.AssertStatus(t, rr, http.StatusNotImplemented)
	if got := errorBody(t, rr)["error"]; got != "endpoint deprecated - use /games/weekly" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestWeeklyPassesParsedQuery(t *testing.T) {
	provider := &teststubs.StubProvider{Scoreboard: scoreboard()}
	h := newHarness(provider, harnessOptions{}).handler

	rr := serve(h.Weekly, "/games/weekly?year=2024&week=abc&seasonType=2")
	testutil.AssertStatus(t, rr, http.StatusOK)

	var list []domaingames.Game
	testutil.DecodeJSON(t, rr, &list)
	if len(list) != 1 || list[0].AwayTeam != "Buffalo Bills" {
		t.Fatalf("unexpected games %+v", list)
	}

	queries := provider.Queries()
	if len(queries) != 1 {
		t.Fatalf("expected one upstream query, got %d", len(queries))
	}
	q := queries[0]
	if q.Year == nil || *q.Year != 2024 || q.Week != nil || q.SeasonType == nil || *q.SeasonType != season.Regular {
		t.Fatalf("unexpected upstream query %+v", q)
	}
}

func TestWeeklyClampsOutOfRangeWeek(t *testing.T) {
	provider := &teststubs.StubProvider{Scoreboard: scoreboard()}
	h := newHarness(provider, harnessOptions{}).handler

	testutil.AssertStatus(t, serve(h.Weekly, "/games/weekly?week=40&seasonType=2"), http.StatusOK)
	q := provider.Queries()[0]
	if q.Week == nil || *q.Week != season.RegularWeeks {
		t.Fatalf("expected week clamped to %d, got %+v", season.RegularWeeks, q.Week)
	}
}

func TestWeeklyEmptyIsArray(t *testing.T) {
	h := newHarness(&teststubs.StubProvider{}, harnessOptions{}).handler

	rr := serve(h.Weekly, "/games/weekly")
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestWeeklyUpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{name: "timeout", err: fmt.Errorf("%w: %w", providers.ErrTimeout, errors.New("deadline")), status: http.StatusGatewayTimeout, msg: "ESPN API timeout"},
		{name: "status", err: &providers.StatusError{Provider: "espn", StatusCode: 503}, status: http.StatusBadGateway, msg: "ESPN API error: 503"},
		{name: "rate limited", err: &providers.RateLimitError{Provider: "espn", StatusCode: 429}, status: http.StatusBadGateway, msg: "ESPN API error: 429"},
		{name: "transport", err: fmt.Errorf("%w: connection refused", providers.ErrTransport), status: http.StatusBadGateway, msg: "ESPN API request failed"},
		{name: "other", err: errors.New("boom"), status: http.StatusInternalServerError, msg: "Unexpected error fetching games"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(&teststubs.StubProvider{ScoreboardErr: tt.err}, harnessOptions{}).handler

			req := httptest.NewRequest(http.MethodGet, "/games/weekly?week=2", nil)
			req.Header.Set("X-Request-ID", "req-42")
			rr := testutil.ServeRequest(http.HandlerFunc(h.Weekly), req)

			testutil.AssertStatus(t, rr, tt.status)
			body := errorBody(t, rr)
			if body["error"] != tt.msg {
				t.Fatalf("expected %q, got %q", tt.msg, body["error"])
			}
			if body["requestId"] != "req-42" {
				t.Fatalf("expected request id echoed, got %q", body["requestId"])
			}
		})
	}
}

func TestWeeklyServesStaleAfterFailure(t *testing.T) {
	provider := &teststubs.StubProvider{Scoreboard: scoreboard()}
	hs := newHarness(provider, harnessOptions{})

	testutil.AssertStatus(t, serve(hs.handler.Weekly, "/games/weekly"), http.StatusOK)

	provider.ScoreboardErr = errors.New("upstream down")
	hs.clock.Advance(2 * time.Minute)

	rr := serve(hs.handler.Weekly, "/games/weekly")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var list []domaingames.Game
	testutil.DecodeJSON(t, rr, &list)
	if len(list) != 1 {
		t.Fatalf("expected stale games, got %+v", list)
	}
}

func TestWeeklyContext(t *testing.T) {
	h := newHarness(&teststubs.StubProvider{Scoreboard: scoreboard()}, harnessOptions{}).handler

	rr := serve(h.WeeklyContext, "/games/weekly/context")
	testutil.AssertStatus(t, rr, http.StatusOK)

	var c season.Context
	testutil.DecodeJSON(t, rr, &c)
	if c != (season.Context{Year: 2024, Week: 3, SeasonType: season.Regular}) {
		t.Fatalf("unexpected context %+v", c)
	}
}

func TestWeeklyContextFallsBackToCalendarForDefaultQuery(t *testing.T) {
	h := newHarness(&teststubs.StubProvider{ScoreboardErr: errors.New("down")}, harnessOptions{}).handler

	rr := serve(h.WeeklyContext, "/games/weekly/context")
	testutil.AssertStatus(t, rr, http.StatusOK)

	var c season.Context
	testutil.DecodeJSON(t, rr, &c)
	want := season.CurrentContext(time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC))
	if c != want {
		t.Fatalf("expected calendar context %+v, got %+v", want, c)
	}

	rr = serve(h.WeeklyContext, "/games/weekly/context?week=5")
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	if got := errorBody(t, rr)["error"]; got != "Unexpected error fetching context" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestNavigationLinks(t *testing.T) {
	h := newHarness(&teststubs.StubProvider{}, harnessOptions{}).handler

	rr := serve(h.Navigation, "/games/weekly/navigation?year=2024&week=1&seasonType=2")
	testutil.AssertStatus(t, rr, http.StatusOK)

	var links season.Links
	testutil.DecodeJSON(t, rr, &links)
	if links.Prev != (season.Context{Year: 2024, Week: 4, SeasonType: season.Preseason}) {
		t.Fatalf("unexpected prev %+v", links.Prev)
	}
	if links.Next != (season.Context{Year: 2024, Week: 2, SeasonType: season.Regular}) {
		t.Fatalf("unexpected next %+v", links.Next)
	}
}

func TestNavigationDirection(t *testing.T) {
	h := newHarness(&teststubs.StubProvider{}, harnessOptions{}).handler

	tests := []struct {
		target string
		want   season.Context
	}{
		{target: "/games/weekly/navigation?year=2025&week=4&seasonType=1&direction=next", want: season.Context{Year: 2025, Week: 1, SeasonType: season.Regular}},
		{target: "/games/weekly/navigation?year=2025&week=1&seasonType=2&direction=prev", want: season.Context{Year: 2025, Week: 4, SeasonType: season.Preseason}},
		{target: "/games/weekly/navigation?year=2025&week=18&seasonType=2&direction=NEXT", want: season.Context{Year: 2025, Week: 1, SeasonType: season.Postseason}},
	}
	for _, tt := range tests {
		rr := serve(h.Navigation, tt.target)
		testutil.AssertStatus(t, rr, http.StatusOK)
		var got season.Context
		testutil.DecodeJSON(t, rr, &got)
		if got != tt.want {
			t.Fatalf("%s: expected %+v, got %+v", tt.target, tt.want, got)
		}
	}
}

func TestNavigationRejectsUnknownDirection(t *testing.T) {
	h := newHarness(&teststubs.StubProvider{}, harnessOptions{}).handler

	for _, target := range []string{
		"/games/weekly/navigation?year=2025&week=1&seasonType=2&direction=invalid",
		"/games/weekly/navigation?direction=",
	} {
		rr := serve(h.Navigation, target)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		if got := errorBody(t, rr)["error"]; got != "Direction must be 'next' or 'prev'" {
			t.Fatalf("unexpected message %q", got)
		}
	}
}
