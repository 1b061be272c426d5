package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	appgames "github.com/preston-bernstein/nfl-scores-service/internal/app/games"
	appnews "github.com/preston-bernstein/nfl-scores-service/internal/app/news"
	appplayoffs "github.com/preston-bernstein/nfl-scores-service/internal/app/playoffs"
	appstandings "github.com/preston-bernstein/nfl-scores-service/internal/app/standings"
	appteams "github.com/preston-bernstein/nfl-scores-service/internal/app/teams"
	domainnews "github.com/preston-bernstein/nfl-scores-service/internal/domain/news"
	"github.com/preston-bernstein/nfl-scores-service/internal/ingest"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
	"github.com/preston-bernstein/nfl-scores-service/internal/snapshots"
	"github.com/preston-bernstein/nfl-scores-service/internal/testutil"
)

type stubHeadlines struct {
	items []domainnews.Headline
	err   error
}

func (s stubHeadlines) FetchHeadlines(context.Context) ([]domainnews.Headline, error) {
	return s.items, s.err
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	handler *Handler
	clock   *clock
}

type harnessOptions struct {
	store    snapshots.Store
	news     stubHeadlines
	statusFn func() ingest.Status
}

func newHarness(provider providers.DataProvider, opts harnessOptions) *harness {
	clk := &clock{now: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)}
	gamesSvc := appgames.NewService(provider, appgames.Options{TTL: time.Minute, Now: clk.Now})
	standingsSvc := appstandings.NewService(opts.store, provider, appstandings.Options{TTL: time.Minute, Now: clk.Now})
	playoffsSvc := appplayoffs.NewService(provider, gamesSvc, standingsSvc, appplayoffs.Options{
		TTL:     time.Minute,
		Deriver: standingsSvc.Deriver(),
		Now:     clk.Now,
	})
	teamsSvc := appteams.NewService(provider, appteams.Options{TTL: time.Hour, Now: clk.Now})
	newsSvc := appnews.NewService(opts.news, appnews.Options{TTL: time.Minute, Now: clk.Now})

	h := NewHandler(Services{
		Games:     gamesSvc,
		Teams:     teamsSvc,
		Standings: standingsSvc,
		Playoffs:  playoffsSvc,
		News:      newsSvc,
	}, nil, opts.statusFn)
	return &harness{handler: h, clock: clk}
}

func serve(fn http.HandlerFunc, target string) *httptest.ResponseRecorder {
	return testutil.Serve(fn, http.MethodGet, target, nil)
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	return body
}
