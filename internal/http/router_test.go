package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	appgames "github.com/preston-bernstein/nfl-scores-service/internal/app/games"
	appplayoffs "github.com/preston-bernstein/nfl-scores-service/internal/app/playoffs"
	appstandings "github.com/preston-bernstein/nfl-scores-service/internal/app/standings"
	appteams "github.com/preston-bernstein/nfl-scores-service/internal/app/teams"
	domaingames "github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/nfl-scores-service/internal/metrics"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers/fixture"
	"github.com/preston-bernstein/nfl-scores-service/internal/snapshots"
)

func newTestRouter(t *testing.T, admin *handlers.AdminHandler) http.Handler {
	t.Helper()
	provider := fixture.New()
	store := snapshots.NewFSStore(filepath.Join(t.TempDir(), "standings_cache.json"))
	gamesSvc := appgames.NewService(provider, appgames.Options{TTL: time.Minute})
	standingsSvc := appstandings.NewService(store, provider, appstandings.Options{TTL: time.Minute})
	playoffsSvc := appplayoffs.NewService(provider, gamesSvc, standingsSvc, appplayoffs.Options{
		TTL:     time.Minute,
		Deriver: standingsSvc.Deriver(),
	})
	h := handlers.NewHandler(handlers.Services{
		Games:     gamesSvc,
		Teams:     appteams.NewService(provider, appteams.Options{TTL: time.Hour}),
		Standings: standingsSvc,
		Playoffs:  playoffsSvc,
	}, nil, nil)
	return NewRouter(h, admin, nil, metrics.NewRecorder(), 5*time.Second)
}

func serve(router http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newTestRouter(t, nil)

	cases := map[string]int{
		"/":                                           http.StatusOK,
		"/health":                                     http.StatusOK,
		"/ready":                                      http.StatusOK,
		"/games":                                      http.StatusNotImplemented,
		"/games/weekly?year=2025&week=3":              http.StatusOK,
		"/games/weekly/context":                       http.StatusOK,
		"/games/weekly/navigation?year=2025&week=3":   http.StatusOK,
		"/games/weekly/navigation?direction=sideways": http.StatusBadRequest,
		"/standings":                                  http.StatusServiceUnavailable,
		"/standings/live":                             http.StatusOK,
		"/standings/divisions":                        http.StatusOK,
		"/teams":                                      http.StatusOK,
		"/playoffs/bracket":                           http.StatusOK,
	}

	for path, expected := range cases {
		rr := serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("path %s expected %d got %d body=%s", path, expected, rr.Code, rr.Body.String())
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("path %s expected json content type, got %q", path, ct)
		}
		if rr.Header().Get("X-Request-ID") == "" {
			t.Fatalf("path %s expected request id header", path)
		}
	}
}

func TestRouterUnknownPathReturnsJSONError(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := serve(router, http.MethodGet, "/nope", map[string]string{"X-Request-ID": "req-1"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "not found" || body["requestId"] != "req-1" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestRouterRejectsWrongMethod(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := serve(router, http.MethodPost, "/games/weekly", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestRouterAdminRouteOnlyWhenConfigured(t *testing.T) {
	auth := map[string]string{"Authorization": "Bearer secret"}

	router := newTestRouter(t, nil)
	if rr := serve(router, http.MethodPost, "/admin/standings/refresh", auth); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without admin handler, got %d", rr.Code)
	}

	router = newTestRouter(t, handlers.NewAdminHandler(nil, "secret", nil))
	if rr := serve(router, http.MethodPost, "/admin/standings/refresh", auth); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without refresher, got %d", rr.Code)
	}
	if rr := serve(router, http.MethodPost, "/admin/standings/refresh", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}
	if rr := serve(router, http.MethodGet, "/admin/standings/refresh", auth); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET, got %d", rr.Code)
	}
}

// deadlineScoreboard records whether fetches carry a deadline. When block is
// set it waits for the request context to end.
type deadlineScoreboard struct {
	block bool

	mu          sync.Mutex
	hadDeadline bool
}

func (d *deadlineScoreboard) FetchScoreboard(ctx context.Context, q season.Query) (domaingames.Scoreboard, error) {
	_, ok := ctx.Deadline()
	d.mu.Lock()
	d.hadDeadline = ok
	d.mu.Unlock()
	if d.block {
		<-ctx.Done()
		return domaingames.Scoreboard{}, ctx.Err()
	}
	return domaingames.Scoreboard{
		Context: season.Context{Year: 2025, Week: 3, SeasonType: season.Regular},
		Games:   []domaingames.Game{{AwayTeam: "Away", HomeTeam: "Home", Status: domaingames.StatusFinal}},
	}, nil
}

func (d *deadlineScoreboard) sawDeadline() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hadDeadline
}

func newScoreboardRouter(p *deadlineScoreboard, timeout time.Duration) http.Handler {
	gamesSvc := appgames.NewService(p, appgames.Options{TTL: time.Minute})
	h := handlers.NewHandler(handlers.Services{Games: gamesSvc}, nil, nil)
	return NewRouter(h, nil, nil, metrics.NewRecorder(), timeout)
}

func TestRouterRequestContextCarriesDeadline(t *testing.T) {
	p := &deadlineScoreboard{}
	router := newScoreboardRouter(p, 5*time.Second)

	rr := serve(router, http.MethodGet, "/games/weekly?year=2025&week=3&seasonType=2", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !p.sawDeadline() {
		t.Fatal("expected upstream fetch context to carry a deadline")
	}
}

func TestRouterSlowUpstreamTimesOut(t *testing.T) {
	p := &deadlineScoreboard{block: true}
	router := newScoreboardRouter(p, 50*time.Millisecond)

	start := time.Now()
	rr := serve(router, http.MethodGet, "/games/weekly?year=2025&week=3&seasonType=2", nil)
	elapsed := time.Since(start)

	if rr.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d body=%s", rr.Code, rr.Body.String())
	}
	if elapsed > 2*time.Second {
		t.Fatalf("expected request bounded by its deadline, took %s", elapsed)
	}
}

func TestRouterWithoutTimeoutLeavesContextUnbounded(t *testing.T) {
	p := &deadlineScoreboard{}
	router := newScoreboardRouter(p, 0)

	if rr := serve(router, http.MethodGet, "/games/weekly?year=2025&week=3&seasonType=2", nil); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if p.sawDeadline() {
		t.Fatal("expected no deadline when the timeout is disabled")
	}
}
