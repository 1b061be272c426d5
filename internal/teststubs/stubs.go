package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
)

// StubProvider is a test double for providers.DataProvider. Err fails every
// call; the per-method errors fail only that method.
type StubProvider struct {
	Scoreboard  games.Scoreboard
	Scoreboards map[string]games.Scoreboard // keyed by season.Query.Key()
	Postseason  map[int][]playoffs.RawGame
	Teams       []teams.Team
	Table       standings.Table

	Err           error
	ScoreboardErr error
	PostseasonErr map[int]error
	TeamsErr      error
	StandingsErr  error

	Calls  atomic.Int32
	Notify chan struct{}

	mu      sync.Mutex
	queries []season.Query
}

// FetchScoreboard returns the scoreboard registered for the query key, or Scoreboard.
func (s *StubProvider) FetchScoreboard(ctx context.Context, q season.Query) (games.Scoreboard, error) {
	s.track()
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()
	if err := firstErr(s.Err, s.ScoreboardErr); err != nil {
		return games.Scoreboard{}, err
	}
	if sb, ok := s.Scoreboards[q.Key()]; ok {
		return sb, nil
	}
	return s.Scoreboard, nil
}

// FetchPostseasonWeek returns the events registered for week.
func (s *StubProvider) FetchPostseasonWeek(ctx context.Context, year, week int) ([]playoffs.RawGame, error) {
	s.track()
	if err := firstErr(s.Err, s.PostseasonErr[week]); err != nil {
		return nil, err
	}
	return s.Postseason[week], nil
}

// FetchTeams returns Teams.
func (s *StubProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	s.track()
	if err := firstErr(s.Err, s.TeamsErr); err != nil {
		return nil, err
	}
	return s.Teams, nil
}

// FetchStandings returns Table.
func (s *StubProvider) FetchStandings(ctx context.Context) (standings.Table, error) {
	s.track()
	if err := firstErr(s.Err, s.StandingsErr); err != nil {
		return standings.Table{}, err
	}
	return s.Table, nil
}

// Queries returns the scoreboard queries seen so far.
func (s *StubProvider) Queries() []season.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]season.Query, len(s.queries))
	copy(out, s.queries)
	return out
}

func (s *StubProvider) track() {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// StubStandingsStore is a test double for the standings file reader.
type StubStandingsStore struct {
	Rows []standings.Row
	Err  error
}

// LoadStandings returns Rows or Err.
func (s *StubStandingsStore) LoadStandings() ([]standings.Row, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Rows, nil
}

// StubStandingsWriter records what ingestion wrote.
type StubStandingsWriter struct {
	mu     sync.Mutex
	Rows   []standings.Row
	AFC    []standings.ConferenceGroup
	NFC    []standings.ConferenceGroup
	Writes int
	Err    error
}

// WriteStandings records rows.
func (w *StubStandingsWriter) WriteStandings(rows []standings.Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	w.Rows = rows
	w.Writes++
	return nil
}

// WriteConferences records the conference files.
func (w *StubStandingsWriter) WriteConferences(afc, nfc []standings.ConferenceGroup) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	w.AFC, w.NFC = afc, nfc
	return nil
}
