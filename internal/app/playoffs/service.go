// Package playoffs assembles the postseason bracket and the playoff picture.
package playoffs

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/cache"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
	derive "github.com/preston-bernstein/nfl-scores-service/internal/standings"
)

const (
	// CacheName labels the bracket cache in logs and metrics.
	CacheName = "bracket"
	// DefaultYear is used when no season context is available.
	DefaultYear = 2024
)

// ContextSource reports the season upstream considers current.
type ContextSource interface {
	Context(ctx context.Context, q season.Query) (season.Context, error)
}

// RowsSource supplies live standings rows.
type RowsSource interface {
	Live(ctx context.Context) ([]domainstandings.Row, error)
}

// Options configures a Service.
type Options struct {
	TTL             time.Duration
	PostseasonWeeks int
	Deriver         *derive.Deriver
	Logger          *slog.Logger
	Recorder        cache.Recorder
	Now             func() time.Time
}

// Service builds playoff views from postseason scoreboards and standings.
type Service struct {
	postseason providers.PostseasonProvider
	contexts   ContextSource
	rows       RowsSource
	deriver    *derive.Deriver
	cache      *cache.Cache[playoffs.Bracket]
	ttl        time.Duration
	weeks      int
	logger     *slog.Logger
}

// NewService constructs a Service.
func NewService(postseason providers.PostseasonProvider, contexts ContextSource, rows RowsSource, opts Options) *Service {
	deriver := opts.Deriver
	if deriver == nil {
		deriver = derive.NewDeriver(opts.Logger)
	}
	weeks := opts.PostseasonWeeks
	if weeks <= 0 {
		weeks = season.DefaultPostseasonWeeks
	}
	return &Service{
		postseason: postseason,
		contexts:   contexts,
		rows:       rows,
		deriver:    deriver,
		cache: cache.New[playoffs.Bracket](cache.Options{
			Name:     CacheName,
			Logger:   opts.Logger,
			Recorder: opts.Recorder,
			Now:      opts.Now,
		}),
		ttl:    opts.TTL,
		weeks:  weeks,
		logger: opts.Logger,
	}
}

// Bracket returns the bracket of the current season. It never fails: weeks
// that cannot be fetched are skipped, and with no postseason data at all the
// empty bracket is served.
func (s *Service) Bracket(ctx context.Context) playoffs.Bracket {
	if s.postseason == nil {
		return playoffs.EmptyBracket(DefaultYear)
	}
	year := s.current(ctx).Year
	b, err := s.cache.GetOrRefresh(ctx, strconv.Itoa(year), s.ttl, func(ctx context.Context) (playoffs.Bracket, error) {
		return s.buildBracket(ctx, year)
	})
	if err != nil {
		logging.Error(s.logger, "playoff bracket unavailable", err, logging.FieldYear, year)
		return playoffs.EmptyBracket(DefaultYear)
	}
	return b
}

func (s *Service) buildBracket(ctx context.Context, year int) (playoffs.Bracket, error) {
	conf := s.conferences(ctx)
	weeks := make([]playoffs.WeekGames, 0, s.weeks)
	var lastErr error
	for wk := 1; wk <= s.weeks; wk++ {
		raw, err := s.postseason.FetchPostseasonWeek(ctx, year, wk)
		if err != nil {
			logging.Warn(s.logger, "failed to fetch playoff week",
				logging.FieldYear, year,
				logging.FieldWeek, wk,
				"error", err,
			)
			lastErr = err
			continue
		}
		weeks = append(weeks, playoffs.WeekGames{Week: wk, Games: raw})
	}
	if len(weeks) == 0 {
		return playoffs.Bracket{}, lastErr
	}
	return s.deriver.BuildBracket(year, weeks, conf), nil
}

// Picture describes each team's playoff outlook. A nil seasonType uses the
// current context; preseason is treated as the regular season.
func (s *Service) Picture(ctx context.Context, seasonType *season.Type) (playoffs.Picture, error) {
	current := s.current(ctx)
	st := current.SeasonType
	if seasonType != nil {
		st = *seasonType
	}
	if st != season.Postseason {
		st = season.Regular
	}

	rows, err := s.liveRows(ctx)
	if st == season.Regular {
		if err != nil {
			return playoffs.Picture{}, err
		}
		return s.deriver.BuildPicture(st, current.Year, rows, playoffs.EmptyBracket(current.Year)), nil
	}

	bracket := s.Bracket(ctx)
	return s.deriver.BuildPicture(st, bracket.SeasonYear, rows, bracket), nil
}

func (s *Service) current(ctx context.Context) season.Context {
	if s.contexts != nil {
		if c, err := s.contexts.Context(ctx, season.Query{}); err == nil {
			return c
		}
	}
	return season.Context{Year: DefaultYear, Week: 1, SeasonType: season.Regular}
}

func (s *Service) liveRows(ctx context.Context) ([]domainstandings.Row, error) {
	if s.rows == nil {
		return nil, providers.ErrProviderUnavailable
	}
	return s.rows.Live(ctx)
}

// conferences maps team name to conference from live standings, falling
// back to the static league table.
func (s *Service) conferences(ctx context.Context) map[string]string {
	rows, err := s.liveRows(ctx)
	if err == nil && len(rows) > 0 {
		return derive.ConferenceMap(rows)
	}
	if err != nil {
		logging.Warn(s.logger, "live standings unavailable for bracket, using league table", "error", err)
	}
	out := make(map[string]string, len(teams.League))
	for _, f := range teams.League {
		out[f.Name] = f.Conference
	}
	return out
}
