// Package games serves weekly scoreboards through the TTL cache.
package games

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/cache"
	domaingames "github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
)

// CacheName labels the scoreboard cache in logs and metrics.
const CacheName = "scoreboard"

// errEmptyScoreboard keeps an empty upstream week from replacing a cached one.
var errEmptyScoreboard = fmt.Errorf("empty scoreboard: %w", cache.ErrNoUpdate)

// Options configures a Service.
type Options struct {
	TTL       time.Duration
	Navigator season.Navigator
	Logger    *slog.Logger
	Recorder  cache.Recorder
	Now       func() time.Time
}

// Service coordinates scoreboard lookups and week navigation.
type Service struct {
	provider providers.ScoreboardProvider
	cache    *cache.Cache[domaingames.Scoreboard]
	ttl      time.Duration
	nav      season.Navigator
	now      func() time.Time
}

// NewService constructs a Service backed by provider.
func NewService(provider providers.ScoreboardProvider, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		provider: provider,
		cache: cache.New[domaingames.Scoreboard](cache.Options{
			Name:     CacheName,
			Logger:   opts.Logger,
			Recorder: opts.Recorder,
			Now:      now,
		}),
		ttl: opts.TTL,
		nav: opts.Navigator,
		now: now,
	}
}

// Scoreboard returns the week for q. Queries are normalized before they key
// the cache. An empty upstream week falls back to the last non-empty copy.
func (s *Service) Scoreboard(ctx context.Context, q season.Query) (domaingames.Scoreboard, error) {
	if s.provider == nil {
		return domaingames.Scoreboard{}, providers.ErrProviderUnavailable
	}
	q = s.nav.NormalizeQuery(q)

	var empty *domaingames.Scoreboard
	sb, err := s.cache.GetOrRefresh(ctx, q.Key(), s.ttl, func(ctx context.Context) (domaingames.Scoreboard, error) {
		fresh, err := s.provider.FetchScoreboard(ctx, q)
		if err != nil {
			return domaingames.Scoreboard{}, err
		}
		if fresh.Empty() {
			empty = &fresh
			return domaingames.Scoreboard{}, errEmptyScoreboard
		}
		return fresh, nil
	})
	if errors.Is(err, errEmptyScoreboard) && empty != nil {
		out := *empty
		out.Games = []domaingames.Game{}
		return out, nil
	}
	return sb, err
}

// Weekly returns the games of the requested week, never nil on success.
func (s *Service) Weekly(ctx context.Context, q season.Query) ([]domaingames.Game, error) {
	sb, err := s.Scoreboard(ctx, q)
	if err != nil {
		return nil, err
	}
	if sb.Games == nil {
		return []domaingames.Game{}, nil
	}
	return sb.Games, nil
}

// Context returns the season context upstream reports for q. Without any
// parameters and without upstream data the calendar week is used instead.
func (s *Service) Context(ctx context.Context, q season.Query) (season.Context, error) {
	sb, err := s.Scoreboard(ctx, q)
	if err == nil {
		return sb.Context, nil
	}
	if s.nav.NormalizeQuery(q).IsZero() && !errors.Is(err, context.Canceled) {
		return s.nav.Current(s.now()), nil
	}
	return season.Context{}, err
}

// Resolve completes q from the calendar and clamps it.
func (s *Service) Resolve(q season.Query) season.Context {
	return s.nav.Clamp(q.Fill(s.nav.Current(s.now())))
}

// Navigation returns the neighbouring weeks of the context named by q.
func (s *Service) Navigation(q season.Query) season.Links {
	return s.nav.Links(s.Resolve(q))
}

// Step moves one week in direction d from the context named by q.
func (s *Service) Step(q season.Query, d season.Direction) season.Context {
	return s.nav.Step(s.Resolve(q), d)
}
