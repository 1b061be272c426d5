// Package teams serves the league's team list.
package teams

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/cache"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
)

// CacheName labels the teams cache in logs and metrics.
const CacheName = "teams"

const cacheKey = "all"

var errEmptyTeams = fmt.Errorf("upstream returned no teams: %w", cache.ErrNoUpdate)

// Options configures a Service.
type Options struct {
	TTL      time.Duration
	Logger   *slog.Logger
	Recorder cache.Recorder
	Now      func() time.Time
}

// Service coordinates team lookups.
type Service struct {
	provider providers.TeamProvider
	cache    *cache.Cache[[]teams.Team]
	ttl      time.Duration
	logger   *slog.Logger
}

// NewService constructs a Service backed by provider.
func NewService(provider providers.TeamProvider, opts Options) *Service {
	return &Service{
		provider: provider,
		cache: cache.New[[]teams.Team](cache.Options{
			Name:     CacheName,
			Logger:   opts.Logger,
			Recorder: opts.Recorder,
			Now:      opts.Now,
		}),
		ttl:    opts.TTL,
		logger: opts.Logger,
	}
}

// Teams returns the cached team list. Upstream failures never surface: the
// previous list is served, or an empty one when nothing was ever fetched.
// An empty upstream list does not replace a cached one.
func (s *Service) Teams(ctx context.Context) []teams.Team {
	if s.provider == nil {
		return []teams.Team{}
	}
	list, err := s.cache.GetOrRefresh(ctx, cacheKey, s.ttl, func(ctx context.Context) ([]teams.Team, error) {
		fresh, err := s.provider.FetchTeams(ctx)
		if err != nil {
			return nil, err
		}
		if len(fresh) == 0 {
			return nil, errEmptyTeams
		}
		return fresh, nil
	})
	if err != nil {
		if !errors.Is(err, cache.ErrNoUpdate) {
			logging.Warn(s.logger, "teams unavailable, serving empty list", "error", err)
		}
		return []teams.Team{}
	}
	return list
}
