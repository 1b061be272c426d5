// Package news serves cached league headlines.
package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/cache"
	domainnews "github.com/preston-bernstein/nfl-scores-service/internal/domain/news"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
	newsprovider "github.com/preston-bernstein/nfl-scores-service/internal/providers/news"
)

const (
	// CacheName labels the headline cache in logs and metrics.
	CacheName = "news"
	// DefaultLimit is used when the caller asks for no particular count.
	DefaultLimit = 10
	// MaxLimit caps a single response.
	MaxLimit = 50

	cacheKey = "headlines"
)

// Options configures a Service.
type Options struct {
	TTL      time.Duration
	Logger   *slog.Logger
	Recorder cache.Recorder
	Now      func() time.Time
}

// Service returns headlines from the feed, cached for the TTL.
type Service struct {
	provider newsprovider.HeadlineProvider
	cache    *cache.Cache[[]domainnews.Headline]
	ttl      time.Duration
}

// NewService constructs a Service.
func NewService(provider newsprovider.HeadlineProvider, opts Options) *Service {
	return &Service{
		provider: provider,
		cache: cache.New[[]domainnews.Headline](cache.Options{
			Name:     CacheName,
			Logger:   opts.Logger,
			Recorder: opts.Recorder,
			Now:      opts.Now,
		}),
		ttl: opts.TTL,
	}
}

// Headlines returns at most limit headlines in feed order. Non-positive
// limits use DefaultLimit; larger ones are capped at MaxLimit.
func (s *Service) Headlines(ctx context.Context, limit int) ([]domainnews.Headline, error) {
	if s.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	list, err := s.cache.GetOrRefresh(ctx, cacheKey, s.ttl, s.provider.FetchHeadlines)
	if err != nil {
		return nil, err
	}
	limit = ClampLimit(limit)
	if len(list) > limit {
		list = list[:limit]
	}
	out := make([]domainnews.Headline, len(list))
	copy(out, list)
	return out, nil
}

// ClampLimit applies DefaultLimit and MaxLimit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
