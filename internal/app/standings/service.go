// Package standings serves file-backed and live standings plus the views
// derived from them.
package standings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/cache"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
	"github.com/preston-bernstein/nfl-scores-service/internal/snapshots"
	derive "github.com/preston-bernstein/nfl-scores-service/internal/standings"
)

// CacheName labels the live standings cache in logs and metrics.
const CacheName = "live_standings"

const liveKey = "live"

var (
	// ErrUnavailable means the standings file has not been produced yet.
	ErrUnavailable = errors.New("standings data not available")
	// ErrCorrupt means the standings file could not be read.
	ErrCorrupt = errors.New("standings cache is corrupted")

	errEmptyStandings = fmt.Errorf("upstream returned no standings: %w", cache.ErrNoUpdate)
)

// Divisions is the grouped view served by /standings/divisions.
type Divisions struct {
	Conferences derive.Grouped             `json:"conferences"`
	Seeds       map[string][]playoffs.Seed `json:"seeds"`
}

// Options configures a Service.
type Options struct {
	TTL      time.Duration
	Logger   *slog.Logger
	Recorder cache.Recorder
	Now      func() time.Time
}

// Service reads standings from the ingestion file and from upstream.
type Service struct {
	store    snapshots.Store
	provider providers.StandingsProvider
	deriver  *derive.Deriver
	cache    *cache.Cache[[]domainstandings.Row]
	ttl      time.Duration
}

// NewService constructs a Service. Either source may be nil.
func NewService(store snapshots.Store, provider providers.StandingsProvider, opts Options) *Service {
	return &Service{
		store:    store,
		provider: provider,
		deriver:  derive.NewDeriver(opts.Logger),
		cache: cache.New[[]domainstandings.Row](cache.Options{
			Name:     CacheName,
			Logger:   opts.Logger,
			Recorder: opts.Recorder,
			Now:      opts.Now,
		}),
		ttl: opts.TTL,
	}
}

// Deriver exposes the deriver shared with the playoffs service.
func (s *Service) Deriver() *derive.Deriver {
	return s.deriver
}

// Cached returns the rows written by the last ingestion run.
func (s *Service) Cached() ([]domainstandings.Row, error) {
	if s.store == nil {
		return nil, ErrUnavailable
	}
	rows, err := s.store.LoadStandings()
	switch {
	case err == nil:
		return rows, nil
	case errors.Is(err, snapshots.ErrNotFound):
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
}

// Live returns upstream standings, cached for the TTL. A failed refresh
// serves the previous rows; an empty upstream table never replaces them.
func (s *Service) Live(ctx context.Context) ([]domainstandings.Row, error) {
	if s.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	rows, err := s.cache.GetOrRefresh(ctx, liveKey, s.ttl, func(ctx context.Context) ([]domainstandings.Row, error) {
		table, err := s.provider.FetchStandings(ctx)
		if err != nil {
			return nil, err
		}
		if len(table.Rows) == 0 {
			return nil, errEmptyStandings
		}
		return table.Rows, nil
	})
	if errors.Is(err, errEmptyStandings) {
		return []domainstandings.Row{}, nil
	}
	return rows, err
}

// Divisions groups live standings by conference and division and seeds both conferences.
func (s *Service) Divisions(ctx context.Context) (Divisions, error) {
	rows, err := s.Live(ctx)
	if err != nil {
		return Divisions{}, err
	}
	return Divisions{
		Conferences: derive.GroupByConferenceDivision(rows),
		Seeds:       s.deriver.Seeds(rows),
	}, nil
}

// Seeds returns the current seven seeds of each conference.
func (s *Service) Seeds(ctx context.Context) (map[string][]playoffs.Seed, error) {
	rows, err := s.Live(ctx)
	if err != nil {
		return nil, err
	}
	return s.deriver.Seeds(rows), nil
}
