package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
)

// rateLimitedProvider spaces upstream calls at least interval apart.
type rateLimitedProvider struct {
	next     DataProvider
	interval time.Duration
	logger   *slog.Logger
	slot     chan struct{}
	last     time.Time
}

// NewRateLimitedProvider returns a DataProvider that waits between calls so
// bursts (such as the postseason week fan-out) stay under upstream quotas.
func NewRateLimitedProvider(next DataProvider, interval time.Duration, logger *slog.Logger) DataProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		slot:     make(chan struct{}, 1),
	}
}

func (p *rateLimitedProvider) FetchScoreboard(ctx context.Context, q season.Query) (games.Scoreboard, error) {
	if err := p.wait(ctx, "scoreboard"); err != nil {
		return games.Scoreboard{}, err
	}
	return p.next.FetchScoreboard(ctx, q)
}

func (p *rateLimitedProvider) FetchPostseasonWeek(ctx context.Context, year, week int) ([]playoffs.RawGame, error) {
	if err := p.wait(ctx, "postseason"); err != nil {
		return nil, err
	}
	return p.next.FetchPostseasonWeek(ctx, year, week)
}

func (p *rateLimitedProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	if err := p.wait(ctx, "teams"); err != nil {
		return nil, err
	}
	return p.next.FetchTeams(ctx)
}

func (p *rateLimitedProvider) FetchStandings(ctx context.Context) (standings.Table, error) {
	if err := p.wait(ctx, "standings"); err != nil {
		return standings.Table{}, err
	}
	return p.next.FetchStandings(ctx)
}

func (p *rateLimitedProvider) wait(ctx context.Context, op string) error {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable", "op", op)
		}
		return ErrProviderUnavailable
	}

	if err := ctx.Err(); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", "op", op)
		return err
	}
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", "op", op)
		return ctx.Err()
	case p.slot <- struct{}{}:
	}
	defer func() { <-p.slot }()

	if delay := p.interval - time.Since(p.last); !p.last.IsZero() && delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	p.last = time.Now()
	return nil
}
