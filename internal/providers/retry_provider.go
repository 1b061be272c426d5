package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 2 * time.Second
	// maxRetryAfter caps upstream Retry-After hints so a request stays within its budget.
	maxRetryAfter = 5 * time.Second
	jitterFactor  = 0.5
)

// retryingProvider wraps a DataProvider with exponential backoff and jitter.
type retryingProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	recorder     *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/baseDelay are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, baseDelay time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if baseDelay <= 0 {
		baseDelay = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		recorder:     recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff:   exponentialBackOff(baseDelay),
	}
}

func exponentialBackOff(base time.Duration) func() backoff.BackOff {
	return func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = base
		b.RandomizationFactor = jitterFactor
		b.Multiplier = 2
		b.MaxInterval = maxBackoff
		b.MaxElapsedTime = 0
		return b
	}
}

func (r *retryingProvider) FetchScoreboard(ctx context.Context, q season.Query) (games.Scoreboard, error) {
	return retry(ctx, r, "scoreboard", func(ctx context.Context) (games.Scoreboard, error) {
		return r.inner.FetchScoreboard(ctx, q)
	})
}

func (r *retryingProvider) FetchPostseasonWeek(ctx context.Context, year, week int) ([]playoffs.RawGame, error) {
	return retry(ctx, r, "postseason", func(ctx context.Context) ([]playoffs.RawGame, error) {
		return r.inner.FetchPostseasonWeek(ctx, year, week)
	})
}

func (r *retryingProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	return retry(ctx, r, "teams", func(ctx context.Context) ([]teams.Team, error) {
		return r.inner.FetchTeams(ctx)
	})
}

func (r *retryingProvider) FetchStandings(ctx context.Context) (standings.Table, error) {
	return retry(ctx, r, "standings", func(ctx context.Context) (standings.Table, error) {
		return r.inner.FetchStandings(ctx)
	})
}

func retry[T any](ctx context.Context, r *retryingProvider, op string, fetch func(context.Context) (T, error)) (T, error) {
	var result T
	if r.inner == nil {
		return result, ErrProviderUnavailable
	}

	hinted := &hintedBackOff{BackOff: r.newBackOff()}
	policy := backoff.WithContext(backoff.WithMaxRetries(hinted, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()
		v, err := fetch(ctx)
		r.recorder.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			result = v
			return nil
		}
		if rlErr, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.providerName, rlErr.RetryAfter)
			hinted.setHint(rlErr.RetryAfter)
		}
		if !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"op", op,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"error", err,
		)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
			"op", op,
			"attempts", attempt,
			"error", err,
		)
		var zero T
		return zero, err
	}
	return result, nil
}

// hintedBackOff substitutes a one-shot Retry-After delay for the next interval.
type hintedBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (h *hintedBackOff) setHint(d time.Duration) {
	if d > maxRetryAfter {
		d = maxRetryAfter
	}
	h.hint = d
}

func (h *hintedBackOff) NextBackOff() time.Duration {
	next := h.BackOff.NextBackOff()
	if h.hint > 0 && next != backoff.Stop {
		next = h.hint
	}
	h.hint = 0
	return next
}

func (h *hintedBackOff) Reset() {
	h.hint = 0
	h.BackOff.Reset()
}
