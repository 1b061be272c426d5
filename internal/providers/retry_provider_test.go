package providers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/metrics"
	"github.com/preston-bernstein/nfl-scores-service/internal/testutil"
)

type flakeyProvider struct {
	teststubsProvider
	failures int
	failWith error
	calls    int
}

func (f *flakeyProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	f.calls++
	if f.calls <= f.failures {
		if f.failWith != nil {
			return nil, f.failWith
		}
		return nil, errors.New("boom")
	}
	return []teams.Team{{Name: "ok"}}, nil
}

func newTestRetrying(inner DataProvider, rec *metrics.Recorder, attempts int) *retryingProvider {
	rp := NewRetryingProvider(inner, nil, rec, "flakey", attempts, time.Millisecond).(*retryingProvider)
	rp.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return rp
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rp := NewRetryingProvider(fp, slog.Default(), metrics.NewRecorder(), "flakey", 3, time.Millisecond)

	got, err := rp.FetchTeams(context.Background())
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(got) != 1 || got[0].Name != "ok" {
		t.Fatalf("unexpected teams %+v", got)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	logger, buf := testutil.NewBufferLogger()
	rp := newTestRetrying(fp, metrics.NewRecorder(), 2)
	rp.logger = logger

	_, err := rp.FetchTeams(context.Background())
	if err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
	out := buf.String()
	if !strings.Contains(out, "provider fetch retry") || !strings.Contains(out, "provider fetch failed") {
		t.Fatalf("expected retry and failure logs, got %s", out)
	}
	if !strings.Contains(out, "provider=flakey") {
		t.Fatalf("expected provider field in logs, got %s", out)
	}
}

func TestRetryingProviderDoesNotRetryClientErrors(t *testing.T) {
	fp := &flakeyProvider{failures: 5, failWith: &StatusError{Provider: "espn", StatusCode: 404}}
	rp := newTestRetrying(fp, metrics.NewRecorder(), 3)

	_, err := rp.FetchTeams(context.Background())
	if _, ok := AsStatusError(err); !ok {
		t.Fatalf("expected status error, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchTeams(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	fp := &flakeyProvider{failures: 1, failWith: &RateLimitError{Provider: "test", StatusCode: 429}}
	rp := newTestRetrying(fp, rec, 2)

	got, err := rp.FetchTeams(context.Background())
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected teams %+v", got)
	}
	if hits := rec.RateLimitHits(rp.providerName); hits != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", hits)
	}
	if calls := rec.ProviderCalls(rp.providerName); calls != 2 {
		t.Fatalf("expected 2 provider calls, got %d", calls)
	}
	if errs := rec.ProviderErrors(rp.providerName); errs != 1 {
		t.Fatalf("expected 1 error, got %d", errs)
	}
}

func TestHintedBackOffUsesRetryAfterOnce(t *testing.T) {
	h := &hintedBackOff{BackOff: backoff.NewConstantBackOff(50 * time.Millisecond)}
	h.setHint(3 * time.Second)
	if got := h.NextBackOff(); got != 3*time.Second {
		t.Fatalf("expected retry-after delay, got %s", got)
	}
	if got := h.NextBackOff(); got != 50*time.Millisecond {
		t.Fatalf("expected base delay after hint, got %s", got)
	}

	h.setHint(time.Minute)
	if got := h.NextBackOff(); got != maxRetryAfter {
		t.Fatalf("expected capped retry-after, got %s", got)
	}

	stopped := &hintedBackOff{BackOff: &backoff.StopBackOff{}}
	stopped.setHint(time.Second)
	if got := stopped.NextBackOff(); got != backoff.Stop {
		t.Fatalf("expected stop to win over hint, got %s", got)
	}
}

func TestExponentialBackOffHasJitteredGrowth(t *testing.T) {
	b := exponentialBackOff(40 * time.Millisecond)()
	b.Reset()
	first := b.NextBackOff()
	if first < 20*time.Millisecond || first > 60*time.Millisecond {
		t.Fatalf("expected first delay within jitter of base, got %s", first)
	}
	second := b.NextBackOff()
	if second < 40*time.Millisecond || second > 120*time.Millisecond {
		t.Fatalf("expected doubled delay within jitter, got %s", second)
	}
}

func TestNewRetryingProviderDefaults(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, metrics.NewRecorder(), "", 0, 0).(*retryingProvider)
	if rp.providerName != "provider" {
		t.Fatalf("expected fallback provider name, got %s", rp.providerName)
	}
	if rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", rp.maxAttempts)
	}
	if _, err := rp.FetchStandings(context.Background()); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable for nil inner, got %v", err)
	}
}

func TestRetryingProviderDelegatesEveryMethod(t *testing.T) {
	inner := &teststubsProvider{}
	rp := newTestRetrying(inner, nil, 1)
	ctx := context.Background()

	if _, err := rp.FetchScoreboard(ctx, emptyQuery); err != nil {
		t.Fatalf("scoreboard: %v", err)
	}
	if _, err := rp.FetchPostseasonWeek(ctx, 2024, 1); err != nil {
		t.Fatalf("postseason: %v", err)
	}
	if _, err := rp.FetchStandings(ctx); err != nil {
		t.Fatalf("standings: %v", err)
	}
	if inner.Calls.Load() != 3 {
		t.Fatalf("expected three delegated calls, got %d", inner.Calls.Load())
	}
}
