package standings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers/fixture"
	"github.com/preston-bernstein/nfl-scores-service/internal/snapshots"
	"github.com/preston-bernstein/nfl-scores-service/internal/teststubs"
)

func liveProvider() *teststubs.StubProvider {
	return &teststubs.StubProvider{Table: domainstandings.Table{Rows: fixture.Rows()}}
}

func TestCachedReturnsRows(t *testing.T) {
	store := &teststubs.StubStandingsStore{Rows: []domainstandings.Row{{Team: "Buffalo Bills", Wins: 1}}}
	rows, err := NewService(store, nil, Options{}).Cached()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestCachedMapsStoreErrors(t *testing.T) {
	missing := &teststubs.StubStandingsStore{Err: fmt.Errorf("%w: path", snapshots.ErrNotFound)}
	_, err := NewService(missing, nil, Options{}).Cached()
	require.ErrorIs(t, err, ErrUnavailable)

	corrupt := &teststubs.StubStandingsStore{Err: fmt.Errorf("%w: bad json", snapshots.ErrCorrupt)}
	_, err = NewService(corrupt, nil, Options{}).Cached()
	require.ErrorIs(t, err, ErrCorrupt)

	_, err = NewService(nil, nil, Options{}).Cached()
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLiveServesPreviousRowsOnFailure(t *testing.T) {
	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	p := liveProvider()
	svc := NewService(nil, p, Options{TTL: time.Minute, Now: func() time.Time { return now }})

	first, err := svc.Live(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 32)

	now = now.Add(time.Hour)
	p.StandingsErr = providers.ErrTimeout
	second, err := svc.Live(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.EqualValues(t, 2, p.Calls.Load())
}

func TestLiveWithinTTLDoesNotRefetch(t *testing.T) {
	p := liveProvider()
	svc := NewService(nil, p, Options{TTL: time.Hour})
	for i := 0; i < 3; i++ {
		_, err := svc.Live(context.Background())
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, p.Calls.Load())
}

func TestLiveFailureWithoutCacheReturnsError(t *testing.T) {
	p := &teststubs.StubProvider{StandingsErr: providers.ErrTimeout}
	_, err := NewService(nil, p, Options{TTL: time.Minute}).Live(context.Background())
	require.ErrorIs(t, err, providers.ErrTimeout)

	_, err = NewService(nil, nil, Options{}).Live(context.Background())
	require.ErrorIs(t, err, providers.ErrProviderUnavailable)
}

func TestLiveEmptyUpstreamReturnsEmptyList(t *testing.T) {
	p := &teststubs.StubProvider{}
	rows, err := NewService(nil, p, Options{TTL: time.Minute}).Live(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func TestDivisionsGroupsAndSeeds(t *testing.T) {
	svc := NewService(nil, liveProvider(), Options{TTL: time.Minute})
	div, err := svc.Divisions(context.Background())
	require.NoError(t, err)

	require.Len(t, div.Conferences[teams.ConferenceAFC], 4)
	require.Len(t, div.Conferences[teams.ConferenceNFC], 4)
	require.Len(t, div.Conferences[teams.ConferenceAFC]["AFC East"], 4)
	require.Equal(t, "Buffalo Bills", div.Conferences[teams.ConferenceAFC]["AFC East"][0].Team)

	require.Len(t, div.Seeds[teams.ConferenceAFC], 7)
	require.Len(t, div.Seeds[teams.ConferenceNFC], 7)
	for i, s := range div.Seeds[teams.ConferenceNFC] {
		require.Equal(t, i+1, s.Seed)
	}
}

func TestSeedsPropagatesErrors(t *testing.T) {
	p := &teststubs.StubProvider{StandingsErr: errors.New("boom")}
	_, err := NewService(nil, p, Options{}).Seeds(context.Background())
	require.Error(t, err)

	seeds, err := NewService(nil, liveProvider(), Options{}).Seeds(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Dallas Cowboys", seeds[teams.ConferenceNFC][0].Team)
}
