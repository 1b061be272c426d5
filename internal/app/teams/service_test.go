package teams

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/testutil"
	"github.com/preston-bernstein/nfl-scores-service/internal/teststubs"
)

func TestTeamsCachesList(t *testing.T) {
	p := &teststubs.StubProvider{Teams: []teams.Team{{Name: "Buffalo Bills", Abbreviation: "BUF"}}}
	svc := NewService(p, Options{TTL: time.Hour})

	for i := 0; i < 3; i++ {
		if got := svc.Teams(context.Background()); len(got) != 1 {
			t.Fatalf("expected one team, got %d", len(got))
		}
	}
	if p.Calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", p.Calls.Load())
	}
}

func TestTeamsFailureWithoutCacheReturnsEmpty(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	p := &teststubs.StubProvider{TeamsErr: errors.New("down")}
	svc := NewService(p, Options{TTL: time.Hour, Logger: logger})

	got := svc.Teams(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
	if !strings.Contains(buf.String(), "teams unavailable") {
		t.Fatalf("expected warning log, got %s", buf.String())
	}
}

func TestTeamsFailureServesPreviousList(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &teststubs.StubProvider{Teams: []teams.Team{{Name: "Detroit Lions", Abbreviation: "DET"}}}
	svc := NewService(p, Options{TTL: time.Minute, Now: func() time.Time { return now }})

	svc.Teams(context.Background())
	now = now.Add(time.Hour)
	p.TeamsErr = errors.New("down")

	got := svc.Teams(context.Background())
	if len(got) != 1 || got[0].Abbreviation != "DET" {
		t.Fatalf("expected cached team, got %+v", got)
	}
}

func TestTeamsEmptyUpstreamKeepsPreviousList(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &teststubs.StubProvider{Teams: []teams.Team{{Name: "Detroit Lions", Abbreviation: "DET"}}}
	svc := NewService(p, Options{TTL: time.Minute, Now: func() time.Time { return now }})

	svc.Teams(context.Background())
	now = now.Add(time.Hour)
	p.Teams = nil

	if got := svc.Teams(context.Background()); len(got) != 1 {
		t.Fatalf("expected cached team kept, got %+v", got)
	}
}

func TestTeamsWithoutProvider(t *testing.T) {
	if got := NewService(nil, Options{}).Teams(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty list")
	}
}
