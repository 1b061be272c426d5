package testutil

import (
	"path/filepath"
	"testing"

	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/snapshots"
)

// NewTempWriter returns a standings writer whose file and data dir live in a temp dir.
func NewTempWriter(t *testing.T) *snapshots.Writer {
	t.Helper()
	dir := t.TempDir()
	return snapshots.NewWriter(filepath.Join(dir, "standings_cache.json"), dir)
}

// WriteStandings writes rows through w, failing the test on error.
func WriteStandings(t *testing.T, w *snapshots.Writer, rows []domainstandings.Row) {
	t.Helper()
	if err := w.WriteStandings(rows); err != nil {
		t.Fatalf("failed to write standings: %v", err)
	}
}
