package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nfl-scores-service/internal/config"
)

func TestRunOnceWritesFilesAndArchive(t *testing.T) {
	t.Setenv("PROVIDER", "fixture")
	dir := t.TempDir()
	out := filepath.Join(dir, "standings_cache.json")
	db := filepath.Join(dir, "archive.db")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-out", out, "-data-dir", dir, "-archive", db}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Contains(t, stdout.String(), "wrote 32 teams")

	for _, name := range []string{out, filepath.Join(dir, "afc.json"), filepath.Join(dir, "nfc.json"), filepath.Join(dir, "manifest.json")} {
		_, err := os.Stat(name)
		require.NoError(t, err, name)
	}

	stdout.Reset()
	code = run(context.Background(), []string{"-archive", db, "-list", "5"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 1)
	var summary runSummary
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &summary))
	require.Equal(t, 32, summary.Teams)
	require.False(t, summary.FetchedAt.IsZero())
}

func TestRunListRequiresArchive(t *testing.T) {
	t.Setenv("PROVIDER", "fixture")
	t.Setenv("ARCHIVE_PATH", "")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-list", "3"}, &stdout, &stderr)
	require.Equal(t, 2, code)
	require.Contains(t, stderr.String(), "-list requires -archive")
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-bogus"}, &stdout, &stderr)
	require.Equal(t, 2, code)
}

func TestRunEveryStopsOnCancel(t *testing.T) {
	t.Setenv("PROVIDER", "fixture")
	dir := t.TempDir()
	out := filepath.Join(dir, "standings_cache.json")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"-out", out, "-data-dir", dir, "-every", "1h"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
}

func TestParseFlagsDefaultsFromConfig(t *testing.T) {
	t.Setenv("STANDINGS_FILE", "custom/standings.json")
	t.Setenv("DATA_DIR", "custom")

	var stderr bytes.Buffer
	cfg := mustLoad(t)
	opts, err := parseFlags(cfg, nil, &stderr)
	require.NoError(t, err)
	require.Equal(t, "custom/standings.json", opts.out)
	require.Equal(t, "custom", opts.dataDir)
	require.Equal(t, defaultTimeout, opts.timeout)
	require.Zero(t, opts.every)
}

func mustLoad(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}
