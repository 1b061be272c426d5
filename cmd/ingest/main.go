// Command ingest refreshes the standings files the server reads, optionally
// archiving every run in a bbolt database.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/archive"
	"github.com/preston-bernstein/nfl-scores-service/internal/config"
	"github.com/preston-bernstein/nfl-scores-service/internal/ingest"
	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
	"github.com/preston-bernstein/nfl-scores-service/internal/metrics"
	"github.com/preston-bernstein/nfl-scores-service/internal/server"
	"github.com/preston-bernstein/nfl-scores-service/internal/snapshots"
)

const (
	appVersion     = "dev"
	defaultTimeout = 30 * time.Second
)

type options struct {
	out     string
	dataDir string
	archive string
	every   time.Duration
	timeout time.Duration
	list    int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	opts, err := parseFlags(cfg, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "nfl-scores-ingest",
		Version: appVersion,
		Output:  stderr,
	})

	var store *archive.Store
	if opts.archive != "" {
		store, err = archive.Open(opts.archive)
		if err != nil {
			logging.Error(logger, "archive open failed", err, slog.String("path", opts.archive))
			return 1
		}
		defer store.Close()
	}

	if opts.list > 0 {
		if store == nil {
			fmt.Fprintln(stderr, "-list requires -archive")
			return 2
		}
		if err := listRuns(store, opts.list, stdout); err != nil {
			logging.Error(logger, "archive list failed", err)
			return 1
		}
		return 0
	}

	var arch ingest.Archiver
	if store != nil {
		arch = store
	}
	runner := ingest.New(
		server.NewProvider(cfg, logger, metrics.NewRecorder()),
		snapshots.NewWriter(opts.out, opts.dataDir),
		arch,
		ingest.Options{Interval: opts.every, ArchiveKeep: cfg.Standings.ArchiveKeep, Logger: logger},
	)

	if opts.every <= 0 {
		return runOnce(ctx, runner, opts, stdout, logger)
	}

	logging.Info(logger, "ingesting on interval", slog.Duration("every", opts.every))
	runner.Start(ctx)
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()
	if err := runner.Stop(stopCtx); err != nil {
		logging.Error(logger, "ingestion loop did not stop cleanly", err)
		return 1
	}
	return 0
}

func parseFlags(cfg config.Config, args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.out, "out", cfg.Standings.File, "minimal standings cache file")
	fs.StringVar(&opts.dataDir, "data-dir", cfg.Standings.DataDir, "directory for afc.json, nfc.json and manifest.json")
	fs.StringVar(&opts.archive, "archive", cfg.Standings.ArchivePath, "bbolt archive path (empty disables archiving)")
	fs.DurationVar(&opts.every, "every", 0, "repeat on this interval until interrupted (0 runs once)")
	fs.DurationVar(&opts.timeout, "timeout", defaultTimeout, "deadline for a single run and for shutdown")
	fs.IntVar(&opts.list, "list", 0, "print the newest N archived runs and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.timeout <= 0 {
		opts.timeout = defaultTimeout
	}
	return opts, nil
}

func runOnce(ctx context.Context, runner *ingest.Runner, opts options, stdout io.Writer, logger *slog.Logger) int {
	runCtx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	res, err := runner.RunOnce(runCtx)
	if err != nil {
		logging.Error(logger, "ingestion failed", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %d teams to %s\n", res.Teams, opts.out)
	return 0
}

type runSummary struct {
	FetchedAt time.Time `json:"fetched_at"`
	Teams     int       `json:"teams"`
}

// listRuns prints one JSON object per archived run, newest first.
func listRuns(store *archive.Store, limit int, stdout io.Writer) error {
	runs, err := store.List(limit)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	for _, r := range runs {
		if err := enc.Encode(runSummary{FetchedAt: r.FetchedAt, Teams: len(r.Rows)}); err != nil {
			return err
		}
	}
	return nil
}
