// Package ingest refreshes the on-disk standings files from the upstream feed,
// either once or on an interval.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/archive"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
	"github.com/preston-bernstein/nfl-scores-service/internal/metrics"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
)

const (
	defaultInterval = 6 * time.Hour
	readyFailures   = 3
)

// ErrNoStandings is returned when upstream answers without any team rows.
var ErrNoStandings = errors.New("upstream returned no standings")

// Writer persists the minimal standings file and the per-conference files.
type Writer interface {
	WriteStandings(rows []standings.Row) error
	WriteConferences(afc, nfc []standings.ConferenceGroup) error
}

// Archiver records each successful run.
type Archiver interface {
	Save(ctx context.Context, run archive.Run) error
	Prune(keep int) (int, error)
}

// Options tune a Runner. Zero values are fine.
type Options struct {
	Interval    time.Duration
	ArchiveKeep int
	Logger      *slog.Logger
	Recorder    *metrics.Recorder
}

// Result summarises one successful run.
type Result struct {
	Teams     int       `json:"teams"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Status describes the recent health of the ingestion loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether a run has succeeded and the loop is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailures
}

// Runner fetches standings and writes them out.
type Runner struct {
	provider providers.StandingsProvider
	writer   Writer
	archive  Archiver
	keep     int
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	runMu sync.Mutex

	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	wg       sync.WaitGroup

	statusMu sync.RWMutex
	status   Status
}

// New builds a Runner. archive may be nil.
func New(provider providers.StandingsProvider, writer Writer, arch Archiver, opts Options) *Runner {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Runner{
		provider: provider,
		writer:   writer,
		archive:  arch,
		keep:     opts.ArchiveKeep,
		logger:   opts.Logger,
		metrics:  opts.Recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// RunOnce performs one ingestion. Concurrent calls are serialized.
func (r *Runner) RunOnce(ctx context.Context) (Result, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	start := time.Now()
	at := r.now()
	r.recordAttempt(at)

	res, err := r.ingest(ctx, at)
	if r.metrics != nil {
		r.metrics.RecordIngestCycle(time.Since(start), err)
	}
	if err != nil {
		logging.Error(r.logger, "standings ingestion failed", err,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		r.recordFailure(err)
		return Result{}, err
	}
	r.recordSuccess(at)
	logging.Info(r.logger, "standings ingested",
		logging.FieldCount, res.Teams,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (r *Runner) ingest(ctx context.Context, at time.Time) (Result, error) {
	if r.provider == nil {
		return Result{}, providers.ErrProviderUnavailable
	}
	if r.writer == nil {
		return Result{}, errors.New("no standings writer configured")
	}
	table, err := r.provider.FetchStandings(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch standings: %w", err)
	}
	if len(table.Rows) == 0 {
		return Result{}, ErrNoStandings
	}
	if err := r.writer.WriteStandings(table.Rows); err != nil {
		return Result{}, fmt.Errorf("write standings: %w", err)
	}
	if len(table.AFC) > 0 || len(table.NFC) > 0 {
		if err := r.writer.WriteConferences(table.AFC, table.NFC); err != nil {
			return Result{}, fmt.Errorf("write conferences: %w", err)
		}
	} else {
		logging.Warn(r.logger, "standings payload had no conference detail, conference files left as is")
	}
	r.archiveRun(ctx, at, table.Rows)
	return Result{Teams: len(table.Rows), FetchedAt: at}, nil
}

// archiveRun logs archive failures without failing the run.
func (r *Runner) archiveRun(ctx context.Context, at time.Time, rows []standings.Row) {
	if r.archive == nil {
		return
	}
	if err := r.archive.Save(ctx, archive.Run{FetchedAt: at, Rows: rows}); err != nil {
		logging.Warn(r.logger, "archiving standings run failed", "error", err)
		return
	}
	if r.keep > 0 {
		if removed, err := r.archive.Prune(r.keep); err != nil {
			logging.Warn(r.logger, "pruning standings archive failed", "error", err)
		} else if removed > 0 {
			logging.Debug(r.logger, "pruned standings archive", logging.FieldCount, removed)
		}
	}
}

// Start runs once immediately and then on every interval until ctx ends or Stop is called.
func (r *Runner) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	ticker := time.NewTicker(r.interval)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer ticker.Stop()
		logging.Info(r.logger, "standings ingestion started", logging.FieldDurationMS, r.interval.Milliseconds())
		_, _ = r.RunOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				logging.Info(r.logger, "standings ingestion stopped")
				return
			case <-r.done:
				logging.Info(r.logger, "standings ingestion stopped")
				return
			case <-ticker.C:
				_, _ = r.RunOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight run, bounded by ctx.
func (r *Runner) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() { close(r.done) })
	finished := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a snapshot of the loop's recent health.
func (r *Runner) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

func (r *Runner) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Runner) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Runner) recordFailure(err error) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	r.status.LastError = err.Error()
}
