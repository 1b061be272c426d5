// Package archive keeps a history of ingestion runs in a bbolt database.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
)

const (
	bucketRuns = "runs"

	// keyLayout is RFC3339 with fixed-width nanoseconds in UTC so keys sort chronologically.
	keyLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("archive closed")

// Run is one archived ingestion result.
type Run struct {
	FetchedAt time.Time         `json:"fetched_at"`
	Rows      []standings.Row `json:"rows"`
}

// Store is a bbolt-backed run archive.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the archive at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketRuns)); err != nil {
			return fmt.Errorf("creating runs bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	if s == nil || s.db == nil {
		return ""
	}
	return s.db.Path()
}

// Save stores run under its fetch time. A run with the same timestamp is replaced.
func (s *Store) Save(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if run.FetchedAt.IsZero() {
		run.FetchedAt = time.Now()
	}
	run.FetchedAt = run.FetchedAt.UTC()
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshaling run: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketRuns)).Put(runKey(run.FetchedAt), data)
	})
}

// Latest returns the newest run. ok is false when the archive is empty.
func (s *Store) Latest() (Run, bool, error) {
	runs, err := s.List(1)
	if err != nil || len(runs) == 0 {
		return Run{}, false, err
	}
	return runs[0], true, nil
}

// List returns up to limit runs, newest first. A non-positive limit returns all runs.
func (s *Store) List(limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	runs := []Run{}
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketRuns)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(runs) == limit {
				break
			}
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("decoding run %s: %w", k, err)
			}
			runs = append(runs, run)
		}
		return nil
	})
	return runs, err
}

// Prune keeps the newest keep runs and deletes the rest. It returns how many were removed.
func (s *Store) Prune(keep int) (int, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	if keep < 0 {
		keep = 0
	}
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRuns))
		var stale [][]byte
		seen := 0
		c := b.Cursor()
		for k, _ := c.Last(); k != nil; k, _ = c.Prev() {
			seen++
			if seen > keep {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

func runKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyLayout))
}
