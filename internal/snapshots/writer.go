package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
)

// Writer persists the standings files and the manifest. Each file is written
// to a temp file then renamed, so readers never observe a partial write.
type Writer struct {
	file    string
	dataDir string
	now     func() time.Time

	mu sync.Mutex
}

// NewWriter constructs a writer for the minimal cache file and the data directory.
func NewWriter(file, dataDir string) *Writer {
	return &Writer{file: file, dataDir: dataDir, now: time.Now}
}

// File returns the minimal standings cache path.
func (w *Writer) File() string {
	if w == nil {
		return ""
	}
	return w.file
}

// DataDir exposes the directory holding conference files and the manifest.
func (w *Writer) DataDir() string {
	if w == nil {
		return ""
	}
	return w.dataDir
}

// WriteStandings replaces the minimal cache file and records the team count.
func (w *Writer) WriteStandings(rows []standings.Row) error {
	if w == nil || w.file == "" {
		return fmt.Errorf("standings writer not configured")
	}
	if rows == nil {
		rows = []standings.Row{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := writeJSON(w.file, rows); err != nil {
		return fmt.Errorf("write standings: %w", err)
	}
	return w.updateManifest(func(m *Manifest, now time.Time) {
		m.Standings = StandingsMeta{File: w.file, Teams: len(rows), LastRefreshed: now}
	})
}

// WriteConferences replaces afc.json and nfc.json.
func (w *Writer) WriteConferences(afc, nfc []standings.ConferenceGroup) error {
	if w == nil || w.dataDir == "" {
		return fmt.Errorf("standings writer not configured")
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, 2)
	for _, c := range []struct {
		name   string
		groups []standings.ConferenceGroup
	}{{teams.ConferenceAFC, afc}, {teams.ConferenceNFC, nfc}} {
		if c.groups == nil {
			c.groups = []standings.ConferenceGroup{}
		}
		path := ConferencePath(w.dataDir, c.name)
		if _, err := writeJSON(path, c.groups); err != nil {
			return fmt.Errorf("write %s: %w", c.name, err)
		}
		files = append(files, filepath.Base(path))
	}
	return w.updateManifest(func(m *Manifest, now time.Time) {
		m.Conferences = FilesMeta{Files: files, LastRefreshed: now}
	})
}

func (w *Writer) updateManifest(apply func(*Manifest, time.Time)) error {
	if w.dataDir == "" {
		return nil
	}
	m, _ := ReadManifest(w.dataDir)
	now := w.now().UTC()
	apply(&m, now)
	return writeManifest(w.dataDir, m, now)
}

// writeJSON writes payload to path unless the file already holds the same
// bytes. It reports whether the file changed.
func writeJSON(path string, payload any) (bool, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return false, err
	}
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	return true, writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
