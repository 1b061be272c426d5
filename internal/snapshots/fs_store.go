// Package snapshots reads and writes the on-disk standings files produced by ingestion.
package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
)

var (
	// ErrNotFound means the standings file has not been written yet.
	ErrNotFound = errors.New("standings file not found")
	// ErrCorrupt means the standings file exists but cannot be read or decoded.
	ErrCorrupt = errors.New("standings file corrupt")
)

// Store loads the minimal standings rows.
type Store interface {
	LoadStandings() ([]standings.Row, error)
}

// FSStore reads the standings cache file from disk.
type FSStore struct {
	file string
}

// NewFSStore constructs a store for the file at path.
func NewFSStore(path string) *FSStore {
	return &FSStore{file: path}
}

// Path returns the file the store reads.
func (s *FSStore) Path() string {
	if s == nil {
		return ""
	}
	return s.file
}

// LoadStandings decodes the cache file. A missing file is ErrNotFound; any
// other read or decode failure is ErrCorrupt.
func (s *FSStore) LoadStandings() ([]standings.Row, error) {
	if s == nil || s.file == "" {
		return nil, ErrNotFound
	}
	var rows []standings.Row
	if err := decodeFile(s.file, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []standings.Row{}
	}
	return rows, nil
}

// LoadConference decodes afc.json or nfc.json from dataDir.
func LoadConference(dataDir, conference string) ([]standings.ConferenceGroup, error) {
	var groups []standings.ConferenceGroup
	if err := decodeFile(ConferencePath(dataDir, conference), &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(payload); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return nil
}
