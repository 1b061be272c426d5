package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest records when each standings file was last refreshed.
type Manifest struct {
	Version     int           `json:"version"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Standings   StandingsMeta `json:"standings"`
	Conferences FilesMeta     `json:"conferences"`
}

// StandingsMeta describes the minimal cache file.
type StandingsMeta struct {
	File          string    `json:"file"`
	Teams         int       `json:"teams"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

// FilesMeta describes the conference files.
type FilesMeta struct {
	Files         []string  `json:"files"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:     1,
		Conferences: FilesMeta{Files: []string{}},
	}
}

// ReadManifest loads the manifest in dataDir. A missing or unreadable
// manifest yields the default with the error.
func ReadManifest(dataDir string) (Manifest, error) {
	f, err := os.Open(ManifestPath(dataDir))
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	return m, nil
}

func writeManifest(dataDir string, m Manifest, now time.Time) error {
	m.GeneratedAt = now
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(dataDir), data)
}
