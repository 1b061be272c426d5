package snapshots

import (
	"path/filepath"
	"strings"
)

const manifestFile = "manifest.json"

// ConferencePath builds the path of a conference file ("afc.json", "nfc.json").
func ConferencePath(dataDir, conference string) string {
	return filepath.Join(dataDir, strings.ToLower(conference)+".json")
}

// ManifestPath builds the path of the manifest inside dataDir.
func ManifestPath(dataDir string) string {
	return filepath.Join(dataDir, manifestFile)
}
