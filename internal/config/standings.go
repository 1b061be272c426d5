package config

import "time"

// StandingsConfig controls the on-disk standings cache and the optional in-process refresh.
type StandingsConfig struct {
	File         string        `env:"STANDINGS_FILE" env-default:"data/standings_cache.json"`
	DataDir      string        `env:"DATA_DIR" env-default:"data"`
	ArchivePath  string        `env:"ARCHIVE_PATH"`
	ArchiveKeep  int           `env:"ARCHIVE_KEEP" env-default:"200"`
	SyncEnabled  string        `env:"STANDINGS_SYNC_ENABLED"`
	SyncInterval time.Duration `env:"STANDINGS_SYNC_INTERVAL" env-default:"6h"`
}

// Sync reports whether the server should refresh the standings file itself.
func (c StandingsConfig) Sync() bool {
	return parseBool(c.SyncEnabled, false)
}

func (c *StandingsConfig) normalize() {
	c.File = stringOrDefault(c.File, defaultStandingsFile)
	c.DataDir = stringOrDefault(c.DataDir, defaultDataDir)
	c.SyncInterval = durationOrDefault(c.SyncInterval, defaultSyncInterval)
	if c.ArchiveKeep < 0 {
		c.ArchiveKeep = 0
	}
}
