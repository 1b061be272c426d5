package server

import (
	"log/slog"

	"github.com/preston-bernstein/nfl-scores-service/internal/archive"
	"github.com/preston-bernstein/nfl-scores-service/internal/config"
	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
	"github.com/preston-bernstein/nfl-scores-service/internal/snapshots"
)

type storageComponents struct {
	store   *snapshots.FSStore
	writer  *snapshots.Writer
	archive *archive.Store
}

// buildStorage wires the standings file and the optional archive. An archive
// that cannot be opened is logged and left out.
func buildStorage(cfg config.Config, logger *slog.Logger) storageComponents {
	components := storageComponents{
		store:  snapshots.NewFSStore(cfg.Standings.File),
		writer: snapshots.NewWriter(cfg.Standings.File, cfg.Standings.DataDir),
	}
	if cfg.Standings.ArchivePath == "" {
		return components
	}
	store, err := archive.Open(cfg.Standings.ArchivePath)
	if err != nil {
		logging.Warn(logger, "archive unavailable, continuing without it",
			slog.String("path", cfg.Standings.ArchivePath),
			slog.Any("error", err),
		)
		return components
	}
	components.archive = store
	return components
}
