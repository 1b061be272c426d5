package server

import (
	"context"

	"github.com/preston-bernstein/nfl-scores-service/internal/ingest"
)

// Runner defines the ingestion loop behavior needed by the server.
type Runner interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() ingest.Status
}
