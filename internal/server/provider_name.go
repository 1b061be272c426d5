package server

import (
	"strings"

	"github.com/preston-bernstein/nfl-scores-service/internal/config"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers/espn"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers/fixture"
)

// normalizeProviderName labels provider metrics and logs. The configured name
// wins; otherwise it is derived from the concrete client.
func normalizeProviderName(raw string, provider providers.DataProvider) string {
	if raw = strings.ToLower(strings.TrimSpace(raw)); raw != "" {
		return raw
	}
	switch provider.(type) {
	case *espn.Client:
		return config.ProviderESPN
	case *fixture.Provider:
		return config.ProviderFixture
	default:
		return "provider"
	}
}
