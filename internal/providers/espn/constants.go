package espn

import "time"

const (
	providerName = "espn"

	defaultScoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"
	defaultTeamsURL      = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/teams"
	defaultStandingsURL  = "https://cdn.espn.com/core/nfl/standings?xhr=1"
	defaultHTTPTimeout   = 6 * time.Second
	defaultTimezone      = "Europe/Helsinki"

	// maxErrorBody bounds how much of a failed response is kept on StatusError.
	maxErrorBody = 512

	statusInProgress = "STATUS_IN_PROGRESS"
)
