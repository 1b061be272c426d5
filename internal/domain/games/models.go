package games

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
)

// Status is the lifecycle state exposed to clients.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusFinal    Status = "final"
)

// StatusFromState maps ESPN's status.type.state ("pre", "in", "post").
func StatusFromState(state string) Status {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "in":
		return StatusLive
	case "post":
		return StatusFinal
	default:
		return StatusUpcoming
	}
}

// Game is one matchup on the weekly scoreboard. Team A is the away side.
type Game struct {
	AwayTeam           string  `json:"team_a"`
	HomeTeam           string  `json:"team_b"`
	AwayScore          *int    `json:"score_a"`
	HomeScore          *int    `json:"score_b"`
	Status             Status  `json:"status"`
	StartTime          string  `json:"start_time"`
	StartTimeLocal     *string `json:"start_time_local"`
	StartDateTimeLocal *string `json:"start_date_time_local"`
	GameTime           *string `json:"game_time"`
}

// Scoreboard is a week of games together with the season context upstream reported.
type Scoreboard struct {
	Context season.Context `json:"context"`
	Games   []Game         `json:"games"`
}

// Empty reports whether the scoreboard carries no games.
func (s Scoreboard) Empty() bool {
	return len(s.Games) == 0
}

// ClockLabel renders "Q{period} {clock}", or "Q{period}" without a clock.
func ClockLabel(period int, clock string) (string, bool) {
	if period <= 0 {
		return "", false
	}
	label := "Q" + strconv.Itoa(period)
	if clock = strings.TrimSpace(clock); clock != "" {
		label += " " + clock
	}
	return label, true
}
