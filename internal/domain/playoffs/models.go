// Package playoffs describes the postseason bracket and the playoff picture.
package playoffs

import "github.com/preston-bernstein/nfl-scores-service/internal/domain/games"

const (
	SeedsPerConference  = 7
	ConferenceSuperBowl = "Super Bowl"
)

// Round names by postseason week.
const (
	RoundWildCard   = "Wild Card"
	RoundDivisional = "Divisional"
	RoundConference = "Conference"
	RoundSuperBowl  = "Super Bowl"
	RoundUnknown    = "Unknown"
)

// RoundName maps a postseason week to its round label.
func RoundName(week int) string {
	switch week {
	case 1:
		return RoundWildCard
	case 2:
		return RoundDivisional
	case 3:
		return RoundConference
	case 4, 5:
		return RoundSuperBowl
	default:
		return RoundUnknown
	}
}

// Competitor is one side of a postseason event as read from the scoreboard.
type Competitor struct {
	Team  string
	Score *int
	Seed  *int
}

// RawGame is an upstream postseason event before bracket assembly.
type RawGame struct {
	Name   string
	Status games.Status
	Home   Competitor
	Away   Competitor
}

// WeekGames groups the raw events of one postseason week.
type WeekGames struct {
	Week  int
	Games []RawGame
}

// Seed is a team's playoff seeding.
type Seed struct {
	Seed         int    `json:"seed"`
	Team         string `json:"team"`
	Abbreviation string `json:"abbreviation"`
	Eliminated   bool   `json:"eliminated"`
}

// Game is one bracket matchup.
type Game struct {
	Round       string       `json:"round"`
	RoundNumber int          `json:"round_number"`
	Conference  string       `json:"conference"`
	HomeTeam    string       `json:"home_team"`
	HomeSeed    *int         `json:"home_seed"`
	HomeScore   *int         `json:"home_score"`
	AwayTeam    string       `json:"away_team"`
	AwaySeed    *int         `json:"away_seed"`
	AwayScore   *int         `json:"away_score"`
	Status      games.Status `json:"status"`
	Winner      *string      `json:"winner"`
}

// Loser returns the losing team of a decided game.
func (g Game) Loser() (string, bool) {
	if g.Winner == nil {
		return "", false
	}
	if *g.Winner == g.AwayTeam {
		return g.HomeTeam, true
	}
	return g.AwayTeam, true
}

// Bracket is the assembled postseason.
type Bracket struct {
	SeasonYear int    `json:"season_year"`
	AFCSeeds   []Seed `json:"afc_seeds"`
	NFCSeeds   []Seed `json:"nfc_seeds"`
	Games      []Game `json:"games"`
}

// EmptyBracket is served when no postseason data is available.
func EmptyBracket(year int) Bracket {
	return Bracket{SeasonYear: year, AFCSeeds: []Seed{}, NFCSeeds: []Seed{}, Games: []Game{}}
}

// Picture statuses.
const (
	StatusDivisionLeader = "division_leader"
	StatusWildCard       = "wild_card"
	StatusInHunt         = "in_hunt"
	StatusEliminated     = "eliminated"
	StatusAlive          = "alive"
	StatusChampion       = "champion"
)

// PictureTeam is one team's playoff outlook.
type PictureTeam struct {
	Team         string  `json:"team"`
	Abbreviation string  `json:"abbreviation"`
	Conference   string  `json:"conference"`
	Status       string  `json:"status"`
	StatusDetail *string `json:"status_detail"`
	Seed         *int    `json:"seed"`
}

// Picture is the league-wide playoff outlook for a season type.
type Picture struct {
	SeasonYear     int           `json:"season_year"`
	SeasonType     int           `json:"season_type"`
	AFCTeams       []PictureTeam `json:"afc_teams"`
	NFCTeams       []PictureTeam `json:"nfc_teams"`
	SuperBowlTeams []string      `json:"super_bowl_teams"`
}
