// Package standings holds the standings shapes shared by the live feed,
// the on-disk cache file and the ingestion output.
package standings

import "github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"

// Row is the minimal per-team standing served by /standings and /standings/live.
type Row struct {
	Team     string  `json:"team"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Ties     int     `json:"ties"`
	Division *string `json:"division"`
}

// DivisionName returns the division label or "" when unknown.
func (r Row) DivisionName() string {
	if r.Division == nil {
		return ""
	}
	return *r.Division
}

// Conference derives "AFC"/"NFC" from the division label prefix.
func (r Row) Conference() (string, bool) {
	return teams.ConferenceOfDivision(r.DivisionName())
}

// Played is the number of decided games.
func (r Row) Played() int {
	return r.Wins + r.Losses + r.Ties
}

// WinPct counts ties as half a win. Teams without games have 0.
func (r Row) WinPct() float64 {
	played := r.Played()
	if played == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(played)
}

// Split is a won-lost pair such as a home or division record.
type Split [2]int

// TeamRecord is the full standing captured by ingestion.
type TeamRecord struct {
	Name             string  `json:"name"`
	Abbreviation     string  `json:"abbreviation"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Ties             int     `json:"ties"`
	WinPercentage    float64 `json:"win_percentage"`
	PointsFor        int     `json:"points_for"`
	PointsAgainst    int     `json:"points_against"`
	PointsDiff       int     `json:"points_diff"`
	Streak           int     `json:"streak"`
	HomeRecord       Split   `json:"home_record"`
	AwayRecord       Split   `json:"away_record"`
	DivisionRecord   Split   `json:"division_record"`
	ConferenceRecord Split   `json:"conference_record"`
}

// ConferenceGroup is one division's teams inside a conference file.
type ConferenceGroup struct {
	Name  string       `json:"name"`
	Teams []TeamRecord `json:"teams"`
}

// Table is everything parsed from one standings payload.
type Table struct {
	Rows []Row             `json:"rows"`
	AFC  []ConferenceGroup `json:"afc"`
	NFC  []ConferenceGroup `json:"nfc"`
}

// TeamCount returns the number of minimal rows.
func (t Table) TeamCount() int {
	return len(t.Rows)
}

// StringPtr is a helper for building rows with a division.
func StringPtr(s string) *string {
	return &s
}
