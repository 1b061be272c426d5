package teams

import "strings"

// League lists the 32 franchises ordered by division.
var League = []Franchise{
	{"Buffalo Bills", "BUF", ConferenceAFC, "AFC East"},
	{"Miami Dolphins", "MIA", ConferenceAFC, "AFC East"},
	{"New England Patriots", "NE", ConferenceAFC, "AFC East"},
	{"New York Jets", "NYJ", ConferenceAFC, "AFC East"},
	{"Baltimore Ravens", "BAL", ConferenceAFC, "AFC North"},
	{"Cincinnati Bengals", "CIN", ConferenceAFC, "AFC North"},
	{"Cleveland Browns", "CLE", ConferenceAFC, "AFC North"},
	{"Pittsburgh Steelers", "PIT", ConferenceAFC, "AFC North"},
	{"Houston Texans", "HOU", ConferenceAFC, "AFC South"},
	{"Indianapolis Colts", "IND", ConferenceAFC, "AFC South"},
	{"Jacksonville Jaguars", "JAX", ConferenceAFC, "AFC South"},
	{"Tennessee Titans", "TEN", ConferenceAFC, "AFC South"},
	{"Denver Broncos", "DEN", ConferenceAFC, "AFC West"},
	{"Kansas City Chiefs", "KC", ConferenceAFC, "AFC West"},
	{"Las Vegas Raiders", "LV", ConferenceAFC, "AFC West"},
	{"Los Angeles Chargers", "LAC", ConferenceAFC, "AFC West"},
	{"Dallas Cowboys", "DAL", ConferenceNFC, "NFC East"},
	{"New York Giants", "NYG", ConferenceNFC, "NFC East"},
	{"Philadelphia Eagles", "PHI", ConferenceNFC, "NFC East"},
	{"Washington Commanders", "WAS", ConferenceNFC, "NFC East"},
	{"Chicago Bears", "CHI", ConferenceNFC, "NFC North"},
	{"Detroit Lions", "DET", ConferenceNFC, "NFC North"},
	{"Green Bay Packers", "GB", ConferenceNFC, "NFC North"},
	{"Minnesota Vikings", "MIN", ConferenceNFC, "NFC North"},
	{"Atlanta Falcons", "ATL", ConferenceNFC, "NFC South"},
	{"Carolina Panthers", "CAR", ConferenceNFC, "NFC South"},
	{"New Orleans Saints", "NO", ConferenceNFC, "NFC South"},
	{"Tampa Bay Buccaneers", "TB", ConferenceNFC, "NFC South"},
	{"Arizona Cardinals", "ARI", ConferenceNFC, "NFC West"},
	{"Los Angeles Rams", "LAR", ConferenceNFC, "NFC West"},
	{"San Francisco 49ers", "SF", ConferenceNFC, "NFC West"},
	{"Seattle Seahawks", "SEA", ConferenceNFC, "NFC West"},
}

var byName = func() map[string]Franchise {
	m := make(map[string]Franchise, len(League))
	for _, f := range League {
		m[f.Name] = f
	}
	return m
}()

// Lookup finds a franchise by display name.
func Lookup(name string) (Franchise, bool) {
	f, ok := byName[name]
	return f, ok
}

// Abbreviation returns the known abbreviation for name. Unknown names fall
// back to their first three letters upper-cased, or "UNK" when empty; the
// second result is false in that case so callers can log the miss.
func Abbreviation(name string) (string, bool) {
	if f, ok := byName[name]; ok {
		return f.Abbreviation, true
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "UNK", false
	}
	runes := []rune(trimmed)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes)), false
}

// ConferenceOfDivision returns "AFC" or "NFC" from a division label prefix.
func ConferenceOfDivision(division string) (string, bool) {
	d := strings.ToUpper(strings.TrimSpace(division))
	switch {
	case strings.HasPrefix(d, ConferenceAFC):
		return ConferenceAFC, true
	case strings.HasPrefix(d, ConferenceNFC):
		return ConferenceNFC, true
	default:
		return "", false
	}
}
