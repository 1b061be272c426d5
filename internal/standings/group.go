// Package standings derives division tables, playoff seeds, the bracket and
// the playoff picture from raw standings. Nothing here performs I/O.
package standings

import (
	"sort"

	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
)

// ConferenceUnknown holds rows whose division does not name a conference.
const ConferenceUnknown = "Unknown"

// Grouped maps conference -> division -> ordered rows.
type Grouped map[string]map[string][]domainstandings.Row

// Less orders rows by win percentage (ties count half), then fewer losses,
// then team name.
func Less(a, b domainstandings.Row) bool {
	pa, pb := a.WinPct(), b.WinPct()
	if pa != pb {
		return pa > pb
	}
	if a.Losses != b.Losses {
		return a.Losses < b.Losses
	}
	return a.Team < b.Team
}

// SortRows returns a sorted copy of rows.
func SortRows(rows []domainstandings.Row) []domainstandings.Row {
	out := make([]domainstandings.Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// GroupByConferenceDivision buckets rows by conference and division. Rows
// without a recognisable conference land under ConferenceUnknown with their
// division label, or "" when they have none.
func GroupByConferenceDivision(rows []domainstandings.Row) Grouped {
	out := Grouped{}
	for _, r := range rows {
		conf, ok := r.Conference()
		if !ok {
			conf = ConferenceUnknown
		}
		div := r.DivisionName()
		if out[conf] == nil {
			out[conf] = map[string][]domainstandings.Row{}
		}
		out[conf][div] = append(out[conf][div], r)
	}
	for _, divisions := range out {
		for div, list := range divisions {
			divisions[div] = SortRows(list)
		}
	}
	return out
}

// ConferenceRows returns the rows belonging to conf.
func ConferenceRows(rows []domainstandings.Row, conf string) []domainstandings.Row {
	out := make([]domainstandings.Row, 0, len(rows)/2)
	for _, r := range rows {
		if c, ok := r.Conference(); ok && c == conf {
			out = append(out, r)
		}
	}
	return out
}
