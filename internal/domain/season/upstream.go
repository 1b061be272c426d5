package season

// ContextFromUpstream validates the season reported by the scoreboard feed.
// Missing or out-of-range values are replaced by DefaultYear, Regular and week 1.
func (n Navigator) ContextFromUpstream(year, seasonType, wk *int) Context {
	c := Context{Year: DefaultYear, Week: 1, SeasonType: Regular}
	if year != nil && *year >= MinYear && *year <= MaxYear {
		c.Year = *year
	}
	if seasonType != nil && Type(*seasonType).Valid() {
		c.SeasonType = Type(*seasonType)
	}
	if wk != nil {
		lo, hi := n.Limits(c.SeasonType)
		if *wk >= lo && *wk <= hi {
			c.Week = *wk
		}
	}
	return c
}

// ContextFromUpstream uses the default navigator.
func ContextFromUpstream(year, seasonType, wk *int) Context {
	return Default.ContextFromUpstream(year, seasonType, wk)
}
