package season

import "time"

const week = 7 * 24 * time.Hour

// CurrentContext returns the context for now using the default navigator.
func CurrentContext(now time.Time) Context { return Default.Current(now) }

// Current derives the context for now from the league calendar. The season
// year rolls over in March, regular season week 1 begins the Tuesday after
// Labor Day and every later week starts on a Tuesday.
func (n Navigator) Current(now time.Time) Context {
	now = now.UTC()
	year := now.Year()
	if now.Month() < time.March {
		year--
	}

	start := regularSeasonStart(year)
	if now.Before(start) {
		weeksOut := int((start.Sub(now) + week - 1) / week)
		wk := PreseasonWeeks - weeksOut + 1
		return n.Clamp(Context{Year: year, Week: wk, SeasonType: Preseason})
	}

	wk := int(now.Sub(start)/week) + 1
	if wk <= RegularWeeks {
		return Context{Year: year, Week: wk, SeasonType: Regular}
	}
	return n.Clamp(Context{Year: year, Week: wk - RegularWeeks, SeasonType: Postseason})
}

// KickoffDate returns the Thursday that opens the regular season of year.
func KickoffDate(year int) time.Time {
	return laborDay(year).AddDate(0, 0, 3)
}

func regularSeasonStart(year int) time.Time {
	return laborDay(year).AddDate(0, 0, 1)
}

// laborDay is the first Monday in September.
func laborDay(year int) time.Time {
	d := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}
