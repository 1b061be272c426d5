package season

import (
	"net/url"
	"strconv"
)

// Query is a partially specified context. Nil fields were not requested.
type Query struct {
	Year       *int
	Week       *int
	SeasonType *Type
}

// IsZero reports whether no parameter is set.
func (q Query) IsZero() bool {
	return q.Year == nil && q.Week == nil && q.SeasonType == nil
}

// Values renders the present parameters using ESPN's query names.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Year != nil {
		v.Set("year", strconv.Itoa(*q.Year))
	}
	if q.Week != nil {
		v.Set("week", strconv.Itoa(*q.Week))
	}
	if q.SeasonType != nil {
		v.Set("seasontype", strconv.Itoa(int(*q.SeasonType)))
	}
	return v
}

// Key is a stable cache key for the query. The default query has key "default".
func (q Query) Key() string {
	if q.IsZero() {
		return "default"
	}
	return q.Values().Encode()
}

// Fill completes q with fallback values for every absent parameter.
func (q Query) Fill(fallback Context) Context {
	c := fallback
	if q.Year != nil {
		c.Year = *q.Year
	}
	if q.Week != nil {
		c.Week = *q.Week
	}
	if q.SeasonType != nil {
		c.SeasonType = *q.SeasonType
	}
	return c
}

// QueryFor returns a fully specified query for c.
func QueryFor(c Context) Query {
	year, wk, st := c.Year, c.Week, c.SeasonType
	return Query{Year: &year, Week: &wk, SeasonType: &st}
}

// NormalizeQuery clamps the present parameters. A week without a season type
// is bounded by MaxWeek.
func (n Navigator) NormalizeQuery(q Query) Query {
	out := Query{}
	if q.Year != nil {
		y := clampInt(*q.Year, MinYear, MaxYear)
		out.Year = &y
	}
	if q.SeasonType != nil {
		st := *q.SeasonType
		if !st.Valid() {
			st = Regular
		}
		out.SeasonType = &st
	}
	if q.Week != nil {
		lo, hi := 1, MaxWeek
		if out.SeasonType != nil {
			lo, hi = n.Limits(*out.SeasonType)
		}
		wk := clampInt(*q.Week, lo, hi)
		out.Week = &wk
	}
	return out
}
