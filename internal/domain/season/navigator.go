package season

// Navigator computes calendar-adjacent contexts. The zero value uses DefaultPostseasonWeeks.
type Navigator struct {
	PostseasonWeeks int
}

// Default is the navigator used by the package-level helpers.
var Default = NewNavigator(DefaultPostseasonWeeks)

// NewNavigator returns a navigator whose postseason spans 1..postseasonWeeks.
func NewNavigator(postseasonWeeks int) Navigator {
	return Navigator{PostseasonWeeks: postseasonWeeks}
}

// Next returns the context following c using the default navigator.
func Next(c Context) Context { return Default.Next(c) }

// Previous returns the context preceding c using the default navigator.
func Previous(c Context) Context { return Default.Previous(c) }

func (n Navigator) postseasonWeeks() int {
	if n.PostseasonWeeks < 1 {
		return DefaultPostseasonWeeks
	}
	return n.PostseasonWeeks
}

// Limits returns the inclusive week range for t. Unknown types use the regular season range.
func (n Navigator) Limits(t Type) (int, int) {
	switch t {
	case Preseason:
		return 1, PreseasonWeeks
	case Postseason:
		return 1, n.postseasonWeeks()
	default:
		return 1, RegularWeeks
	}
}

// Clamp pulls every field of c into its valid range.
func (n Navigator) Clamp(c Context) Context {
	c.Year = clampInt(c.Year, MinYear, MaxYear)
	if !c.SeasonType.Valid() {
		c.SeasonType = Regular
	}
	lo, hi := n.Limits(c.SeasonType)
	c.Week = clampInt(c.Week, lo, hi)
	return c
}

// Next returns the following week, rolling preseason -> regular -> postseason -> next preseason.
func (n Navigator) Next(c Context) Context {
	c = n.Clamp(c)
	_, hi := n.Limits(c.SeasonType)
	if c.Week < hi {
		c.Week++
		return c
	}
	switch c.SeasonType {
	case Preseason:
		return Context{Year: c.Year, Week: 1, SeasonType: Regular}
	case Regular:
		return Context{Year: c.Year, Week: 1, SeasonType: Postseason}
	default:
		return n.Clamp(Context{Year: c.Year + 1, Week: 1, SeasonType: Preseason})
	}
}

// Previous returns the preceding week. It undoes Next except where a step
// would leave the MinYear..MaxYear range and is clamped instead.
func (n Navigator) Previous(c Context) Context {
	c = n.Clamp(c)
	lo, _ := n.Limits(c.SeasonType)
	if c.Week > lo {
		c.Week--
		return c
	}
	switch c.SeasonType {
	case Preseason:
		return n.Clamp(Context{Year: c.Year - 1, Week: n.postseasonWeeks(), SeasonType: Postseason})
	case Regular:
		return Context{Year: c.Year, Week: PreseasonWeeks, SeasonType: Preseason}
	default:
		return Context{Year: c.Year, Week: RegularWeeks, SeasonType: Regular}
	}
}

// Step moves one week in direction d. Unknown directions return the clamped input.
func (n Navigator) Step(c Context, d Direction) Context {
	switch d {
	case DirectionNext:
		return n.Next(c)
	case DirectionPrev:
		return n.Previous(c)
	default:
		return n.Clamp(c)
	}
}

// Links returns both neighbours of c.
func (n Navigator) Links(c Context) Links {
	return Links{Prev: n.Previous(c), Next: n.Next(c)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
