// Package season models the NFL calendar: season types, week limits and
// navigation between adjacent weeks.
package season

import (
	"strconv"
	"strings"
)

// Type enumerates the phases of the league calendar using ESPN's numbering.
type Type int

const (
	Preseason  Type = 1
	Regular    Type = 2
	Postseason Type = 3
)

// Valid reports whether t is one of the known season types.
func (t Type) Valid() bool {
	return t >= Preseason && t <= Postseason
}

func (t Type) String() string {
	switch t {
	case Preseason:
		return "preseason"
	case Regular:
		return "regular"
	case Postseason:
		return "postseason"
	default:
		return "unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

const (
	PreseasonWeeks = 4
	RegularWeeks   = 18
	// DefaultPostseasonWeeks follows ESPN: week 4 is the Pro Bowl gap and week 5 the Super Bowl.
	DefaultPostseasonWeeks = 5
	// MaxWeek bounds a week number whose season type is unknown.
	MaxWeek = 25

	MinYear     = 1970
	MaxYear     = 2100
	DefaultYear = 2025
)

// Context identifies which slate of games to show.
type Context struct {
	Year       int  `json:"year"`
	Week       int  `json:"week"`
	SeasonType Type `json:"seasonType"`
}

// Links holds the contexts adjacent to a given one.
type Links struct {
	Prev Context `json:"prev_week_params"`
	Next Context `json:"next_week_params"`
}

// Direction selects which neighbour Step returns.
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// ParseDirection accepts "next" or "prev" (case-insensitive).
func ParseDirection(raw string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case DirectionNext:
		return DirectionNext, true
	case DirectionPrev:
		return DirectionPrev, true
	default:
		return "", false
	}
}
