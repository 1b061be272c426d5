package timeutil

import (
	"strings"
	"time"
)

const (
	clockLayout    = "15:04"
	dayClockLayout = "Mon 02.01. 15:04"
)

// ESPN emits minute-precision timestamps ("2025-09-05T00:20Z") alongside full RFC3339.
var upstreamLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// ParseTimestamp parses an upstream ISO-8601 timestamp. ok is false when no layout matches.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range upstreamLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatLocalClock renders the timestamp as HH:MM in loc.
func FormatLocalClock(value string, loc *time.Location) (string, bool) {
	return formatIn(value, loc, clockLayout)
}

// FormatLocalDayClock renders the timestamp as "Tue 19.08. 22:30" in loc.
func FormatLocalDayClock(value string, loc *time.Location) (string, bool) {
	return formatIn(value, loc, dayClockLayout)
}

func formatIn(value string, loc *time.Location, layout string) (string, bool) {
	t, ok := ParseTimestamp(value)
	if !ok {
		return "", false
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(layout), true
}
