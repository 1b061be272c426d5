package timeutil

import (
	"strings"
	"time"

	// Embedded zone database so display timezones resolve on minimal images.
	_ "time/tzdata"
)

// ResolveLocation returns the named location, or nil when the name is empty or unknown.
func ResolveLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil
	}
	return loc
}
