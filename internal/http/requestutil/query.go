package requestutil

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
)

// IntParam parses an integer query parameter. Missing or non-numeric values are absent.
func IntParam(values url.Values, name string) *int {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// SeasonQuery reads year, week and seasonType. Values are not clamped here.
func SeasonQuery(values url.Values) season.Query {
	q := season.Query{
		Year: IntParam(values, "year"),
		Week: IntParam(values, "week"),
	}
	if st := IntParam(values, "seasonType"); st != nil {
		t := season.Type(*st)
		q.SeasonType = &t
	}
	return q
}
