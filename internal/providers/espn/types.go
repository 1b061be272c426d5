package espn

import (
	"math"
	"strconv"
	"strings"
)

// number accepts JSON numbers and numeric strings. Anything else decodes as absent.
type number struct {
	value float64
	ok    bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n.value, n.ok = f, true
	return nil
}

// Int truncates toward zero.
func (n number) Int() (int, bool) {
	if !n.ok {
		return 0, false
	}
	return int(n.value), true
}

func (n number) intPtr() *int {
	v, ok := n.Int()
	if !ok {
		return nil
	}
	return &v
}

type scoreboardResponse struct {
	Season struct {
		Year number `json:"year"`
		Type number `json:"type"`
	} `json:"season"`
	Week struct {
		Number number `json:"number"`
	} `json:"week"`
	Events []event `json:"events"`
}

type event struct {
	Name         string        `json:"name"`
	Date         string        `json:"date"`
	Status       status        `json:"status"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Status      status       `json:"status"`
	Competitors []competitor `json:"competitors"`
}

type status struct {
	Period       int    `json:"period"`
	DisplayClock string `json:"displayClock"`
	Type         struct {
		Name  string `json:"name"`
		State string `json:"state"`
	} `json:"type"`
}

type competitor struct {
	HomeAway    string  `json:"homeAway"`
	Score       *number `json:"score"`
	Team        teamRef `json:"team"`
	CuratedRank struct {
		Current number `json:"current"`
	} `json:"curatedRank"`
}

type teamRef struct {
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
	Name             string `json:"name"`
	Abbreviation     string `json:"abbreviation"`
}

type teamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team teamRef `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

type standingsResponse struct {
	Content struct {
		Standings struct {
			Groups []standingsGroup `json:"groups"`
		} `json:"standings"`
	} `json:"content"`
}

type standingsGroup struct {
	Name         string           `json:"name"`
	Abbreviation string           `json:"abbreviation"`
	ShortName    string           `json:"shortName"`
	Groups       []standingsGroup `json:"groups"`
	Standings    struct {
		Entries []standingsEntry `json:"entries"`
	} `json:"standings"`
}

type standingsEntry struct {
	Team  teamRef `json:"team"`
	Stats []stat  `json:"stats"`
}

type stat struct {
	Name         string `json:"name"`
	Value        number `json:"value"`
	DisplayValue string `json:"displayValue"`
}
