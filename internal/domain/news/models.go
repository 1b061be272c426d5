package news

import "time"

// Headline is one league news item.
type Headline struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Summary   string     `json:"summary"`
	Published *time.Time `json:"published"`
}
