package teams

// Team is the minimal team listing served by /teams.
type Team struct {
	Name         string `json:"team"`
	Abbreviation string `json:"abbreviation"`
}

// Franchise describes a league member and where it sits in the alignment.
type Franchise struct {
	Name         string
	Abbreviation string
	Conference   string
	Division     string
}

const (
	ConferenceAFC = "AFC"
	ConferenceNFC = "NFC"
)
