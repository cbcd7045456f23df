package league

// AwardSet holds the season's individual honors by card ID.
type AwardSet struct {
	MVP       string `json:"mvp,omitempty"`
	DPOY      string `json:"dpoy,omitempty"`
	SixthMan  string `json:"sixthMan,omitempty"`
	ROTY      string `json:"roty,omitempty"`
	FinalsMVP string `json:"finalsMvp,omitempty"`
}

// Award names as they appear on card records and cost adjustments.
const (
	AwardMVP       = "MVP"
	AwardDPOY      = "DPOY"
	AwardSixthMan  = "SIXTH_MAN"
	AwardROTY      = "ROTY"
	AwardFinalsMVP = "FINALS_MVP"
)

// PatchChange is one attribute delta applied by a balance patch.
type PatchChange struct {
	CardID string `json:"cardId"`
	Attr   string `json:"attr"`
	Delta  int    `json:"delta"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// PatchNotes records a season's balance patch.
type PatchNotes struct {
	Nickname string        `json:"nickname"`
	Changes  []PatchChange `json:"changes,omitempty"`
}

// Retirement records one card leaving the pool, forced by lifespan or drawn
// randomly.
type Retirement struct {
	CardID string `json:"cardId"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Forced bool   `json:"forced"`
}

// Rookie records one card entering the pool in the offseason.
type Rookie struct {
	CardID string `json:"cardId"`
	Name   string `json:"name"`
}

// OffseasonProgress is scratch state for the granular offseason steps, so a
// snapshot taken mid-offseason resumes where it stopped.
type OffseasonProgress struct {
	AwardsDone     bool         `json:"awardsDone"`
	CostsDone      bool         `json:"costsDone"`
	PatchDone      bool         `json:"patchDone"`
	RetirementDone bool         `json:"retirementDone"`
	Awards         *AwardSet    `json:"awards,omitempty"`
	Patch          *PatchNotes  `json:"patch,omitempty"`
	Retirements    []Retirement `json:"retirements,omitempty"`
	Rookies        []Rookie     `json:"rookies,omitempty"`
}

// SeasonArchive is the sealed, write-once record of a finished season.
type SeasonArchive struct {
	Season       int            `json:"season"`
	Standings    []StandingsRow `json:"standings"`
	Awards       AwardSet       `json:"awards"`
	Series       []SeriesResult `json:"series,omitempty"`
	ChampionID   string         `json:"championId,omitempty"`
	ChampionName string         `json:"championName,omitempty"`
	Patch        PatchNotes     `json:"patch"`
	Retirements  []Retirement   `json:"retirements,omitempty"`
	Rookies      []Rookie       `json:"rookies,omitempty"`
	Transactions []string       `json:"transactions,omitempty"`
}
