package league

import "sort"

// MatchResult is the recap record of one resolved game.
type MatchResult struct {
	Season        int     `json:"season"`
	Day           int     `json:"day"`
	HomeTeamID    string  `json:"homeTeamId"`
	AwayTeamID    string  `json:"awayTeamId"`
	HomeScore     int     `json:"homeScore"`
	AwayScore     int     `json:"awayScore"`
	WinnerID      string  `json:"winnerId"`
	CoinFlip      bool    `json:"coinFlip,omitempty"`
	Rivalry       bool    `json:"rivalry,omitempty"`
	Substitutions int     `json:"substitutions"`
	Postseason    bool    `json:"postseason,omitempty"`
	HomeTotal     float64 `json:"homeTotal"`
	AwayTotal     float64 `json:"awayTotal"`
	Comment       string  `json:"comment,omitempty"`
}

// SeriesResult is one completed postseason series.
type SeriesResult struct {
	Round        int    `json:"round"`
	BestOf       int    `json:"bestOf"`
	HighSeed     int    `json:"highSeed"`
	LowSeed      int    `json:"lowSeed"`
	HighSeedTeam string `json:"highSeedTeam"`
	LowSeedTeam  string `json:"lowSeedTeam"`
	HighWins     int    `json:"highWins"`
	LowWins      int    `json:"lowWins"`
	WinnerID     string `json:"winnerId"`
}

// BracketSize is the number of postseason entrants.
const BracketSize = 16

// SeriesLengths maps bracket round (0-based) to its best-of length.
var SeriesLengths = [4]int{3, 5, 5, 7}

// Playoffs tracks bracket progress across rounds. Seeds holds team IDs in
// seed order (index 0 is the 1-seed); Alive holds the seeds still playing.
type Playoffs struct {
	Seeds      []string       `json:"seeds"`
	Alive      []int          `json:"alive"`
	Round      int            `json:"round"`
	Series     []SeriesResult `json:"series,omitempty"`
	ChampionID string         `json:"championId,omitempty"`
	Done       bool           `json:"done"`
}

// StandingsRow is one line of the regular-season table.
type StandingsRow struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Streak int    `json:"streak"`
}

// SortStandings orders rows by wins descending, then losses ascending,
// then name for a stable table.
func SortStandings(rows []StandingsRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		if rows[i].Losses != rows[j].Losses {
			return rows[i].Losses < rows[j].Losses
		}
		return rows[i].Name < rows[j].Name
	})
}
