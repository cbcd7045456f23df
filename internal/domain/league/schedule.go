package league

import "strings"

// ScheduleEntry is one fixture on the regular-season calendar.
// Entries are immutable once the calendar is generated.
type ScheduleEntry struct {
	Day        int    `json:"day"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
}

// Rivalry accumulates the history of one team pairing. TeamA always sorts
// lexically before TeamB so the record is order-independent.
type Rivalry struct {
	TeamA string `json:"teamA"`
	TeamB string `json:"teamB"`
	Games int    `json:"games"`
	WinsA int    `json:"winsA"`
	WinsB int    `json:"winsB"`
}

// RivalryGamesThreshold is the meeting count at which a pairing starts
// playing with rivalry intensity.
const RivalryGamesThreshold = 4

// PairKey returns the canonical rivalry key for two team IDs.
func PairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "|" + b
}

// RecordWin credits the winner in the pairing's history.
func (r *Rivalry) RecordWin(winnerID string) {
	if winnerID == r.TeamA {
		r.WinsA++
	} else if winnerID == r.TeamB {
		r.WinsB++
	}
}

// Intense reports whether the pairing has met often enough to count
// as a rivalry game.
func (r *Rivalry) Intense() bool {
	return r != nil && r.Games >= RivalryGamesThreshold
}
