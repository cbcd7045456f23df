package league

import (
	"sort"

	"github.com/arkadito/clash-league/internal/domain/card"
	"github.com/arkadito/clash-league/internal/domain/team"
)

// State is the whole mutable league world. The engine owns it behind a lock;
// nothing here is safe for unguarded concurrent use.
type State struct {
	Season       int
	Day          int
	Phase        Phase
	Cap          float64
	Teams        []*team.Team
	Cards        map[string]*card.Card
	Schedule     []ScheduleEntry
	Rivalries    map[string]*Rivalry
	Transactions []string
	Results      []MatchResult
	Playoffs     *Playoffs
	Offseason    *OffseasonProgress
	Archive      map[int]*SeasonArchive
	Catalog      []ShopItem
}

// NewState returns an empty world at season 1 preseason.
func NewState(cap float64) *State {
	return &State{
		Season:    1,
		Day:       1,
		Phase:     PhasePreseason,
		Cap:       cap,
		Cards:     make(map[string]*card.Card),
		Rivalries: make(map[string]*Rivalry),
		Archive:   make(map[int]*SeasonArchive),
		Catalog:   DefaultCatalog(),
	}
}

// TeamByID finds a team, nil when absent.
func (s *State) TeamByID(id string) *team.Team {
	for _, t := range s.Teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// CardByID finds a card, nil when absent.
func (s *State) CardByID(id string) *card.Card {
	return s.Cards[id]
}

// SortedCardIDs returns every card ID in lexical order. Map iteration order
// is random; every decision over the pool must walk this instead.
func (s *State) SortedCardIDs() []string {
	ids := make([]string, 0, len(s.Cards))
	for id := range s.Cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FreeAgentIDs returns unretired cards not on any roster, lexically ordered.
func (s *State) FreeAgentIDs() []string {
	rostered := make(map[string]bool)
	for _, t := range s.Teams {
		for _, id := range t.RosterIDs() {
			rostered[id] = true
		}
	}
	out := make([]string, 0, len(s.Cards))
	for _, id := range s.SortedCardIDs() {
		c := s.Cards[id]
		if c.Retired || rostered[id] {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Standings builds the current regular-season table.
func (s *State) Standings() []StandingsRow {
	rows := make([]StandingsRow, 0, len(s.Teams))
	for _, t := range s.Teams {
		rows = append(rows, StandingsRow{
			TeamID: t.ID,
			Name:   t.Name,
			Wins:   t.Wins,
			Losses: t.Losses,
			Streak: t.Streak,
		})
	}
	SortStandings(rows)
	return rows
}

// SeasonComplete reports whether no scheduled fixture remains at or after
// the current day. An empty schedule is vacuously complete.
func (s *State) SeasonComplete() bool {
	for _, entry := range s.Schedule {
		if entry.Day >= s.Day {
			return false
		}
	}
	return true
}

// RivalryFor returns the pairing record, creating it on first meeting.
func (s *State) RivalryFor(teamA, teamB string) *Rivalry {
	key := PairKey(teamA, teamB)
	if r, ok := s.Rivalries[key]; ok {
		return r
	}
	a, b := teamA, teamB
	if a > b {
		a, b = b, a
	}
	r := &Rivalry{TeamA: a, TeamB: b}
	s.Rivalries[key] = r
	return r
}

// LogTransaction appends one line to the season transaction log.
func (s *State) LogTransaction(line string) {
	s.Transactions = append(s.Transactions, line)
}
