package league

import (
	"fmt"

	"github.com/arkadito/clash-league/internal/domain/card"
	"github.com/arkadito/clash-league/internal/domain/team"
)

// SnapshotVersion guards the on-disk layout. Bump on breaking changes.
const SnapshotVersion = 1

// Snapshot is the single JSON document a saved league serializes to.
// It carries value copies of everything State holds plus the RNG state word,
// so Load(Save(state)) resumes the exact same run.
type Snapshot struct {
	Version      int                   `json:"version"`
	Season       int                   `json:"season"`
	Day          int                   `json:"day"`
	Phase        Phase                 `json:"phase"`
	Cap          float64               `json:"cap"`
	RNGState     uint64                `json:"rngState"`
	Teams        []team.Team           `json:"teams"`
	Cards        map[string]card.Card  `json:"cards"`
	Schedule     []ScheduleEntry       `json:"schedule,omitempty"`
	Rivalries    map[string]Rivalry    `json:"rivalries,omitempty"`
	Transactions []string              `json:"transactions,omitempty"`
	Results      []MatchResult         `json:"results,omitempty"`
	Playoffs     *Playoffs             `json:"playoffs,omitempty"`
	Offseason    *OffseasonProgress    `json:"offseason,omitempty"`
	Archive      map[int]SeasonArchive `json:"archive,omitempty"`
	Catalog      []ShopItem            `json:"catalog,omitempty"`
}

// NewSnapshot captures the state plus the RNG word into a detached document.
func NewSnapshot(s *State, rngState uint64) *Snapshot {
	snap := &Snapshot{
		Version:      SnapshotVersion,
		Season:       s.Season,
		Day:          s.Day,
		Phase:        s.Phase,
		Cap:          s.Cap,
		RNGState:     rngState,
		Teams:        make([]team.Team, 0, len(s.Teams)),
		Cards:        make(map[string]card.Card, len(s.Cards)),
		Schedule:     append([]ScheduleEntry(nil), s.Schedule...),
		Rivalries:    make(map[string]Rivalry, len(s.Rivalries)),
		Transactions: append([]string(nil), s.Transactions...),
		Results:      append([]MatchResult(nil), s.Results...),
		Archive:      make(map[int]SeasonArchive, len(s.Archive)),
		Catalog:      append([]ShopItem(nil), s.Catalog...),
	}
	for _, t := range s.Teams {
		snap.Teams = append(snap.Teams, copyTeam(t))
	}
	for id, c := range s.Cards {
		snap.Cards[id] = copyCard(c)
	}
	for key, r := range s.Rivalries {
		snap.Rivalries[key] = *r
	}
	for season, a := range s.Archive {
		snap.Archive[season] = *a
	}
	if s.Playoffs != nil {
		p := *s.Playoffs
		p.Seeds = append([]string(nil), s.Playoffs.Seeds...)
		p.Alive = append([]int(nil), s.Playoffs.Alive...)
		p.Series = append([]SeriesResult(nil), s.Playoffs.Series...)
		snap.Playoffs = &p
	}
	if s.Offseason != nil {
		o := *s.Offseason
		o.Retirements = append([]Retirement(nil), s.Offseason.Retirements...)
		o.Rookies = append([]Rookie(nil), s.Offseason.Rookies...)
		snap.Offseason = &o
	}
	return snap
}

// Restore rebuilds a State from the document. The RNG word is returned for
// the caller to re-seed its source.
func (snap *Snapshot) Restore() (*State, uint64, error) {
	if snap.Version != SnapshotVersion {
		return nil, 0, fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, SnapshotVersion)
	}
	if !snap.Phase.Valid() {
		return nil, 0, fmt.Errorf("snapshot carries unknown phase %q", snap.Phase)
	}

	s := &State{
		Season:       snap.Season,
		Day:          snap.Day,
		Phase:        snap.Phase,
		Cap:          snap.Cap,
		Teams:        make([]*team.Team, 0, len(snap.Teams)),
		Cards:        make(map[string]*card.Card, len(snap.Cards)),
		Schedule:     append([]ScheduleEntry(nil), snap.Schedule...),
		Rivalries:    make(map[string]*Rivalry, len(snap.Rivalries)),
		Transactions: append([]string(nil), snap.Transactions...),
		Results:      append([]MatchResult(nil), snap.Results...),
		Archive:      make(map[int]*SeasonArchive, len(snap.Archive)),
		Catalog:      append([]ShopItem(nil), snap.Catalog...),
	}
	if len(s.Catalog) == 0 {
		s.Catalog = DefaultCatalog()
	}
	for i := range snap.Teams {
		t := copyTeam(&snap.Teams[i])
		s.Teams = append(s.Teams, &t)
	}
	for id, c := range snap.Cards {
		cc := copyCard(&c)
		s.Cards[id] = &cc
	}
	for key, r := range snap.Rivalries {
		rr := r
		s.Rivalries[key] = &rr
	}
	for season, a := range snap.Archive {
		aa := a
		s.Archive[season] = &aa
	}
	if snap.Playoffs != nil {
		p := *snap.Playoffs
		p.Seeds = append([]string(nil), snap.Playoffs.Seeds...)
		p.Alive = append([]int(nil), snap.Playoffs.Alive...)
		p.Series = append([]SeriesResult(nil), snap.Playoffs.Series...)
		s.Playoffs = &p
	}
	if snap.Offseason != nil {
		o := *snap.Offseason
		o.Retirements = append([]Retirement(nil), snap.Offseason.Retirements...)
		o.Rookies = append([]Rookie(nil), snap.Offseason.Rookies...)
		s.Offseason = &o
	}
	return s, snap.RNGState, nil
}

func copyTeam(t *team.Team) team.Team {
	out := *t
	out.Starters = append([]string(nil), t.Starters...)
	out.Boosts = append([]team.Boost(nil), t.Boosts...)
	return out
}

func copyCard(c *card.Card) card.Card {
	out := *c
	out.Awards = append([]string(nil), c.Awards...)
	out.History = append([]card.SeasonLine(nil), c.History...)
	return out
}
