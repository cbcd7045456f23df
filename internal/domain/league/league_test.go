package league

import (
	"testing"

	"github.com/arkadito/clash-league/internal/domain/card"
	"github.com/arkadito/clash-league/internal/domain/team"
)

func TestPhaseCycle(t *testing.T) {
	order := []Phase{PhasePreseason, PhaseRegularSeason, PhasePostseason, PhaseOffseason}
	for i, p := range order {
		next, err := p.Next()
		if err != nil {
			t.Fatalf("Next(%s) error = %v", p, err)
		}
		want := order[(i+1)%len(order)]
		if next != want {
			t.Fatalf("Next(%s) = %s, want %s", p, next, want)
		}
	}

	if _, err := Phase("LOCKOUT").Next(); err == nil {
		t.Fatal("expected error for unknown phase")
	}
}

func TestPairKeyOrderIndependent(t *testing.T) {
	if PairKey("TEAM-B", "TEAM-A") != PairKey("TEAM-A", "TEAM-B") {
		t.Fatal("pair key must not depend on argument order")
	}
}

func TestRivalryForCreatesCanonicalPair(t *testing.T) {
	s := NewState(20)
	r := s.RivalryFor("TEAM-ZULU", "TEAM-ALFA")
	if r.TeamA != "TEAM-ALFA" || r.TeamB != "TEAM-ZULU" {
		t.Fatalf("pair stored as %s/%s, want lexical order", r.TeamA, r.TeamB)
	}
	if s.RivalryFor("TEAM-ALFA", "TEAM-ZULU") != r {
		t.Fatal("same pairing must resolve to the same record")
	}

	r.Games = RivalryGamesThreshold
	if !r.Intense() {
		t.Fatal("pairing at threshold should be intense")
	}
	r.RecordWin("TEAM-ZULU")
	if r.WinsB != 1 {
		t.Fatalf("WinsB = %d, want 1", r.WinsB)
	}
}

func TestSortStandings(t *testing.T) {
	rows := []StandingsRow{
		{TeamID: "T3", Name: "Cinder", Wins: 10, Losses: 20},
		{TeamID: "T1", Name: "Aurora", Wins: 22, Losses: 8},
		{TeamID: "T2", Name: "Basalt", Wins: 22, Losses: 7},
	}
	SortStandings(rows)
	if rows[0].TeamID != "T2" || rows[1].TeamID != "T1" || rows[2].TeamID != "T3" {
		t.Fatalf("unexpected order: %v", rows)
	}
}

func TestSeasonComplete(t *testing.T) {
	s := NewState(20)
	if !s.SeasonComplete() {
		t.Fatal("empty schedule is vacuously complete")
	}

	s.Schedule = []ScheduleEntry{
		{Day: 1, HomeTeamID: "A", AwayTeamID: "B"},
		{Day: 2, HomeTeamID: "B", AwayTeamID: "A"},
	}
	s.Day = 2
	if s.SeasonComplete() {
		t.Fatal("fixtures remain, season must be incomplete")
	}
	s.Day = 3
	if !s.SeasonComplete() {
		t.Fatal("all fixtures behind the current day, season must be complete")
	}
}

func TestFreeAgentIDs(t *testing.T) {
	s := NewState(20)
	s.Cards["CARD-A"] = &card.Card{ID: "CARD-A"}
	s.Cards["CARD-B"] = &card.Card{ID: "CARD-B"}
	s.Cards["CARD-C"] = &card.Card{ID: "CARD-C", Retired: true}
	s.Teams = []*team.Team{{ID: "TEAM-1", Name: "One", Starters: []string{"CARD-A"}}}

	got := s.FreeAgentIDs()
	if len(got) != 1 || got[0] != "CARD-B" {
		t.Fatalf("free agents = %v, want [CARD-B]", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewState(20)
	s.Season = 3
	s.Day = 14
	s.Phase = PhaseRegularSeason
	s.Teams = []*team.Team{
		{
			ID: "TEAM-1", Name: "Crag", Starters: []string{"CARD-A", "CARD-B", "CARD-C"},
			BackupID: "CARD-D", Wins: 5, Losses: 2, Streak: 3, CostSpent: 12.5,
			ShopPointsLeft: 7.5, Boosts: []team.Boost{{ItemID: "ITEM-WHETSTONE", Stat: "attack", Amount: 4, TargetCardID: "CARD-A", GamesLeft: 2}},
		},
	}
	s.Cards["CARD-A"] = &card.Card{ID: "CARD-A", Name: "A", Awards: []string{AwardMVP}, Fatigue: 80}
	s.Schedule = []ScheduleEntry{{Day: 14, HomeTeamID: "TEAM-1", AwayTeamID: "TEAM-2"}}
	s.RivalryFor("TEAM-1", "TEAM-2").Games = 5
	s.Transactions = []string{"draft: TEAM-1 picks CARD-A"}
	s.Results = []MatchResult{{Season: 3, Day: 13, HomeTeamID: "TEAM-1", AwayTeamID: "TEAM-2", HomeScore: 20, AwayScore: 18, WinnerID: "TEAM-1"}}
	s.Playoffs = &Playoffs{Seeds: []string{"TEAM-1"}, Alive: []int{0}, Round: 1}
	s.Offseason = &OffseasonProgress{AwardsDone: true, Awards: &AwardSet{MVP: "CARD-A"}}
	s.Archive[2] = &SeasonArchive{Season: 2, ChampionID: "TEAM-1"}

	snap := NewSnapshot(s, 0xDEADBEEF)
	restored, rngState, err := snap.Restore()
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if rngState != 0xDEADBEEF {
		t.Fatalf("rng state = %#x, want 0xDEADBEEF", rngState)
	}
	if restored.Season != 3 || restored.Day != 14 || restored.Phase != PhaseRegularSeason {
		t.Fatalf("clock mismatch: season %d day %d phase %s", restored.Season, restored.Day, restored.Phase)
	}
	if len(restored.Teams) != 1 || restored.Teams[0].BackupID != "CARD-D" {
		t.Fatal("team roster did not survive the round trip")
	}
	if len(restored.Teams[0].Boosts) != 1 || restored.Teams[0].Boosts[0].GamesLeft != 2 {
		t.Fatal("boosts did not survive the round trip")
	}
	if restored.Cards["CARD-A"].Fatigue != 80 {
		t.Fatal("card fatigue did not survive the round trip")
	}
	if restored.RivalryFor("TEAM-1", "TEAM-2").Games != 5 {
		t.Fatal("rivalry history did not survive the round trip")
	}
	if restored.Playoffs == nil || restored.Playoffs.Round != 1 {
		t.Fatal("playoff progress did not survive the round trip")
	}
	if restored.Offseason == nil || !restored.Offseason.AwardsDone || restored.Offseason.Awards.MVP != "CARD-A" {
		t.Fatal("offseason progress did not survive the round trip")
	}
	if restored.Archive[2] == nil || restored.Archive[2].ChampionID != "TEAM-1" {
		t.Fatal("archive did not survive the round trip")
	}

	// The snapshot must be detached from the live state.
	s.Teams[0].Starters[0] = "CARD-MUTATED"
	if restored.Teams[0].Starters[0] != "CARD-A" {
		t.Fatal("restored state shares backing arrays with the source")
	}
}

func TestSnapshotRejectsUnknownVersion(t *testing.T) {
	snap := &Snapshot{Version: 99, Phase: PhasePreseason}
	if _, _, err := snap.Restore(); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}
