package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/arkadito/clash-league/internal/domain/card"
	"github.com/arkadito/clash-league/internal/domain/league"
	"github.com/arkadito/clash-league/internal/platform/logging"
)

func newTestEngine(seed uint64, noise float64) *Engine {
	cfg := DefaultSettings()
	cfg.Seed = seed
	cfg.Noise = noise
	return NewEngine(cfg, logging.NewNop())
}

func playRegularSeason(t *testing.T, e *Engine) {
	t.Helper()
	ctx := context.Background()
	if err := e.RunPreseason(ctx); err != nil {
		t.Fatalf("RunPreseason() error = %v", err)
	}
	for i := 0; !e.SeasonComplete(); i++ {
		if i > 1000 {
			t.Fatal("regular season did not terminate")
		}
		if _, err := e.AdvanceDay(ctx); err != nil {
			t.Fatalf("AdvanceDay() error = %v", err)
		}
	}
}

func TestDraftInvariants(t *testing.T) {
	e := newTestEngine(1337, 0.05)
	if err := e.RunPreseason(context.Background()); err != nil {
		t.Fatalf("RunPreseason() error = %v", err)
	}

	for _, tm := range e.state.Teams {
		if len(tm.Starters) != 3 {
			t.Fatalf("team %s drafted %d starters, want 3", tm.ID, len(tm.Starters))
		}
		if tm.CostSpent > e.state.Cap {
			t.Fatalf("team %s spent %.2f over cap %.2f", tm.ID, tm.CostSpent, e.state.Cap)
		}
		if err := tm.Validate(e.state.Cap); err != nil {
			t.Fatalf("team invalid after draft: %v", err)
		}
		want := card.Round2(e.state.Cap - tm.CostSpent)
		if tm.ShopPointsLeft != want {
			t.Fatalf("team %s shop points = %.2f, want %.2f", tm.ID, tm.ShopPointsLeft, want)
		}
	}

	// Exclusive ownership: no card on two rosters.
	owned := make(map[string]string)
	for _, tm := range e.state.Teams {
		for _, id := range tm.RosterIDs() {
			if prev, dup := owned[id]; dup {
				t.Fatalf("card %s on both %s and %s", id, prev, tm.ID)
			}
			owned[id] = tm.ID
		}
	}
}

func TestAdvanceDayPhaseOrder(t *testing.T) {
	e := newTestEngine(1, 0.05)
	if _, err := e.AdvanceDay(context.Background()); !errors.Is(err, ErrPhaseOrder) {
		t.Fatalf("AdvanceDay in preseason: err = %v, want ErrPhaseOrder", err)
	}
}

func TestEmptyDayAdvancesWithoutResults(t *testing.T) {
	e := newTestEngine(2, 0.05)
	if err := e.RunPreseason(context.Background()); err != nil {
		t.Fatalf("RunPreseason() error = %v", err)
	}

	// Rewrite the calendar so day 1 is empty and day 2 holds one fixture.
	a, b := e.state.Teams[0], e.state.Teams[1]
	e.state.Schedule = []league.ScheduleEntry{{Day: 2, HomeTeamID: a.ID, AwayTeamID: b.ID}}

	results, err := e.AdvanceDay(context.Background())
	if err != nil {
		t.Fatalf("AdvanceDay() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("empty day produced %d results", len(results))
	}
	if e.state.Day != 2 {
		t.Fatalf("day = %d, want 2", e.state.Day)
	}
	if a.Wins+a.Losses+b.Wins+b.Losses != 0 {
		t.Fatal("empty day must not touch records")
	}
}

func TestFatigueStaysBounded(t *testing.T) {
	e := newTestEngine(3, 0.05)
	ctx := context.Background()
	if err := e.RunPreseason(ctx); err != nil {
		t.Fatalf("RunPreseason() error = %v", err)
	}
	for day := 0; day < 12; day++ {
		if _, err := e.AdvanceDay(ctx); err != nil {
			t.Fatalf("AdvanceDay() error = %v", err)
		}
	}

	for id, c := range e.state.Cards {
		if c.Fatigue < card.FatigueMin || c.Fatigue > card.FatigueMax {
			t.Fatalf("card %s fatigue %.1f out of bounds", id, c.Fatigue)
		}
	}
}

func TestBracketShape(t *testing.T) {
	e := newTestEngine(1337, 0.05)
	ctx := context.Background()
	playRegularSeason(t, e)

	if _, err := e.SeedPlayoffs(ctx); err != nil {
		t.Fatalf("SeedPlayoffs() error = %v", err)
	}
	p, err := e.RunPlayoffs(ctx)
	if err != nil {
		t.Fatalf("RunPlayoffs() error = %v", err)
	}

	if !p.Done || p.ChampionID == "" {
		t.Fatal("bracket finished without a champion")
	}
	if len(p.Series) != 15 {
		t.Fatalf("series played = %d, want 15", len(p.Series))
	}

	perRound := map[int]int{}
	for _, s := range p.Series {
		perRound[s.Round]++
		want := league.SeriesLengths[s.Round]
		if s.BestOf != want {
			t.Fatalf("round %d bestOf = %d, want %d", s.Round, s.BestOf, want)
		}
		need := want/2 + 1
		if s.HighWins != need && s.LowWins != need {
			t.Fatalf("series ended %d-%d in a best-of-%d", s.HighWins, s.LowWins, want)
		}
	}
	for round, wantCount := range map[int]int{0: 8, 1: 4, 2: 2, 3: 1} {
		if perRound[round] != wantCount {
			t.Fatalf("round %d has %d series, want %d", round, perRound[round], wantCount)
		}
	}

	if e.state.TeamByID(p.ChampionID).Titles != 1 {
		t.Fatal("champion title counter not incremented")
	}

	// Postseason games never move the regular-season table.
	var wins, losses int
	for _, tm := range e.state.Teams {
		wins += tm.Wins
		losses += tm.Losses
	}
	if wins != losses || wins != len(e.state.Schedule) {
		t.Fatalf("standings drifted during playoffs: %d wins over %d fixtures", wins, len(e.state.Schedule))
	}
}

func TestSeedPlayoffsRequiresCompleteSeason(t *testing.T) {
	e := newTestEngine(4, 0.05)
	if err := e.RunPreseason(context.Background()); err != nil {
		t.Fatalf("RunPreseason() error = %v", err)
	}
	if _, err := e.SeedPlayoffs(context.Background()); !errors.Is(err, ErrPhaseOrder) {
		t.Fatalf("SeedPlayoffs mid-season: err = %v, want ErrPhaseOrder", err)
	}
}

func TestFullSeasonDeterminism(t *testing.T) {
	run := func() (*Engine, league.Playoffs) {
		e := newTestEngine(1337, 0.05)
		ctx := context.Background()
		playRegularSeason(t, e)
		if _, err := e.SeedPlayoffs(ctx); err != nil {
			t.Fatalf("SeedPlayoffs() error = %v", err)
		}
		p, err := e.RunPlayoffs(ctx)
		if err != nil {
			t.Fatalf("RunPlayoffs() error = %v", err)
		}
		return e, p
	}

	e1, p1 := run()
	e2, p2 := run()

	if !reflect.DeepEqual(e1.Standings(), e2.Standings()) {
		t.Fatal("same seed produced different standings")
	}
	if p1.ChampionID != p2.ChampionID {
		t.Fatalf("same seed produced different champions: %s vs %s", p1.ChampionID, p2.ChampionID)
	}
	if !reflect.DeepEqual(p1.Series, p2.Series) {
		t.Fatal("same seed produced different series results")
	}
	if e1.rng.State() != e2.rng.State() {
		t.Fatal("same seed left the generators in different states")
	}
}

func TestSnapshotResume(t *testing.T) {
	ctx := context.Background()
	a := newTestEngine(1337, 0.05)
	if err := a.RunPreseason(ctx); err != nil {
		t.Fatalf("RunPreseason() error = %v", err)
	}
	for day := 0; day < 5; day++ {
		if _, err := a.AdvanceDay(ctx); err != nil {
			t.Fatalf("AdvanceDay() error = %v", err)
		}
	}

	snap := a.Snapshot()

	// Restore into an engine built with a different seed: the snapshot's RNG
	// word must win.
	b := newTestEngine(9999, 0.05)
	if err := b.RestoreSnapshot(snap); err != nil {
		t.Fatalf("RestoreSnapshot() error = %v", err)
	}

	resA, errA := a.AdvanceDay(ctx)
	resB, errB := b.AdvanceDay(ctx)
	if errA != nil || errB != nil {
		t.Fatalf("AdvanceDay() errors: %v, %v", errA, errB)
	}
	if !reflect.DeepEqual(resA, resB) {
		t.Fatal("restored engine diverged from the original on the next day")
	}
	if a.rng.State() != b.rng.State() {
		t.Fatal("generators diverged after resume")
	}
}

func TestSeasonCycle(t *testing.T) {
	e := newTestEngine(1337, 0.05)
	ctx := context.Background()

	playRegularSeason(t, e)
	if _, err := e.SeedPlayoffs(ctx); err != nil {
		t.Fatalf("SeedPlayoffs() error = %v", err)
	}
	if _, err := e.RunPlayoffs(ctx); err != nil {
		t.Fatalf("RunPlayoffs() error = %v", err)
	}
	if err := e.RunOffseason(ctx); err != nil {
		t.Fatalf("RunOffseason() error = %v", err)
	}

	if e.state.Phase != league.PhasePreseason {
		t.Fatalf("phase after offseason = %s, want %s", e.state.Phase, league.PhasePreseason)
	}
	if e.state.Season != 2 {
		t.Fatalf("season = %d, want 2", e.state.Season)
	}

	archive := e.state.Archive[1]
	if archive == nil {
		t.Fatal("season 1 not archived")
	}
	if archive.ChampionID == "" || archive.ChampionName == "" {
		t.Fatal("archive missing champion")
	}
	if len(archive.Standings) != len(e.state.Teams) {
		t.Fatalf("archived standings rows = %d, want %d", len(archive.Standings), len(e.state.Teams))
	}
	if len(archive.Series) != 15 {
		t.Fatalf("archived series = %d, want 15", len(archive.Series))
	}
	if archive.Awards.MVP == "" {
		t.Fatal("archive missing MVP")
	}
	if len(archive.Rookies) != RookiesPerSeason {
		t.Fatalf("rookie class size = %d, want %d", len(archive.Rookies), RookiesPerSeason)
	}

	// Mutable season logs are cleared; per-season card stats reset.
	if len(e.state.Transactions) != 0 || len(e.state.Results) != 0 || e.state.Playoffs != nil {
		t.Fatal("season logs not cleared at archive time")
	}
	for _, c := range e.state.Cards {
		if c.GamesPlayed != 0 || c.AvgContribution != 0 {
			t.Fatalf("card %s per-season stats not reset", c.ID)
		}
		if c.Fatigue != card.FatigueMax {
			t.Fatalf("card %s fatigue not restored", c.ID)
		}
	}

	// MVP cost bump: floor plus bump, never below floor anywhere.
	for _, c := range e.state.Cards {
		if c.Cost < card.CostFloor {
			t.Fatalf("card %s cost %.2f below floor", c.ID, c.Cost)
		}
	}

	// The next draft must never seat a retired card.
	if err := e.RunPreseason(ctx); err != nil {
		t.Fatalf("second RunPreseason() error = %v", err)
	}
	for _, tm := range e.state.Teams {
		if tm.Wins != 0 || tm.Losses != 0 {
			t.Fatal("records not reset for the new season")
		}
		for _, id := range tm.RosterIDs() {
			if e.state.Cards[id].Retired {
				t.Fatalf("retired card %s drafted by %s", id, tm.ID)
			}
		}
	}
}

func TestOffseasonStepOrder(t *testing.T) {
	e := newTestEngine(6, 0.05)
	ctx := context.Background()

	if err := e.ComputeAwards(ctx); !errors.Is(err, ErrPhaseOrder) {
		t.Fatalf("ComputeAwards in preseason: err = %v, want ErrPhaseOrder", err)
	}

	playRegularSeason(t, e)
	if _, err := e.SeedPlayoffs(ctx); err != nil {
		t.Fatalf("SeedPlayoffs() error = %v", err)
	}
	if err := e.ComputeAwards(ctx); !errors.Is(err, ErrPhaseOrder) {
		t.Fatalf("ComputeAwards before bracket decided: err = %v, want ErrPhaseOrder", err)
	}
	if _, err := e.RunPlayoffs(ctx); err != nil {
		t.Fatalf("RunPlayoffs() error = %v", err)
	}

	if err := e.AdjustCosts(ctx); !errors.Is(err, ErrPhaseOrder) {
		t.Fatalf("AdjustCosts before awards: err = %v, want ErrPhaseOrder", err)
	}
	if err := e.ComputeAwards(ctx); err != nil {
		t.Fatalf("ComputeAwards() error = %v", err)
	}
	if err := e.ApplyPatch(ctx); !errors.Is(err, ErrPhaseOrder) {
		t.Fatalf("ApplyPatch before costs: err = %v, want ErrPhaseOrder", err)
	}
	if err := e.AdjustCosts(ctx); err != nil {
		t.Fatalf("AdjustCosts() error = %v", err)
	}
	if err := e.ApplyPatch(ctx); err != nil {
		t.Fatalf("ApplyPatch() error = %v", err)
	}

	patch := e.state.Offseason.Patch
	if patch == nil || patch.Nickname == "" {
		t.Fatal("patch notes missing")
	}
	if len(patch.Changes) == 0 || len(patch.Changes) > patchCardsMax*2 {
		t.Fatalf("patch changed %d attributes", len(patch.Changes))
	}
	for _, ch := range patch.Changes {
		if ch.After < patchAttrFloor || ch.After > patchAttrCeil {
			t.Fatalf("patched attr %s on %s landed at %d, outside [%d, %d]",
				ch.Attr, ch.CardID, ch.After, patchAttrFloor, patchAttrCeil)
		}
	}

	if err := e.RetireAndReplenish(ctx); err != nil {
		t.Fatalf("RetireAndReplenish() error = %v", err)
	}
	if len(e.state.Cards) > PoolCeiling {
		t.Fatalf("pool size %d exceeds ceiling %d", len(e.state.Cards), PoolCeiling)
	}
	for _, c := range e.state.Cards {
		if !c.Retired && c.Age >= c.Lifespan+1 {
			t.Fatalf("card %s aged past lifespan without retiring", c.ID)
		}
	}

	if err := e.ArchiveSeason(ctx); err != nil {
		t.Fatalf("ArchiveSeason() error = %v", err)
	}
}
