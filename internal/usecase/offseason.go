package usecase

import (
	"context"
	"fmt"

	"github.com/arkadito/clash-league/internal/domain/card"
	"github.com/arkadito/clash-league/internal/domain/league"
	"github.com/arkadito/clash-league/internal/platform/entropy"
)

// Award cost bumps; every other active card drifts down slightly.
const (
	costBumpMVP       = 0.5
	costBumpDPOY      = 0.3
	costBumpFinalsMVP = 0.3
	costBumpROTY      = 0.2
	costBumpSixthMan  = 0.2
	costDrift         = -0.05
)

// awardMinGames is the games-played floor for the MVP race. A card with a
// handful of appearances and an inflated per-game average is not a candidate.
const awardMinGames = 10

const (
	patchCardsMax  = 20
	patchCardsMin  = 8
	patchDeltaMax  = 4
	patchAttrFloor = 30
	patchAttrCeil  = 99

	randomRetirementsMax = 3
)

var patchNicknames = []string{
	"Equalizer", "Reckoning", "Tempest", "Quiet Nerf", "Great Shuffle",
	"Rebalance", "Forge", "Aftershock", "Tuning Pass", "Winter Council",
}

var patchableAttrs = []string{"attack", "defense", "speed", "tempo"}

// RunOffseason drives the whole offseason pipeline in order, skipping steps
// a previous (snapshotted) run already completed. Resuming is only
// deterministic under the RNG state the snapshot carried.
func (e *Engine) RunOffseason(ctx context.Context) error {
	if err := e.ComputeAwards(ctx); err != nil && !alreadyDone(err) {
		return err
	}
	if err := e.AdjustCosts(ctx); err != nil && !alreadyDone(err) {
		return err
	}
	if err := e.ApplyPatch(ctx); err != nil && !alreadyDone(err) {
		return err
	}
	if err := e.RetireAndReplenish(ctx); err != nil && !alreadyDone(err) {
		return err
	}
	return e.ArchiveSeason(ctx)
}

type stepDoneError struct{ step string }

func (e *stepDoneError) Error() string { return e.step + " already completed" }

func alreadyDone(err error) bool {
	_, ok := err.(*stepDoneError)
	return ok
}

// enterOffseason moves POSTSEASON with a decided bracket into OFFSEASON, or
// verifies the league is already there.
func (e *Engine) enterOffseason() error {
	switch e.state.Phase {
	case league.PhaseOffseason:
		return nil
	case league.PhasePostseason:
		if e.state.Playoffs == nil || !e.state.Playoffs.Done {
			return fmt.Errorf("%w: bracket not decided yet", ErrPhaseOrder)
		}
		e.state.Phase = league.PhaseOffseason
		e.state.Offseason = &league.OffseasonProgress{}
		return nil
	default:
		return fmt.Errorf("%w: offseason requires a decided postseason, league is in %s",
			ErrPhaseOrder, e.state.Phase)
	}
}

// ComputeAwards decides the season's honors and pins them to card records.
func (e *Engine) ComputeAwards(ctx context.Context) error {
	_, span := startUsecaseSpan(ctx, "engine.ComputeAwards")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enterOffseason(); err != nil {
		return err
	}
	if e.state.Offseason.AwardsDone {
		return &stepDoneError{step: "awards"}
	}

	awards := &league.AwardSet{}

	played := e.cardsWhere(func(c *card.Card) bool { return c.GamesPlayed > 0 && !c.Retired })
	qualified := e.cardsWhere(func(c *card.Card) bool { return c.GamesPlayed >= awardMinGames && !c.Retired })

	awards.MVP = bestCardID(qualified, func(c *card.Card) float64 { return c.AvgContribution })
	awards.DPOY = bestCardID(played, defensiveScore)

	backups := make(map[string]bool)
	for _, t := range e.state.Teams {
		if t.BackupID != "" {
			backups[t.BackupID] = true
		}
	}
	benchers := e.cardsWhere(func(c *card.Card) bool { return c.GamesPlayed > 0 && backups[c.ID] })
	awards.SixthMan = bestCardID(benchers, func(c *card.Card) float64 { return c.AvgContribution })

	rookies := e.cardsWhere(func(c *card.Card) bool { return c.GamesPlayed > 0 && c.Age == 0 })
	awards.ROTY = bestCardID(rookies, func(c *card.Card) float64 { return c.AvgContribution })

	if p := e.state.Playoffs; p != nil && p.ChampionID != "" {
		champion := e.state.TeamByID(p.ChampionID)
		roster := make(map[string]bool)
		for _, id := range champion.RosterIDs() {
			roster[id] = true
		}
		finalists := e.cardsWhere(func(c *card.Card) bool { return c.GamesPlayed > 0 && roster[c.ID] })
		awards.FinalsMVP = bestCardID(finalists, func(c *card.Card) float64 { return c.AvgContribution })
	}

	for _, entry := range []struct {
		cardID string
		name   string
	}{
		{awards.MVP, league.AwardMVP},
		{awards.DPOY, league.AwardDPOY},
		{awards.SixthMan, league.AwardSixthMan},
		{awards.ROTY, league.AwardROTY},
		{awards.FinalsMVP, league.AwardFinalsMVP},
	} {
		if entry.cardID == "" {
			continue
		}
		c := e.state.Cards[entry.cardID]
		c.Awards = append(c.Awards, entry.name)
		e.state.LogTransaction(fmt.Sprintf("season %d award %s: %s (%s)",
			e.state.Season, entry.name, c.Name, c.ID))
	}

	e.state.Offseason.Awards = awards
	e.state.Offseason.AwardsDone = true
	e.logger.InfoContext(ctx, "awards computed", "season", e.state.Season, "mvp", awards.MVP)
	return nil
}

// AdjustCosts bumps award winners and drifts everyone else toward the floor.
func (e *Engine) AdjustCosts(ctx context.Context) error {
	_, span := startUsecaseSpan(ctx, "engine.AdjustCosts")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enterOffseason(); err != nil {
		return err
	}
	if !e.state.Offseason.AwardsDone {
		return fmt.Errorf("%w: cost adjustment runs after awards", ErrPhaseOrder)
	}
	if e.state.Offseason.CostsDone {
		return &stepDoneError{step: "cost adjustment"}
	}

	awards := e.state.Offseason.Awards
	bumps := map[string]float64{}
	addBump := func(cardID string, amount float64) {
		if cardID != "" {
			bumps[cardID] += amount
		}
	}
	addBump(awards.MVP, costBumpMVP)
	addBump(awards.DPOY, costBumpDPOY)
	addBump(awards.FinalsMVP, costBumpFinalsMVP)
	addBump(awards.ROTY, costBumpROTY)
	addBump(awards.SixthMan, costBumpSixthMan)

	for _, id := range e.state.SortedCardIDs() {
		c := e.state.Cards[id]
		if c.Retired {
			continue
		}
		delta, won := bumps[id]
		if !won {
			delta = costDrift
		}
		next := c.Cost + delta
		if next < card.CostFloor {
			next = card.CostFloor
		}
		c.Cost = card.Round2(next)
	}

	e.state.Offseason.CostsDone = true
	return nil
}

// ApplyPatch rolls the season balance patch: a random set of active cards
// gets one or two attributes nudged, clamped to the patch band.
func (e *Engine) ApplyPatch(ctx context.Context) error {
	_, span := startUsecaseSpan(ctx, "engine.ApplyPatch")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enterOffseason(); err != nil {
		return err
	}
	if !e.state.Offseason.CostsDone {
		return fmt.Errorf("%w: patch runs after cost adjustment", ErrPhaseOrder)
	}
	if e.state.Offseason.PatchDone {
		return &stepDoneError{step: "patch"}
	}

	active := e.cardsWhere(func(c *card.Card) bool { return !c.Retired })
	count := e.rng.IntRange(patchCardsMin, patchCardsMax)
	if count > len(active) {
		count = len(active)
	}

	notes := &league.PatchNotes{
		Nickname: fmt.Sprintf("The %s", patchNicknames[e.rng.IntN(len(patchNicknames))]),
	}
	for _, idx := range e.rng.Sample(len(active), count) {
		c := active[idx]
		attrCount := e.rng.IntRange(1, 2)
		attrIdxs := e.rng.Sample(len(patchableAttrs), attrCount)
		for _, ai := range attrIdxs {
			attr := patchableAttrs[ai]
			delta := e.rng.IntRange(1, patchDeltaMax)
			if e.rng.Bool() {
				delta = -delta
			}
			before := attrValue(c, attr)
			after := clampInt(before+delta, patchAttrFloor, patchAttrCeil)
			setAttrValue(c, attr, after)
			notes.Changes = append(notes.Changes, league.PatchChange{
				CardID: c.ID,
				Attr:   attr,
				Delta:  delta,
				Before: before,
				After:  after,
			})
		}
		c.RecomputeDerived()
	}

	e.state.Offseason.Patch = notes
	e.state.Offseason.PatchDone = true
	e.logger.InfoContext(ctx, "balance patch applied",
		"season", e.state.Season,
		"nickname", notes.Nickname,
		"changes", len(notes.Changes),
	)
	return nil
}

// RetireAndReplenish ages the pool: lifespan retirements are forced, a few
// extra cards bow out at random, survivors age, and the rookie class enters.
func (e *Engine) RetireAndReplenish(ctx context.Context) error {
	_, span := startUsecaseSpan(ctx, "engine.RetireAndReplenish")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enterOffseason(); err != nil {
		return err
	}
	if !e.state.Offseason.PatchDone {
		return fmt.Errorf("%w: retirement runs after the patch", ErrPhaseOrder)
	}
	if e.state.Offseason.RetirementDone {
		return &stepDoneError{step: "retirement"}
	}

	var retirements []league.Retirement
	for _, id := range e.state.SortedCardIDs() {
		c := e.state.Cards[id]
		if c.Retired || c.Age < c.Lifespan {
			continue
		}
		c.Retired = true
		retirements = append(retirements, league.Retirement{
			CardID: c.ID, Name: c.Name, Age: c.Age, Forced: true,
		})
	}

	survivors := e.cardsWhere(func(c *card.Card) bool { return !c.Retired })
	extra := e.rng.IntRange(0, randomRetirementsMax)
	if extra > len(survivors) {
		extra = len(survivors)
	}
	for _, idx := range e.rng.Sample(len(survivors), extra) {
		c := survivors[idx]
		c.Retired = true
		retirements = append(retirements, league.Retirement{
			CardID: c.ID, Name: c.Name, Age: c.Age, Forced: false,
		})
	}

	for _, id := range e.state.SortedCardIDs() {
		c := e.state.Cards[id]
		if c.Retired {
			continue
		}
		c.Age++
		c.SeasonsActive++
		if c.SeasonsActive > 0 {
			c.PickRate = float64(c.TimesDrafted) / float64(c.SeasonsActive)
		}
	}

	var rookies []league.Rookie
	for i := 0; i < RookiesPerSeason; i++ {
		c := e.newRookie()
		e.state.Cards[c.ID] = c
		rookies = append(rookies, league.Rookie{CardID: c.ID, Name: c.Name})
	}

	e.prunePool()

	e.state.Offseason.Retirements = retirements
	e.state.Offseason.Rookies = rookies
	e.state.Offseason.RetirementDone = true
	e.logger.InfoContext(ctx, "pool refreshed",
		"season", e.state.Season,
		"retired", len(retirements),
		"rookies", len(rookies),
	)
	return nil
}

// prunePool drops retired unrostered cards while the pool exceeds its
// ceiling.
func (e *Engine) prunePool() {
	if len(e.state.Cards) <= PoolCeiling {
		return
	}
	rostered := make(map[string]bool)
	for _, t := range e.state.Teams {
		for _, id := range t.RosterIDs() {
			rostered[id] = true
		}
	}
	for _, id := range e.state.SortedCardIDs() {
		if len(e.state.Cards) <= PoolCeiling {
			return
		}
		c := e.state.Cards[id]
		if c.Retired && !rostered[id] {
			delete(e.state.Cards, id)
		}
	}
}

// ArchiveSeason seals the season record, clears the mutable logs, and
// advances the league clock into the next preseason.
func (e *Engine) ArchiveSeason(ctx context.Context) error {
	_, span := startUsecaseSpan(ctx, "engine.ArchiveSeason")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enterOffseason(); err != nil {
		return err
	}
	progress := e.state.Offseason
	if !progress.RetirementDone {
		return fmt.Errorf("%w: archive runs after retirement", ErrPhaseOrder)
	}

	archive := &league.SeasonArchive{
		Season:       e.state.Season,
		Standings:    e.state.Standings(),
		Patch:        league.PatchNotes{},
		Retirements:  progress.Retirements,
		Rookies:      progress.Rookies,
		Transactions: append([]string(nil), e.state.Transactions...),
	}
	if progress.Awards != nil {
		archive.Awards = *progress.Awards
	}
	if progress.Patch != nil {
		archive.Patch = *progress.Patch
	}
	if p := e.state.Playoffs; p != nil {
		archive.Series = append([]league.SeriesResult(nil), p.Series...)
		archive.ChampionID = p.ChampionID
		if champion := e.state.TeamByID(p.ChampionID); champion != nil {
			archive.ChampionName = champion.Name
		}
	}
	e.state.Archive[e.state.Season] = archive

	e.sealCardSeasons(archive)

	e.state.Transactions = nil
	e.state.Results = nil
	e.state.Schedule = nil
	e.state.Playoffs = nil
	e.state.Offseason = nil
	e.state.Season++
	e.state.Day = 1
	e.state.Phase = league.PhasePreseason

	e.logger.InfoContext(ctx, "season archived",
		"season", archive.Season,
		"champion", archive.ChampionName,
	)
	return nil
}

// sealCardSeasons appends the season line to every card that played and
// resets the per-season counters.
func (e *Engine) sealCardSeasons(archive *league.SeasonArchive) {
	rosterOf := make(map[string]string)
	for _, t := range e.state.Teams {
		for _, id := range t.RosterIDs() {
			rosterOf[id] = t.ID
		}
	}

	for _, id := range e.state.SortedCardIDs() {
		c := e.state.Cards[id]
		if c.GamesPlayed > 0 {
			c.History = append(c.History, card.SeasonLine{
				Season:          archive.Season,
				TeamID:          rosterOf[id],
				GamesPlayed:     c.GamesPlayed,
				AvgContribution: c.AvgContribution,
				Awards:          seasonAwardsFor(archive.Awards, id),
			})
		}
		c.HOFProbability = entropy.Clamp(
			0.02+0.12*float64(len(c.Awards))+0.01*float64(c.SeasonsActive), 0, 0.99)
		c.GamesPlayed = 0
		c.ContributionSum = 0
		c.AvgContribution = 0
		c.Fatigue = card.FatigueMax
	}
}

// defensiveScore weights raw defense by season contribution so an unplayed
// high-defense card cannot take the defensive award.
func defensiveScore(c *card.Card) float64 {
	return float64(c.Defense) * (0.6 + 0.4*c.AvgContribution/100)
}

func seasonAwardsFor(awards league.AwardSet, cardID string) []string {
	var out []string
	if awards.MVP == cardID {
		out = append(out, league.AwardMVP)
	}
	if awards.DPOY == cardID {
		out = append(out, league.AwardDPOY)
	}
	if awards.SixthMan == cardID {
		out = append(out, league.AwardSixthMan)
	}
	if awards.ROTY == cardID {
		out = append(out, league.AwardROTY)
	}
	if awards.FinalsMVP == cardID {
		out = append(out, league.AwardFinalsMVP)
	}
	return out
}

// cardsWhere returns matching cards in lexical ID order.
func (e *Engine) cardsWhere(keep func(*card.Card) bool) []*card.Card {
	var out []*card.Card
	for _, id := range e.state.SortedCardIDs() {
		if c := e.state.Cards[id]; keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// bestCardID picks the highest-scoring card, ties broken by lexical ID via
// the caller's ordering.
func bestCardID(cards []*card.Card, score func(*card.Card) float64) string {
	var best *card.Card
	var bestScore float64
	for _, c := range cards {
		s := score(c)
		if best == nil || s > bestScore {
			best, bestScore = c, s
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

func attrValue(c *card.Card, attr string) int {
	switch attr {
	case "attack":
		return c.Attack
	case "defense":
		return c.Defense
	case "speed":
		return c.Speed
	case "tempo":
		return c.Tempo
	default:
		return 0
	}
}

func setAttrValue(c *card.Card, attr string, v int) {
	switch attr {
	case "attack":
		c.Attack = v
	case "defense":
		c.Defense = v
	case "speed":
		c.Speed = v
	case "tempo":
		c.Tempo = v
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
