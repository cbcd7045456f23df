package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/arkadito/clash-league/internal/domain/card"
	"github.com/arkadito/clash-league/internal/domain/league"
	"github.com/arkadito/clash-league/internal/domain/team"
)

const (
	// subThreshold is the fatigue level below which a starter sits.
	subThreshold = 25.0

	homeAdvantage    = 1.03
	rivalryIntensity = 1.04
	fatigueDecayMin  = 8
	fatigueDecayMax  = 15
	fatigueRegenMin  = 10
	fatigueRegenMax  = 18
	scoreDivisor     = 10.0
)

// AdvanceDay resolves every fixture scheduled for the current day and moves
// the clock forward. A day with no fixtures advances the clock and returns
// no results.
func (e *Engine) AdvanceDay(ctx context.Context) ([]league.MatchResult, error) {
	_, span := startUsecaseSpan(ctx, "engine.AdvanceDay")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != league.PhaseRegularSeason {
		return nil, fmt.Errorf("%w: advance day requires %s, league is in %s",
			ErrPhaseOrder, league.PhaseRegularSeason, e.state.Phase)
	}
	if e.state.SeasonComplete() {
		return nil, fmt.Errorf("%w: regular season already complete", ErrPhaseOrder)
	}

	day := e.state.Day
	results := make([]league.MatchResult, 0, len(e.state.Teams)/2)
	for _, entry := range e.state.Schedule {
		if entry.Day != day {
			continue
		}
		home := e.state.TeamByID(entry.HomeTeamID)
		away := e.state.TeamByID(entry.AwayTeamID)
		res := e.simulateMatch(home, away, false)
		res.Day = day
		results = append(results, res)
		e.state.Results = append(e.state.Results, res)
	}
	e.state.Day++

	e.logger.InfoContext(ctx, "day resolved",
		"season", e.state.Season,
		"day", day,
		"games", len(results),
	)
	return results, nil
}

type sideOutcome struct {
	total  float64
	subs   int
	played []*card.Card
	rested []*card.Card
}

// simulateMatch resolves one game. Postseason games use the same resolver
// but never touch win/loss records or rivalry history, so archived
// standings stay purely regular-season.
func (e *Engine) simulateMatch(home, away *team.Team, postseason bool) league.MatchResult {
	var intense bool
	var riv *league.Rivalry
	if !postseason {
		riv = e.state.RivalryFor(home.ID, away.ID)
		intense = riv.Intense()
	}

	homeSide := e.resolveSide(home, true, intense)
	awaySide := e.resolveSide(away, false, intense)

	if e.cfg.Noise > 0 {
		homeSide.total *= e.rng.Range(1-e.cfg.Noise, 1+e.cfg.Noise)
		awaySide.total *= e.rng.Range(1-e.cfg.Noise, 1+e.cfg.Noise)
	}

	homeScore := int(math.Round(homeSide.total / scoreDivisor))
	awayScore := int(math.Round(awaySide.total / scoreDivisor))

	var coinFlip bool
	if homeScore == awayScore {
		coinFlip = true
		if e.rng.Bool() {
			homeScore++
		} else {
			awayScore++
		}
	}

	winner := home
	if awayScore > homeScore {
		winner = away
	}

	if !postseason {
		if winner == home {
			home.RecordWin()
			away.RecordLoss()
		} else {
			away.RecordWin()
			home.RecordLoss()
		}
		riv.Games++
		riv.RecordWin(winner.ID)
	}

	e.settleFatigue(homeSide)
	e.settleFatigue(awaySide)
	expireBoosts(home)
	expireBoosts(away)

	subs := homeSide.subs + awaySide.subs
	return league.MatchResult{
		Season:        e.state.Season,
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		HomeScore:     homeScore,
		AwayScore:     awayScore,
		WinnerID:      winner.ID,
		CoinFlip:      coinFlip,
		Rivalry:       intense,
		Substitutions: subs,
		Postseason:    postseason,
		HomeTotal:     homeSide.total,
		AwayTotal:     awaySide.total,
		Comment: fmt.Sprintf("%s %d - %d %s (%d subs)",
			home.Name, homeScore, awayScore, away.Name, subs),
	}
}

// resolveSide fields the lineup and computes the raw side total. The backup
// covers at most one exhausted starter slot per game.
func (e *Engine) resolveSide(t *team.Team, isHome, intense bool) sideOutcome {
	var out sideOutcome

	backup := e.state.CardByID(t.BackupID)
	backupUsed := false

	for _, starterID := range t.Starters {
		starter := e.state.CardByID(starterID)
		if starter == nil {
			continue
		}
		active := starter
		if starter.Fatigue < subThreshold && backup != nil && !backupUsed && backup.Fatigue >= subThreshold {
			active = backup
			backupUsed = true
			out.subs++
			out.rested = append(out.rested, starter)
		}
		contribution := (active.Power + e.boostPowerDelta(t, active.ID)) * active.FatigueFactor()
		active.RecordContribution(contribution)
		out.total += contribution
		out.played = append(out.played, active)
	}

	if backup != nil && !backupUsed {
		out.rested = append(out.rested, backup)
	}

	archetypes := make([]card.Archetype, 0, len(out.played))
	for _, c := range out.played {
		archetypes = append(archetypes, c.Archetype)
	}
	out.total *= card.ChemistryMultiplier(archetypes)
	if isHome {
		out.total *= homeAdvantage
	}
	if intense {
		out.total *= rivalryIntensity
	}
	return out
}

// boostPowerDelta sums the active boosts that apply to the card.
func (e *Engine) boostPowerDelta(t *team.Team, cardID string) float64 {
	var delta float64
	for _, b := range t.Boosts {
		if b.GamesLeft <= 0 {
			continue
		}
		if b.TargetCardID != "" && b.TargetCardID != cardID {
			continue
		}
		delta += card.PowerDeltaFor(b.Stat, b.Amount)
	}
	return delta
}

// settleFatigue decays the cards that played and restores the ones that sat.
func (e *Engine) settleFatigue(side sideOutcome) {
	for _, c := range side.played {
		c.ApplyFatigue(-float64(e.rng.IntRange(fatigueDecayMin, fatigueDecayMax)))
	}
	for _, c := range side.rested {
		c.ApplyFatigue(float64(e.rng.IntRange(fatigueRegenMin, fatigueRegenMax)))
	}
}

// expireBoosts burns one game off every active boost and drops spent ones.
func expireBoosts(t *team.Team) {
	kept := t.Boosts[:0]
	for _, b := range t.Boosts {
		b.GamesLeft--
		if b.GamesLeft > 0 {
			kept = append(kept, b)
		}
	}
	t.Boosts = kept
	if len(t.Boosts) == 0 {
		t.Boosts = nil
	}
}
