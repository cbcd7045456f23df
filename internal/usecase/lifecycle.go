package usecase

import (
	"context"
	"fmt"

	"github.com/arkadito/clash-league/internal/domain/league"
)

// RunPreseason takes a PRESEASON league into the regular season: the world
// is generated on first run, rosters are cleared and redrafted, and a fresh
// calendar is laid out.
func (e *Engine) RunPreseason(ctx context.Context) error {
	_, span := startUsecaseSpan(ctx, "engine.RunPreseason")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != league.PhasePreseason {
		return fmt.Errorf("%w: preseason requires %s, league is in %s",
			ErrPhaseOrder, league.PhasePreseason, e.state.Phase)
	}

	e.generateWorld()
	e.resetTeamsForSeason()
	e.runDraft()
	e.generateCalendar()
	e.state.Day = 1
	e.state.Phase = league.PhaseRegularSeason

	e.logger.InfoContext(ctx, "regular season opened",
		"season", e.state.Season,
		"teams", len(e.state.Teams),
	)
	return nil
}

// RegenerateCalendar rebuilds the schedule before any game has been played.
func (e *Engine) RegenerateCalendar(ctx context.Context) error {
	_, span := startUsecaseSpan(ctx, "engine.RegenerateCalendar")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != league.PhaseRegularSeason {
		return fmt.Errorf("%w: calendar regeneration requires %s, league is in %s",
			ErrPhaseOrder, league.PhaseRegularSeason, e.state.Phase)
	}
	if e.state.Day != 1 {
		return fmt.Errorf("%w: calendar is locked once play begins", ErrPhaseOrder)
	}

	e.generateCalendar()
	return nil
}

// resetTeamsForSeason clears the per-season franchise state ahead of a new
// draft. Career fields (titles) survive.
func (e *Engine) resetTeamsForSeason() {
	for _, t := range e.state.Teams {
		t.Starters = nil
		t.BackupID = ""
		t.Wins = 0
		t.Losses = 0
		t.Streak = 0
		t.CostSpent = 0
		t.ShopPointsLeft = 0
		t.Boosts = nil
		t.TradeUsed = false
	}
}
