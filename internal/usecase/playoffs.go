package usecase

import (
	"context"
	"fmt"

	"github.com/arkadito/clash-league/internal/domain/league"
)

// SeedPlayoffs locks the regular season and seeds the 16-team bracket from
// the final standings.
func (e *Engine) SeedPlayoffs(ctx context.Context) (league.Playoffs, error) {
	_, span := startUsecaseSpan(ctx, "engine.SeedPlayoffs")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != league.PhaseRegularSeason {
		return league.Playoffs{}, fmt.Errorf("%w: seeding requires %s, league is in %s",
			ErrPhaseOrder, league.PhaseRegularSeason, e.state.Phase)
	}
	if !e.state.SeasonComplete() {
		return league.Playoffs{}, fmt.Errorf("%w: fixtures remain on the calendar", ErrPhaseOrder)
	}

	standings := e.state.Standings()
	if len(standings) < league.BracketSize {
		return league.Playoffs{}, fmt.Errorf("%w: %d teams cannot fill a %d-team bracket",
			ErrInvalidInput, len(standings), league.BracketSize)
	}

	seeds := make([]string, league.BracketSize)
	alive := make([]int, league.BracketSize)
	for i := 0; i < league.BracketSize; i++ {
		seeds[i] = standings[i].TeamID
		alive[i] = i
	}
	e.state.Playoffs = &league.Playoffs{Seeds: seeds, Alive: alive}
	e.state.Phase = league.PhasePostseason

	e.logger.InfoContext(ctx, "playoffs seeded",
		"season", e.state.Season,
		"topSeed", seeds[0],
	)
	return copyPlayoffs(e.state.Playoffs), nil
}

// RunPlayoffs plays the bracket to completion: four rounds of BO3, BO5, BO5
// and BO7, higher seed hosting every game of its series.
func (e *Engine) RunPlayoffs(ctx context.Context) (league.Playoffs, error) {
	_, span := startUsecaseSpan(ctx, "engine.RunPlayoffs")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.state.Playoffs
	if e.state.Phase != league.PhasePostseason || p == nil {
		return league.Playoffs{}, fmt.Errorf("%w: bracket is not seeded", ErrPhaseOrder)
	}
	if p.Done {
		return league.Playoffs{}, fmt.Errorf("%w: bracket already decided", ErrPhaseOrder)
	}

	for len(p.Alive) > 1 {
		bestOf := league.SeriesLengths[p.Round]
		next := make([]int, 0, len(p.Alive)/2)
		n := len(p.Alive)
		for i := 0; i < n/2; i++ {
			high, low := p.Alive[i], p.Alive[n-1-i]
			winner := e.playSeries(p, high, low, bestOf)
			next = append(next, winner)
		}
		p.Alive = next
		p.Round++
	}

	championSeed := p.Alive[0]
	p.ChampionID = p.Seeds[championSeed]
	p.Done = true
	champion := e.state.TeamByID(p.ChampionID)
	champion.Titles++
	e.state.LogTransaction(fmt.Sprintf(
		"season %d: %s wins the championship as the %d seed",
		e.state.Season, champion.Name, championSeed+1,
	))

	e.logger.InfoContext(ctx, "playoffs complete",
		"season", e.state.Season,
		"champion", champion.Name,
	)
	return copyPlayoffs(p), nil
}

// playSeries runs one best-of series between two seeds and returns the
// advancing seed index.
func (e *Engine) playSeries(p *league.Playoffs, highSeed, lowSeed, bestOf int) int {
	need := bestOf/2 + 1
	home := e.state.TeamByID(p.Seeds[highSeed])
	away := e.state.TeamByID(p.Seeds[lowSeed])

	highWins, lowWins := 0, 0
	for highWins < need && lowWins < need {
		res := e.simulateMatch(home, away, true)
		res.Day = e.state.Day
		e.state.Results = append(e.state.Results, res)
		if res.WinnerID == home.ID {
			highWins++
		} else {
			lowWins++
		}
	}

	winner := highSeed
	winnerTeam := home
	if lowWins > highWins {
		winner = lowSeed
		winnerTeam = away
	}
	p.Series = append(p.Series, league.SeriesResult{
		Round:        p.Round,
		BestOf:       bestOf,
		HighSeed:     highSeed,
		LowSeed:      lowSeed,
		HighSeedTeam: home.ID,
		LowSeedTeam:  away.ID,
		HighWins:     highWins,
		LowWins:      lowWins,
		WinnerID:     winnerTeam.ID,
	})
	return winner
}

// Playoffs returns a detached view of the current bracket.
func (e *Engine) Playoffs() (league.Playoffs, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Playoffs == nil {
		return league.Playoffs{}, false
	}
	return copyPlayoffs(e.state.Playoffs), true
}

func copyPlayoffs(p *league.Playoffs) league.Playoffs {
	out := *p
	out.Seeds = append([]string(nil), p.Seeds...)
	out.Alive = append([]int(nil), p.Alive...)
	out.Series = append([]league.SeriesResult(nil), p.Series...)
	return out
}
