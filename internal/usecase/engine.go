// Package usecase implements the league engine: world generation, the snake
// draft, the regular-season calendar, match resolution, the postseason
// bracket, the shop, trades, and the offseason pipeline.
package usecase

import (
	"sync"

	"github.com/arkadito/clash-league/internal/domain/league"
	"github.com/arkadito/clash-league/internal/platform/entropy"
	"github.com/arkadito/clash-league/internal/platform/id"
	"github.com/arkadito/clash-league/internal/platform/logging"
)

// Settings are the engine tuning knobs, fixed at construction.
type Settings struct {
	TeamCount    int
	GamesPerTeam int
	MaxTeamCost  float64
	Noise        float64
	Seed         uint64
}

func DefaultSettings() Settings {
	return Settings{
		TeamCount:    20,
		GamesPerTeam: 30,
		MaxTeamCost:  20.0,
		Noise:        0.05,
		Seed:         1337,
	}
}

// Engine owns the league world. All exported methods lock; unexported
// helpers assume the lock is held. Every random draw goes through the single
// seeded source so a run replays identically from a snapshot.
type Engine struct {
	mu     sync.Mutex
	state  *league.State
	rng    *entropy.Source
	ids    id.Generator
	cfg    Settings
	logger *logging.Logger
}

func NewEngine(cfg Settings, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	rng := entropy.New(cfg.Seed)
	return &Engine{
		state:  league.NewState(cfg.MaxTeamCost),
		rng:    rng,
		ids:    id.NewSeededGenerator(rng),
		cfg:    cfg,
		logger: logger,
	}
}

// Snapshot captures the full world plus the RNG state word.
func (e *Engine) Snapshot() *league.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return league.NewSnapshot(e.state, e.rng.State())
}

// RestoreSnapshot replaces the world with the saved one, resuming the exact
// random sequence the save interrupted.
func (e *Engine) RestoreSnapshot(snap *league.Snapshot) error {
	state, rngState, err := snap.Restore()
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = state
	e.rng = entropy.Restore(rngState)
	e.ids = id.NewSeededGenerator(e.rng)
	e.logger.Info("snapshot restored",
		"season", state.Season,
		"day", state.Day,
		"phase", state.Phase,
	)
	return nil
}

// Standings returns the current regular-season table.
func (e *Engine) Standings() []league.StandingsRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Standings()
}

// SeasonComplete reports whether every scheduled fixture has been played.
func (e *Engine) SeasonComplete() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.SeasonComplete()
}

// ArchivedSeason returns the sealed record for one past season.
func (e *Engine) ArchivedSeason(season int) (league.SeasonArchive, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := e.state.Archive[season]
	if !ok {
		return league.SeasonArchive{}, false
	}
	return *a, true
}

// LatestArchive returns the most recently sealed season, if any.
func (e *Engine) LatestArchive() (league.SeasonArchive, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var latest *league.SeasonArchive
	for _, a := range e.state.Archive {
		if latest == nil || a.Season > latest.Season {
			latest = a
		}
	}
	if latest == nil {
		return league.SeasonArchive{}, false
	}
	return *latest, true
}
