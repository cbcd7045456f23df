package usecase

import (
	"fmt"

	"github.com/arkadito/clash-league/internal/domain/card"
	"github.com/arkadito/clash-league/internal/domain/team"
)

const (
	// InitialPoolSize is the card count generated for a fresh world.
	InitialPoolSize = 160
	// PoolCeiling caps the card pool; retired unrostered cards are pruned
	// past it.
	PoolCeiling = 170
	// RookiesPerSeason enter the pool each offseason.
	RookiesPerSeason = 4
)

var cardFirstNames = []string{
	"Ember", "Frost", "Storm", "Iron", "Shadow", "Gale", "Thorn", "Ash",
	"Rune", "Onyx", "Cinder", "Hollow", "Vesper", "Grim", "Solar", "Night",
	"Drift", "Quill", "Briar", "Sable",
}

var cardLastNames = []string{
	"Warden", "Reaver", "Herald", "Piper", "Sentinel", "Marauder", "Oracle",
	"Lancer", "Keeper", "Striker", "Monk", "Harbinger", "Juggler", "Warlock",
	"Ranger", "Brute", "Duelist", "Prophet", "Vanguard", "Trickster",
}

var teamPrefixes = []string{
	"Crimson", "Azure", "Golden", "Obsidian", "Verdant", "Silver", "Scarlet",
	"Umbral", "Radiant", "Thundering", "Frozen", "Burning", "Howling",
	"Gilded", "Savage", "Wandering", "Stalwart", "Feral", "Arcane", "Molten",
}

var teamSuffixes = []string{
	"Keep", "Spires", "Legion", "Wardens", "Ravens", "Titans", "Drakes",
	"Outlaws", "Tempest", "Colossi", "Reavers", "Pikes", "Griffins",
	"Serpents", "Bulwark", "Nomads", "Monarchs", "Wolves", "Summit", "Tide",
}

var teamEmblems = []string{
	"crown", "tower", "dragon", "wolf", "raven", "hammer", "shield", "comet",
	"anchor", "flame",
}

var teamColors = []string{
	"crimson", "azure", "gold", "onyx", "emerald", "silver", "violet",
	"amber", "teal", "ivory",
}

var managerStyles = []string{
	"aggressive", "defensive", "balanced", "tempo", "gambler",
}

// GenerateWorld fills an empty state with the card pool and the franchises.
// It is a no-op when the world already exists.
func (e *Engine) generateWorld() {
	if len(e.state.Teams) > 0 || len(e.state.Cards) > 0 {
		return
	}

	for i := 0; i < InitialPoolSize; i++ {
		c := e.newCard()
		e.state.Cards[c.ID] = c
	}

	usedNames := make(map[string]bool, e.cfg.TeamCount)
	for i := 0; i < e.cfg.TeamCount; i++ {
		name := e.teamName(usedNames)
		t := &team.Team{
			ID:           e.ids.NewID("TEAM"),
			Name:         name,
			Emblem:       teamEmblems[e.rng.IntN(len(teamEmblems))],
			Color:        teamColors[e.rng.IntN(len(teamColors))],
			ManagerStyle: managerStyles[e.rng.IntN(len(managerStyles))],
		}
		e.state.Teams = append(e.state.Teams, t)
	}

	e.logger.Info("world generated",
		"cards", len(e.state.Cards),
		"teams", len(e.state.Teams),
	)
}

func (e *Engine) newCard() *card.Card {
	c := &card.Card{
		ID:              e.ids.NewID("CARD"),
		Name:            e.cardName(),
		Archetype:       card.Archetypes[e.rng.IntN(len(card.Archetypes))],
		AttackType:      card.AttackTypes[e.rng.IntN(len(card.AttackTypes))],
		Attack:          e.rng.IntRange(40, 95),
		Defense:         e.rng.IntRange(40, 95),
		Speed:           e.rng.IntRange(40, 95),
		Tempo:           e.rng.IntRange(40, 95),
		AttackTypeScore: e.rng.IntRange(30, 90),
		SynergyScore:    e.rng.IntRange(30, 90),
		Age:             e.rng.IntRange(0, 2),
		Lifespan:        e.rng.IntRange(card.LifespanMin, card.LifespanMax),
		Fatigue:         card.FatigueMax,
	}
	c.RecomputeDerived()
	c.BaseCost = card.BaseCostFor(c.Power)
	c.Cost = c.BaseCost
	return c
}

// newRookie is a fresh-pool card: age zero, full stamina.
func (e *Engine) newRookie() *card.Card {
	c := e.newCard()
	c.Age = 0
	return c
}

func (e *Engine) cardName() string {
	first := cardFirstNames[e.rng.IntN(len(cardFirstNames))]
	last := cardLastNames[e.rng.IntN(len(cardLastNames))]
	return fmt.Sprintf("%s %s", first, last)
}

func (e *Engine) teamName(used map[string]bool) string {
	for {
		name := fmt.Sprintf("%s %s",
			teamPrefixes[e.rng.IntN(len(teamPrefixes))],
			teamSuffixes[e.rng.IntN(len(teamSuffixes))],
		)
		if !used[name] {
			used[name] = true
			return name
		}
	}
}
