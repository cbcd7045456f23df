// Package card defines the playable unit model: attributes, derived power,
// grades, cost policy, and the archetype synergy table.
package card

import (
	"fmt"
	"math"
)

type Archetype string

const (
	ArchetypeTank     Archetype = "TANK"
	ArchetypeAssassin Archetype = "ASSASSIN"
	ArchetypeMage     Archetype = "MAGE"
	ArchetypeSupport  Archetype = "SUPPORT"
	ArchetypeRanger   Archetype = "RANGER"
	ArchetypeBruiser  Archetype = "BRUISER"
)

// Archetypes lists every archetype in stable order.
var Archetypes = []Archetype{
	ArchetypeTank,
	ArchetypeAssassin,
	ArchetypeMage,
	ArchetypeSupport,
	ArchetypeRanger,
	ArchetypeBruiser,
}

type AttackType string

const (
	AttackMelee  AttackType = "MELEE"
	AttackRanged AttackType = "RANGED"
	AttackSpell  AttackType = "SPELL"
	AttackSiege  AttackType = "SIEGE"
)

var AttackTypes = []AttackType{AttackMelee, AttackRanged, AttackSpell, AttackSiege}

type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Power weighting. The weights sum to 1.0 so power stays on the
// 0-100 attribute scale.
const (
	weightAttack     = 0.28
	weightDefense    = 0.24
	weightSpeed      = 0.22
	weightTempo      = 0.10
	weightAttackType = 0.06
	weightSynergy    = 0.10
)

// CostFloor is the minimum cost a card can ever carry.
const CostFloor = 0.5

const (
	AttrMin = 0
	AttrMax = 100

	LifespanMin = 3
	LifespanMax = 8

	FatigueMin = 0.0
	FatigueMax = 100.0

	// FatigueFloorFraction keeps an exhausted card at half effectiveness
	// instead of zeroing it out.
	FatigueFloorFraction = 0.5
)

// SeasonLine is one sealed season of a card's career, appended at archive time.
type SeasonLine struct {
	Season          int      `json:"season"`
	TeamID          string   `json:"teamId,omitempty"`
	GamesPlayed     int      `json:"gamesPlayed"`
	AvgContribution float64  `json:"avgContribution"`
	Awards          []string `json:"awards,omitempty"`
}

// Card is a draftable league unit. Attack through SynergyScore are the six
// base attributes; Power and Grade are derived and must be recomputed after
// any attribute change.
type Card struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Archetype       Archetype    `json:"archetype"`
	AttackType      AttackType   `json:"attackType"`
	Attack          int          `json:"attack"`
	Defense         int          `json:"defense"`
	Speed           int          `json:"speed"`
	Tempo           int          `json:"tempo"`
	AttackTypeScore int          `json:"attackTypeScore"`
	SynergyScore    int          `json:"synergyScore"`
	Power           float64      `json:"power"`
	Grade           Grade        `json:"grade"`
	Cost            float64      `json:"cost"`
	BaseCost        float64      `json:"baseCost"`
	Age             int          `json:"age"`
	Lifespan        int          `json:"lifespan"`
	Retired         bool         `json:"retired"`
	Fatigue         float64      `json:"fatigue"`
	GamesPlayed     int          `json:"gamesPlayed"`
	ContributionSum float64      `json:"contributionSum"`
	AvgContribution float64      `json:"avgContribution"`
	TimesDrafted    int          `json:"timesDrafted"`
	SeasonsActive   int          `json:"seasonsActive"`
	PickRate        float64      `json:"pickRate"`
	Awards          []string     `json:"awards,omitempty"`
	HOFProbability  float64      `json:"hofProbability"`
	History         []SeasonLine `json:"history,omitempty"`
}

// PowerScore computes the canonical weighted power from the six attributes.
func PowerScore(attack, defense, speed, tempo, attackType, synergy int) float64 {
	return weightAttack*float64(attack) +
		weightDefense*float64(defense) +
		weightSpeed*float64(speed) +
		weightTempo*float64(tempo) +
		weightAttackType*float64(attackType) +
		weightSynergy*float64(synergy)
}

// PowerDeltaFor converts an attribute bump into its power-score effect.
// "all" spreads the bump across the four core attributes.
func PowerDeltaFor(stat string, amount float64) float64 {
	switch stat {
	case "attack":
		return weightAttack * amount
	case "defense":
		return weightDefense * amount
	case "speed":
		return weightSpeed * amount
	case "tempo":
		return weightTempo * amount
	case "all":
		return (weightAttack + weightDefense + weightSpeed + weightTempo) * amount
	default:
		return 0
	}
}

// GradeFor buckets a power score into a letter grade.
func GradeFor(power float64) Grade {
	switch {
	case power >= 90:
		return GradeS
	case power >= 80:
		return GradeA
	case power >= 70:
		return GradeB
	case power >= 60:
		return GradeC
	default:
		return GradeD
	}
}

// BaseCostFor prices a card from its power, floored at CostFloor.
func BaseCostFor(power float64) float64 {
	return Round2(math.Max(CostFloor, (power-50)/12))
}

// Round2 rounds to two decimals; all cost arithmetic goes through it.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RecomputeDerived refreshes Power and Grade after attribute changes.
func (c *Card) RecomputeDerived() {
	c.Power = PowerScore(c.Attack, c.Defense, c.Speed, c.Tempo, c.AttackTypeScore, c.SynergyScore)
	c.Grade = GradeFor(c.Power)
}

// FatigueFactor is the effectiveness multiplier at the card's current fatigue.
func (c *Card) FatigueFactor() float64 {
	return FatigueFloorFraction + FatigueFloorFraction*(c.Fatigue/FatigueMax)
}

// ApplyFatigue adds delta (negative for decay) and clamps to bounds.
func (c *Card) ApplyFatigue(delta float64) {
	c.Fatigue = math.Max(FatigueMin, math.Min(FatigueMax, c.Fatigue+delta))
}

// RecordContribution accumulates one game's contribution and refreshes the average.
func (c *Card) RecordContribution(v float64) {
	c.GamesPlayed++
	c.ContributionSum += v
	c.AvgContribution = c.ContributionSum / float64(c.GamesPlayed)
}

// Validate reports the first structural problem with the card.
func (c *Card) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("card id is empty")
	}
	if c.Name == "" {
		return fmt.Errorf("card %s: name is empty", c.ID)
	}
	if !validArchetype(c.Archetype) {
		return fmt.Errorf("card %s: unknown archetype %q", c.ID, c.Archetype)
	}
	if !validAttackType(c.AttackType) {
		return fmt.Errorf("card %s: unknown attack type %q", c.ID, c.AttackType)
	}
	for _, attr := range []struct {
		name  string
		value int
	}{
		{"attack", c.Attack},
		{"defense", c.Defense},
		{"speed", c.Speed},
		{"tempo", c.Tempo},
		{"attackTypeScore", c.AttackTypeScore},
		{"synergyScore", c.SynergyScore},
	} {
		if attr.value < AttrMin || attr.value > AttrMax {
			return fmt.Errorf("card %s: %s %d out of [%d, %d]", c.ID, attr.name, attr.value, AttrMin, AttrMax)
		}
	}
	if c.Cost < CostFloor {
		return fmt.Errorf("card %s: cost %.2f below floor %.2f", c.ID, c.Cost, CostFloor)
	}
	if c.Lifespan < LifespanMin || c.Lifespan > LifespanMax {
		return fmt.Errorf("card %s: lifespan %d out of [%d, %d]", c.ID, c.Lifespan, LifespanMin, LifespanMax)
	}
	if c.Age < 0 {
		return fmt.Errorf("card %s: negative age %d", c.ID, c.Age)
	}
	if c.Fatigue < FatigueMin || c.Fatigue > FatigueMax {
		return fmt.Errorf("card %s: fatigue %.1f out of bounds", c.ID, c.Fatigue)
	}
	return nil
}

func validArchetype(a Archetype) bool {
	for _, known := range Archetypes {
		if a == known {
			return true
		}
	}
	return false
}

func validAttackType(a AttackType) bool {
	for _, known := range AttackTypes {
		if a == known {
			return true
		}
	}
	return false
}
