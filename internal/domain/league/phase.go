// Package league holds the shared league state: the season phase machine,
// schedule, rivalries, results, postseason bracket, archives and shop catalog.
package league

import "fmt"

// Phase is the season lifecycle stage. Transitions only move forward:
// PRESEASON -> REGULAR_SEASON -> POSTSEASON -> OFFSEASON -> PRESEASON.
type Phase string

const (
	PhasePreseason     Phase = "PRESEASON"
	PhaseRegularSeason Phase = "REGULAR_SEASON"
	PhasePostseason    Phase = "POSTSEASON"
	PhaseOffseason     Phase = "OFFSEASON"
)

// Next returns the phase that follows p in the season cycle.
func (p Phase) Next() (Phase, error) {
	switch p {
	case PhasePreseason:
		return PhaseRegularSeason, nil
	case PhaseRegularSeason:
		return PhasePostseason, nil
	case PhasePostseason:
		return PhaseOffseason, nil
	case PhaseOffseason:
		return PhasePreseason, nil
	default:
		return "", fmt.Errorf("unknown phase %q", p)
	}
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	switch p {
	case PhasePreseason, PhaseRegularSeason, PhasePostseason, PhaseOffseason:
		return true
	default:
		return false
	}
}
