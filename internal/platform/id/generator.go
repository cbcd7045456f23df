// Package id creates short prefixed identifiers for cards and teams.
package id

import (
	"strings"

	"github.com/arkadito/clash-league/internal/platform/entropy"
)

const (
	alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	idLength = 6
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID(prefix string) string
}

// SeededGenerator draws identifiers from the engine's deterministic source so
// that world generation replays identically from the same seed.
type SeededGenerator struct {
	rng *entropy.Source
}

func NewSeededGenerator(rng *entropy.Source) *SeededGenerator {
	return &SeededGenerator{rng: rng}
}

func (g *SeededGenerator) NewID(prefix string) string {
	var sb strings.Builder
	sb.Grow(len(prefix) + 1 + idLength)
	sb.WriteString(prefix)
	sb.WriteByte('-')
	for i := 0; i < idLength; i++ {
		sb.WriteByte(alphabet[g.rng.IntN(len(alphabet))])
	}
	return sb.String()
}
