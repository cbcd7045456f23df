package card

// Archetype synergy values on a 0-10 scale. The table is symmetric;
// same-archetype pairs score low to penalize redundant lineups.
var synergyTable = map[Archetype]map[Archetype]float64{
	ArchetypeTank: {
		ArchetypeTank:     1,
		ArchetypeAssassin: 4,
		ArchetypeMage:     6,
		ArchetypeSupport:  8,
		ArchetypeRanger:   6,
		ArchetypeBruiser:  5,
	},
	ArchetypeAssassin: {
		ArchetypeAssassin: 2,
		ArchetypeMage:     5,
		ArchetypeSupport:  6,
		ArchetypeRanger:   4,
		ArchetypeBruiser:  5,
	},
	ArchetypeMage: {
		ArchetypeMage:    2,
		ArchetypeSupport: 7,
		ArchetypeRanger:  5,
		ArchetypeBruiser: 4,
	},
	ArchetypeSupport: {
		ArchetypeSupport: 1,
		ArchetypeRanger:  7,
		ArchetypeBruiser: 6,
	},
	ArchetypeRanger: {
		ArchetypeRanger:  2,
		ArchetypeBruiser: 5,
	},
	ArchetypeBruiser: {
		ArchetypeBruiser: 2,
	},
}

// PairSynergy returns the synergy value for two archetypes, in either order.
func PairSynergy(a, b Archetype) float64 {
	if row, ok := synergyTable[a]; ok {
		if v, ok := row[b]; ok {
			return v
		}
	}
	if row, ok := synergyTable[b]; ok {
		if v, ok := row[a]; ok {
			return v
		}
	}
	return 0
}

// ChemistryMultiplier converts a lineup's mean pairwise synergy into a
// multiplicative bonus: 1 + mean/100. A lineup with fewer than two cards
// has no pairs and multiplies by exactly 1.
func ChemistryMultiplier(archetypes []Archetype) float64 {
	if len(archetypes) < 2 {
		return 1
	}
	var sum float64
	var pairs int
	for i := 0; i < len(archetypes); i++ {
		for j := i + 1; j < len(archetypes); j++ {
			sum += PairSynergy(archetypes[i], archetypes[j])
			pairs++
		}
	}
	return 1 + (sum/float64(pairs))/100
}
