package usecase

import (
	"fmt"
	"sort"

	"github.com/arkadito/clash-league/internal/domain/card"
	"github.com/arkadito/clash-league/internal/domain/team"
)

// draftRounds covers the three starter slots plus the backup slot.
const draftRounds = team.StarterSlots + 1

// backupValue is the free-agency heuristic for bench signings: durability
// over raw power.
func backupValue(c *card.Card) float64 {
	return 0.6*float64(c.Defense) + 0.4*float64(c.Tempo)
}

// runDraft performs the snake draft and the backup free-agency pass.
// Rosters must be empty when it runs.
func (e *Engine) runDraft() {
	available := make(map[string]bool)
	for _, id := range e.state.FreeAgentIDs() {
		available[id] = true
	}

	for round := 1; round <= draftRounds; round++ {
		order := make([]*team.Team, len(e.state.Teams))
		copy(order, e.state.Teams)
		if round%2 == 0 {
			for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
				order[i], order[j] = order[j], order[i]
			}
		}

		backupRound := round == draftRounds
		picksAfter := draftRounds - round

		for _, t := range order {
			picked := e.pickCard(t, available, backupRound, picksAfter)
			if picked == nil {
				e.logger.Warn("draft slot left empty",
					"team", t.ID,
					"round", round,
				)
				continue
			}
			e.assignPick(t, picked, backupRound, round)
			delete(available, picked.ID)
		}
	}

	e.signMissingBackups(available)

	for _, t := range e.state.Teams {
		t.ShopPointsLeft = card.Round2(e.state.Cap - t.CostSpent)
	}
}

// pickCard selects the team's pick for this round. The affordability reserve
// keeps a cost floor's worth of room for every remaining pick so the draft
// cannot strand a team against the cap; the cheapest-card fallback ignores
// the reserve but never the cap itself.
func (e *Engine) pickCard(t *team.Team, available map[string]bool, backupRound bool, picksAfter int) *card.Card {
	candidates := make([]*card.Card, 0, len(available))
	for id := range available {
		candidates = append(candidates, e.state.Cards[id])
	}
	if len(candidates) == 0 {
		return nil
	}

	if backupRound {
		sort.Slice(candidates, func(i, j int) bool {
			vi, vj := backupValue(candidates[i]), backupValue(candidates[j])
			if vi != vj {
				return vi > vj
			}
			if candidates[i].Cost != candidates[j].Cost {
				return candidates[i].Cost < candidates[j].Cost
			}
			return candidates[i].ID < candidates[j].ID
		})
	} else {
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].Power != candidates[j].Power {
				return candidates[i].Power > candidates[j].Power
			}
			if candidates[i].Cost != candidates[j].Cost {
				return candidates[i].Cost < candidates[j].Cost
			}
			return candidates[i].ID < candidates[j].ID
		})
	}

	reserve := card.CostFloor * float64(picksAfter)
	for _, c := range candidates {
		if t.CostSpent+c.Cost+reserve <= e.state.Cap {
			return c
		}
	}

	// Nothing fits with the reserve: fall back to the cheapest card that
	// still honors the cap.
	cheapest := make([]*card.Card, len(candidates))
	copy(cheapest, candidates)
	sort.Slice(cheapest, func(i, j int) bool {
		if cheapest[i].Cost != cheapest[j].Cost {
			return cheapest[i].Cost < cheapest[j].Cost
		}
		if cheapest[i].Power != cheapest[j].Power {
			return cheapest[i].Power > cheapest[j].Power
		}
		return cheapest[i].ID < cheapest[j].ID
	})
	for _, c := range cheapest {
		if t.CostSpent+c.Cost <= e.state.Cap {
			e.logger.Warn("draft fallback pick",
				"team", t.ID,
				"card", c.ID,
				"cost", c.Cost,
			)
			return c
		}
	}
	return nil
}

func (e *Engine) assignPick(t *team.Team, c *card.Card, backup bool, round int) {
	if backup {
		t.BackupID = c.ID
	} else {
		t.Starters = append(t.Starters, c.ID)
	}
	t.CostSpent = card.Round2(t.CostSpent + c.Cost)
	c.TimesDrafted++
	e.state.LogTransaction(fmt.Sprintf(
		"season %d draft r%d: %s picks %s (%s) for %.2f",
		e.state.Season, round, t.Name, c.Name, c.ID, c.Cost,
	))
}

// signMissingBackups runs the post-draft free-agency pass for teams whose
// backup slot stayed empty.
func (e *Engine) signMissingBackups(available map[string]bool) {
	for _, t := range e.state.Teams {
		if t.BackupID != "" {
			continue
		}

		var best *card.Card
		for _, id := range sortedKeys(available) {
			c := e.state.Cards[id]
			if !t.CanAfford(e.state.Cap, c.Cost) {
				continue
			}
			if best == nil || backupValue(c) > backupValue(best) ||
				(backupValue(c) == backupValue(best) && c.ID < best.ID) {
				best = c
			}
		}
		if best == nil {
			continue
		}

		t.BackupID = best.ID
		t.CostSpent = card.Round2(t.CostSpent + best.Cost)
		best.TimesDrafted++
		delete(available, best.ID)
		e.state.LogTransaction(fmt.Sprintf(
			"season %d free agency: %s signs backup %s (%s) for %.2f",
			e.state.Season, t.Name, best.Name, best.ID, best.Cost,
		))
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
