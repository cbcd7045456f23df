// Package team defines franchises: rosters, cap arithmetic, streaks and
// active shop boosts.
package team

import "fmt"

// StarterSlots is the number of starting cards a fully drafted team fields.
const StarterSlots = 3

// Boost is an active shop effect. TargetCardID is empty for team-wide
// boosts. GamesLeft decrements after each game the team plays; the boost
// drops when it reaches zero.
type Boost struct {
	ItemID       string  `json:"itemId"`
	Stat         string  `json:"stat"`
	Amount       float64 `json:"amount"`
	TargetCardID string  `json:"targetCardId,omitempty"`
	GamesLeft    int     `json:"gamesLeft"`
}

// Team is a league franchise. Starters holds up to StarterSlots card IDs in
// draft order; BackupID is the optional fourth roster slot.
type Team struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Emblem         string   `json:"emblem"`
	Color          string   `json:"color"`
	ManagerStyle   string   `json:"managerStyle"`
	Starters       []string `json:"starters"`
	BackupID       string   `json:"backupId,omitempty"`
	Wins           int      `json:"wins"`
	Losses         int      `json:"losses"`
	Streak         int      `json:"streak"`
	CostSpent      float64  `json:"costSpent"`
	ShopPointsLeft float64  `json:"shopPointsLeft"`
	Boosts         []Boost  `json:"boosts,omitempty"`
	TradeUsed      bool     `json:"tradeUsed"`
	Titles         int      `json:"titles"`
}

// RosterIDs returns starters followed by the backup, skipping empty slots.
func (t *Team) RosterIDs() []string {
	out := make([]string, 0, len(t.Starters)+1)
	out = append(out, t.Starters...)
	if t.BackupID != "" {
		out = append(out, t.BackupID)
	}
	return out
}

// HasCard reports whether the card occupies any roster slot.
func (t *Team) HasCard(cardID string) bool {
	for _, id := range t.Starters {
		if id == cardID {
			return true
		}
	}
	return t.BackupID == cardID
}

// ReplaceCard swaps oldID for newID wherever it sits on the roster.
func (t *Team) ReplaceCard(oldID, newID string) bool {
	for i, id := range t.Starters {
		if id == oldID {
			t.Starters[i] = newID
			return true
		}
	}
	if t.BackupID == oldID {
		t.BackupID = newID
		return true
	}
	return false
}

// CanAfford reports whether adding cost keeps the team at or under the cap.
func (t *Team) CanAfford(cap, cost float64) bool {
	return t.CostSpent+cost <= cap
}

// RecordWin applies the win and extends or restarts the streak.
func (t *Team) RecordWin() {
	t.Wins++
	if t.Streak >= 0 {
		t.Streak++
	} else {
		t.Streak = 1
	}
}

// RecordLoss applies the loss and extends or restarts the streak.
func (t *Team) RecordLoss() {
	t.Losses++
	if t.Streak <= 0 {
		t.Streak--
	} else {
		t.Streak = -1
	}
}

// Validate reports the first structural problem with the team.
func (t *Team) Validate(cap float64) error {
	if t.ID == "" {
		return fmt.Errorf("team id is empty")
	}
	if t.Name == "" {
		return fmt.Errorf("team %s: name is empty", t.ID)
	}
	if len(t.Starters) > StarterSlots {
		return fmt.Errorf("team %s: %d starters exceeds %d slots", t.ID, len(t.Starters), StarterSlots)
	}
	seen := make(map[string]bool, len(t.Starters)+1)
	for _, id := range t.RosterIDs() {
		if id == "" {
			return fmt.Errorf("team %s: empty card id on roster", t.ID)
		}
		if seen[id] {
			return fmt.Errorf("team %s: card %s rostered twice", t.ID, id)
		}
		seen[id] = true
	}
	if t.CostSpent > cap {
		return fmt.Errorf("team %s: cost spent %.2f exceeds cap %.2f", t.ID, t.CostSpent, cap)
	}
	if t.Wins < 0 || t.Losses < 0 {
		return fmt.Errorf("team %s: negative record %d-%d", t.ID, t.Wins, t.Losses)
	}
	return nil
}
