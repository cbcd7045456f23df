package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/arkadito/clash-league/internal/domain/card"
	"github.com/arkadito/clash-league/internal/domain/league"
	"github.com/arkadito/clash-league/internal/domain/team"
)

// tradePowerWindow bounds how lopsided an offered swap may be.
const tradePowerWindow = 8.0

// tradeWorkers sizes the offer-scan pool.
const tradeWorkers = 8

// TradeOffer is one viable swap surfaced by the offer scan.
type TradeOffer struct {
	TeamID    string  `json:"teamId"`
	TeamName  string  `json:"teamName"`
	CardID    string  `json:"cardId"`
	CardName  string  `json:"cardName"`
	CardPower float64 `json:"cardPower"`
	PowerDiff float64 `json:"powerDiff"`
}

// TradeOffers scans every other roster for cards within the power window
// whose swap keeps both teams under the cap. The per-team scans fan out on a
// worker pool; the final list is deterministically ordered.
func (e *Engine) TradeOffers(ctx context.Context, teamID, cardID string) ([]TradeOffer, error) {
	_, span := startUsecaseSpan(ctx, "engine.TradeOffers")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != league.PhaseRegularSeason {
		return nil, fmt.Errorf("%w: trading is open during %s only", ErrPhaseOrder, league.PhaseRegularSeason)
	}
	mine := e.state.TeamByID(teamID)
	if mine == nil {
		return nil, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	if !mine.HasCard(cardID) {
		return nil, fmt.Errorf("%w: card %s is not on %s's roster", ErrInvalidInput, cardID, mine.Name)
	}
	offered := e.state.CardByID(cardID)
	if offered == nil {
		return nil, fmt.Errorf("%w: card %s", ErrNotFound, cardID)
	}

	pool, err := ants.NewPool(tradeWorkers)
	if err != nil {
		return nil, fmt.Errorf("create trade scan pool: %w", err)
	}
	defer pool.Release()

	perTeam := make([][]TradeOffer, len(e.state.Teams))
	var wg sync.WaitGroup
	for i, other := range e.state.Teams {
		if other.ID == teamID {
			continue
		}
		i, other := i, other
		wg.Add(1)
		task := func() {
			defer wg.Done()
			perTeam[i] = e.scanTeamForOffers(mine, offered, other)
		}
		if submitErr := pool.Submit(task); submitErr != nil {
			task()
		}
	}
	wg.Wait()

	var offers []TradeOffer
	for _, chunk := range perTeam {
		offers = append(offers, chunk...)
	}
	sort.Slice(offers, func(i, j int) bool {
		if offers[i].TeamID != offers[j].TeamID {
			return offers[i].TeamID < offers[j].TeamID
		}
		return offers[i].CardID < offers[j].CardID
	})
	return offers, nil
}

// scanTeamForOffers is read-only over state; safe to run concurrently while
// the engine lock is held by the caller.
func (e *Engine) scanTeamForOffers(mine *team.Team, offered *card.Card, other *team.Team) []TradeOffer {
	var out []TradeOffer
	for _, theirID := range other.RosterIDs() {
		theirs := e.state.CardByID(theirID)
		if theirs == nil || theirs.Retired {
			continue
		}
		diff := theirs.Power - offered.Power
		if diff > tradePowerWindow || diff < -tradePowerWindow {
			continue
		}
		if mine.CostSpent-offered.Cost+theirs.Cost > e.state.Cap {
			continue
		}
		if other.CostSpent-theirs.Cost+offered.Cost > e.state.Cap {
			continue
		}
		out = append(out, TradeOffer{
			TeamID:    other.ID,
			TeamName:  other.Name,
			CardID:    theirs.ID,
			CardName:  theirs.Name,
			CardPower: theirs.Power,
			PowerDiff: diff,
		})
	}
	return out
}

// ExecuteTrade swaps one card for another between two teams. Each team may
// initiate a single trade per season; a rejected trade leaves both rosters
// untouched.
func (e *Engine) ExecuteTrade(ctx context.Context, teamID, giveCardID, otherTeamID, receiveCardID string) error {
	_, span := startUsecaseSpan(ctx, "engine.ExecuteTrade")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != league.PhaseRegularSeason {
		return fmt.Errorf("%w: trading is open during %s only", ErrPhaseOrder, league.PhaseRegularSeason)
	}
	if teamID == otherTeamID {
		return fmt.Errorf("%w: a team cannot trade with itself", ErrInvalidInput)
	}

	mine := e.state.TeamByID(teamID)
	if mine == nil {
		return fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	other := e.state.TeamByID(otherTeamID)
	if other == nil {
		return fmt.Errorf("%w: team %s", ErrNotFound, otherTeamID)
	}
	if mine.TradeUsed {
		return fmt.Errorf("%w: %s already traded this season", ErrTradeLimit, mine.Name)
	}
	if !mine.HasCard(giveCardID) {
		return fmt.Errorf("%w: card %s is not on %s's roster", ErrInvalidInput, giveCardID, mine.Name)
	}
	if !other.HasCard(receiveCardID) {
		return fmt.Errorf("%w: card %s is not on %s's roster", ErrInvalidInput, receiveCardID, other.Name)
	}

	give := e.state.CardByID(giveCardID)
	receive := e.state.CardByID(receiveCardID)
	if give == nil || receive == nil {
		return fmt.Errorf("%w: traded card missing from pool", ErrNotFound)
	}

	myNewCost := card.Round2(mine.CostSpent - give.Cost + receive.Cost)
	otherNewCost := card.Round2(other.CostSpent - receive.Cost + give.Cost)
	if myNewCost > e.state.Cap {
		return fmt.Errorf("%w: trade puts %s at %.2f against cap %.2f",
			ErrCapExceeded, mine.Name, myNewCost, e.state.Cap)
	}
	if otherNewCost > e.state.Cap {
		return fmt.Errorf("%w: trade puts %s at %.2f against cap %.2f",
			ErrCapExceeded, other.Name, otherNewCost, e.state.Cap)
	}

	mine.ReplaceCard(giveCardID, receiveCardID)
	other.ReplaceCard(receiveCardID, giveCardID)
	mine.CostSpent = myNewCost
	other.CostSpent = otherNewCost
	mine.TradeUsed = true

	e.state.LogTransaction(fmt.Sprintf("season %d trade: %s sends %s to %s for %s",
		e.state.Season, mine.Name, give.Name, other.Name, receive.Name))

	e.logger.InfoContext(ctx, "trade executed",
		"team", mine.ID,
		"gave", give.ID,
		"received", receive.ID,
	)
	return nil
}
