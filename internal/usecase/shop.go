package usecase

import (
	"context"
	"fmt"

	"github.com/arkadito/clash-league/internal/domain/card"
	"github.com/arkadito/clash-league/internal/domain/league"
	"github.com/arkadito/clash-league/internal/domain/team"
)

// Catalog returns the season's shop offering.
func (e *Engine) Catalog() []league.ShopItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]league.ShopItem, len(e.state.Catalog))
	copy(out, e.state.Catalog)
	return out
}

// PurchaseBoost buys a catalog item with shop points. Purchases are applied
// whole or rejected whole; a failed validation leaves the team untouched.
func (e *Engine) PurchaseBoost(ctx context.Context, teamID, itemID, targetCardID string) error {
	_, span := startUsecaseSpan(ctx, "engine.PurchaseBoost")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != league.PhaseRegularSeason {
		return fmt.Errorf("%w: the shop is open during %s only", ErrPhaseOrder, league.PhaseRegularSeason)
	}

	t := e.state.TeamByID(teamID)
	if t == nil {
		return fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	item, ok := league.CatalogItem(e.state.Catalog, itemID)
	if !ok {
		return fmt.Errorf("%w: shop item %s", ErrNotFound, itemID)
	}
	if t.ShopPointsLeft < item.Cost {
		return fmt.Errorf("%w: %s has %.2f points, item costs %.2f",
			ErrInsufficientPoints, t.Name, t.ShopPointsLeft, item.Cost)
	}

	var target *card.Card
	if item.Kind == league.ItemKindCardBoost || item.Kind == league.ItemKindStamina {
		if targetCardID == "" {
			return fmt.Errorf("%w: item %s requires a target card", ErrInvalidInput, item.ID)
		}
		if !t.HasCard(targetCardID) {
			return fmt.Errorf("%w: card %s is not on %s's roster", ErrInvalidInput, targetCardID, t.Name)
		}
		target = e.state.CardByID(targetCardID)
		if target == nil {
			return fmt.Errorf("%w: card %s", ErrNotFound, targetCardID)
		}
	}

	switch item.Kind {
	case league.ItemKindStamina:
		target.Fatigue = card.FatigueMax
	case league.ItemKindCardBoost:
		t.Boosts = append(t.Boosts, team.Boost{
			ItemID:       item.ID,
			Stat:         item.Stat,
			Amount:       item.Amount,
			TargetCardID: target.ID,
			GamesLeft:    item.Games,
		})
	case league.ItemKindTeamBoost:
		t.Boosts = append(t.Boosts, team.Boost{
			ItemID:    item.ID,
			Stat:      item.Stat,
			Amount:    item.Amount,
			GamesLeft: item.Games,
		})
	default:
		return fmt.Errorf("%w: unknown item kind %q", ErrInvalidInput, item.Kind)
	}

	t.ShopPointsLeft = card.Round2(t.ShopPointsLeft - item.Cost)
	e.state.LogTransaction(fmt.Sprintf("season %d shop: %s buys %s for %.2f",
		e.state.Season, t.Name, item.Name, item.Cost))

	e.logger.InfoContext(ctx, "boost purchased",
		"team", t.ID,
		"item", item.ID,
		"pointsLeft", t.ShopPointsLeft,
	)
	return nil
}
