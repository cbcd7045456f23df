package league

// ShopItemKind distinguishes how a purchased item is applied.
type ShopItemKind string

const (
	ItemKindCardBoost ShopItemKind = "CARD_BOOST"
	ItemKindTeamBoost ShopItemKind = "TEAM_BOOST"
	ItemKindStamina   ShopItemKind = "STAMINA_RESET"
)

// ShopItem is one purchasable catalog entry. Card and team boosts add Amount
// to Stat for Games games; stamina items reset the target's fatigue at once.
type ShopItem struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Kind   ShopItemKind `json:"kind"`
	Stat   string       `json:"stat,omitempty"`
	Amount float64      `json:"amount,omitempty"`
	Games  int          `json:"games,omitempty"`
	Cost   float64      `json:"cost"`
}

// DefaultCatalog is the fixed shop offering for a season.
func DefaultCatalog() []ShopItem {
	return []ShopItem{
		{ID: "ITEM-WHETSTONE", Name: "War Whetstone", Kind: ItemKindCardBoost, Stat: "attack", Amount: 4, Games: 3, Cost: 1.0},
		{ID: "ITEM-BULWARK", Name: "Bulwark Plating", Kind: ItemKindCardBoost, Stat: "defense", Amount: 4, Games: 3, Cost: 1.0},
		{ID: "ITEM-WINDRUNE", Name: "Windstride Rune", Kind: ItemKindCardBoost, Stat: "speed", Amount: 4, Games: 3, Cost: 1.0},
		{ID: "ITEM-DRUMS", Name: "Drums of Haste", Kind: ItemKindCardBoost, Stat: "tempo", Amount: 5, Games: 2, Cost: 0.8},
		{ID: "ITEM-BANNER", Name: "Rallying Banner", Kind: ItemKindTeamBoost, Stat: "all", Amount: 2, Games: 2, Cost: 1.5},
		{ID: "ITEM-ELIXIR", Name: "Restoring Elixir", Kind: ItemKindStamina, Cost: 0.7},
	}
}

// CatalogItem finds an item by ID in the given catalog.
func CatalogItem(catalog []ShopItem, id string) (ShopItem, bool) {
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}
