package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/state", handler.GetState)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/season", handler.GetSeasonStatus)
	mux.HandleFunc("GET /v1/season/complete", handler.GetSeasonComplete)

	mux.HandleFunc("POST /v1/preseason/run", handler.RunPreseason)
	mux.HandleFunc("POST /v1/calendar/regenerate", handler.RegenerateCalendar)
	mux.HandleFunc("POST /v1/days/next", handler.AdvanceDay)

	mux.HandleFunc("GET /v1/playoffs", handler.GetPlayoffs)
	mux.HandleFunc("POST /v1/playoffs/seed", handler.SeedPlayoffs)
	mux.HandleFunc("POST /v1/playoffs/run", handler.RunPlayoffs)

	mux.HandleFunc("POST /v1/offseason/run", handler.RunOffseason)

	mux.HandleFunc("GET /v1/shop/catalog", handler.GetShopCatalog)
	mux.HandleFunc("POST /v1/shop/purchase", handler.PurchaseBoost)

	mux.HandleFunc("POST /v1/trades/offers", handler.ListTradeOffers)
	mux.HandleFunc("POST /v1/trades/execute", handler.ExecuteTrade)

	mux.HandleFunc("POST /v1/snapshot/save", handler.SaveSnapshot)
	mux.HandleFunc("POST /v1/snapshot/load", handler.LoadSnapshot)

	mux.HandleFunc("GET /v1/archive", handler.ListArchivedSeasons)
	mux.HandleFunc("GET /v1/archive/{season}", handler.GetArchivedSeason)
}
