// Package httpapi exposes the league engine over HTTP. Responses use the
// Google JSON envelope; engine sentinel errors map onto canonical statuses.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/arkadito/clash-league/internal/domain/league"
	"github.com/arkadito/clash-league/internal/infrastructure/archive"
	"github.com/arkadito/clash-league/internal/infrastructure/snapshot"
	"github.com/arkadito/clash-league/internal/platform/logging"
	"github.com/arkadito/clash-league/internal/usecase"
)

type Handler struct {
	engine    *usecase.Engine
	snapshots *snapshot.FileStore
	archive   *archive.Store // nil when no archive database is configured
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(
	engine *usecase.Engine,
	snapshots *snapshot.FileStore,
	archiveStore *archive.Store,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Handler{
		engine:    engine,
		snapshots: snapshots,
		archive:   archiveStore,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(payload); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetState returns the full world snapshot, RNG state included.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetState")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.engine.Snapshot())
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.engine.Standings())
}

type seasonStatusDTO struct {
	Season   int          `json:"season"`
	Day      int          `json:"day"`
	Phase    league.Phase `json:"phase"`
	Complete bool         `json:"complete"`
}

func (h *Handler) GetSeasonStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonStatus")
	defer span.End()

	snap := h.engine.Snapshot()
	writeSuccess(ctx, w, http.StatusOK, seasonStatusDTO{
		Season:   snap.Season,
		Day:      snap.Day,
		Phase:    snap.Phase,
		Complete: h.engine.SeasonComplete(),
	})
}

func (h *Handler) GetSeasonComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonComplete")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"complete": h.engine.SeasonComplete()})
}

func (h *Handler) RunPreseason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPreseason")
	defer span.End()

	if err := h.engine.RunPreseason(ctx); err != nil {
		h.logger.WarnContext(ctx, "preseason failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	snap := h.engine.Snapshot()
	writeSuccess(ctx, w, http.StatusOK, seasonStatusDTO{
		Season: snap.Season,
		Day:    snap.Day,
		Phase:  snap.Phase,
	})
}

func (h *Handler) RegenerateCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegenerateCalendar")
	defer span.End()

	if err := h.engine.RegenerateCalendar(ctx); err != nil {
		h.logger.WarnContext(ctx, "calendar regeneration failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "regenerated"})
}

func (h *Handler) AdvanceDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceDay")
	defer span.End()

	results, err := h.engine.AdvanceDay(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "advance day failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, results)
}

func (h *Handler) GetPlayoffs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayoffs")
	defer span.End()

	bracket, ok := h.engine.Playoffs()
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: the postseason bracket is not seeded", usecase.ErrNotFound))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracket)
}

func (h *Handler) SeedPlayoffs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeedPlayoffs")
	defer span.End()

	bracket, err := h.engine.SeedPlayoffs(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "seed playoffs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracket)
}

func (h *Handler) RunPlayoffs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPlayoffs")
	defer span.End()

	bracket, err := h.engine.RunPlayoffs(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run playoffs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracket)
}

// RunOffseason runs the full offseason pipeline and, when an archive database
// is configured, persists the sealed season to it.
func (h *Handler) RunOffseason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunOffseason")
	defer span.End()

	if err := h.engine.RunOffseason(ctx); err != nil {
		h.logger.WarnContext(ctx, "offseason failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	sealed, ok := h.engine.LatestArchive()
	if ok && h.archive != nil {
		if err := h.archive.SaveSeason(ctx, &sealed); err != nil {
			h.logger.ErrorContext(ctx, "archive persistence failed", "season", sealed.Season, "error", err)
			writeError(ctx, w, err)
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, sealed)
}

func (h *Handler) GetShopCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetShopCatalog")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.engine.Catalog())
}

type purchaseBoostRequest struct {
	TeamID       string `json:"teamId" validate:"required"`
	ItemID       string `json:"itemId" validate:"required"`
	TargetCardID string `json:"targetCardId"`
}

func (h *Handler) PurchaseBoost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PurchaseBoost")
	defer span.End()

	var req purchaseBoostRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.engine.PurchaseBoost(ctx, req.TeamID, req.ItemID, req.TargetCardID); err != nil {
		h.logger.WarnContext(ctx, "purchase failed", "team_id", req.TeamID, "item_id", req.ItemID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "purchased"})
}

type tradeOffersRequest struct {
	TeamID string `json:"teamId" validate:"required"`
	CardID string `json:"cardId" validate:"required"`
}

func (h *Handler) ListTradeOffers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTradeOffers")
	defer span.End()

	var req tradeOffersRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	offers, err := h.engine.TradeOffers(ctx, req.TeamID, req.CardID)
	if err != nil {
		h.logger.WarnContext(ctx, "trade offer scan failed", "team_id", req.TeamID, "card_id", req.CardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, offers)
}

type executeTradeRequest struct {
	TeamID        string `json:"teamId" validate:"required"`
	GiveCardID    string `json:"giveCardId" validate:"required"`
	OtherTeamID   string `json:"otherTeamId" validate:"required"`
	ReceiveCardID string `json:"receiveCardId" validate:"required"`
}

func (h *Handler) ExecuteTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExecuteTrade")
	defer span.End()

	var req executeTradeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.engine.ExecuteTrade(ctx, req.TeamID, req.GiveCardID, req.OtherTeamID, req.ReceiveCardID); err != nil {
		h.logger.WarnContext(ctx, "trade failed", "team_id", req.TeamID, "other_team_id", req.OtherTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "traded"})
}

type snapshotStatusDTO struct {
	Path   string       `json:"path"`
	Season int          `json:"season"`
	Day    int          `json:"day"`
	Phase  league.Phase `json:"phase"`
}

func (h *Handler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveSnapshot")
	defer span.End()

	snap := h.engine.Snapshot()
	if err := h.snapshots.Save(ctx, snap); err != nil {
		h.logger.ErrorContext(ctx, "snapshot save failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotStatusDTO{
		Path:   h.snapshots.Path(),
		Season: snap.Season,
		Day:    snap.Day,
		Phase:  snap.Phase,
	})
}

func (h *Handler) LoadSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LoadSnapshot")
	defer span.End()

	if !h.snapshots.Exists() {
		writeError(ctx, w, fmt.Errorf("%w: no snapshot at %s", usecase.ErrNotFound, h.snapshots.Path()))
		return
	}

	snap, err := h.snapshots.Load(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "snapshot load failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.engine.RestoreSnapshot(snap); err != nil {
		h.logger.ErrorContext(ctx, "snapshot restore failed", "error", err)
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotStatusDTO{
		Path:   h.snapshots.Path(),
		Season: snap.Season,
		Day:    snap.Day,
		Phase:  snap.Phase,
	})
}

func (h *Handler) ListArchivedSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListArchivedSeasons")
	defer span.End()

	if h.archive != nil {
		seasons, err := h.archive.Seasons(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "list archived seasons failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, seasons)
		return
	}

	snap := h.engine.Snapshot()
	seasons := make([]int, 0, len(snap.Archive))
	for season := range snap.Archive {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	writeSuccess(ctx, w, http.StatusOK, seasons)
}

func (h *Handler) GetArchivedSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetArchivedSeason")
	defer span.End()

	season, err := strconv.Atoi(r.PathValue("season"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: season must be a number", usecase.ErrInvalidInput))
		return
	}

	if sealed, ok := h.engine.ArchivedSeason(season); ok {
		writeSuccess(ctx, w, http.StatusOK, sealed)
		return
	}

	if h.archive != nil {
		sealed, found, err := h.archive.LoadSeason(ctx, season)
		if err != nil {
			h.logger.ErrorContext(ctx, "load archived season failed", "season", season, "error", err)
			writeError(ctx, w, err)
			return
		}
		if found {
			writeSuccess(ctx, w, http.StatusOK, sealed)
			return
		}
	}

	writeError(ctx, w, fmt.Errorf("%w: season %d is not archived", usecase.ErrNotFound, season))
}
