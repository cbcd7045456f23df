package httpapi

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/arkadito/clash-league/internal/infrastructure/snapshot"
	"github.com/arkadito/clash-league/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	engine := usecase.NewEngine(usecase.Settings{
		TeamCount:    20,
		GamesPerTeam: 4,
		MaxTeamCost:  20.0,
		Noise:        0,
		Seed:         42,
	}, nil)
	snapshots := snapshot.NewFileStore(filepath.Join(t.TempDir(), "snap.json"), nil)
	handler := NewHandler(engine, snapshots, nil, nil)
	return NewRouter(handler, nil, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("%s %s: unmarshal envelope: %v", method, path, err)
	}
	return rec, envelope
}

func errorStatus(t *testing.T, envelope map[string]any) string {
	t.Helper()
	errorObj, ok := envelope["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", envelope)
	}
	status, _ := errorObj["status"].(string)
	return status
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec, envelope := doRequest(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", envelope)
	}
}

func TestPreseasonThenAdvanceDay(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/preseason/run", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("preseason: expected 200, got %d (%v)", rec.Code, envelope)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["phase"] != "REGULAR_SEASON" {
		t.Fatalf("expected REGULAR_SEASON after preseason, got %v", data["phase"])
	}

	// Running the preseason twice is a phase violation.
	rec, envelope = doRequest(t, router, http.MethodPost, "/v1/preseason/run", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("second preseason: expected 409, got %d", rec.Code)
	}
	if got := errorStatus(t, envelope); got != "FAILED_PRECONDITION" {
		t.Fatalf("expected FAILED_PRECONDITION, got %s", got)
	}

	rec, envelope = doRequest(t, router, http.MethodPost, "/v1/days/next", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("advance day: expected 200, got %d", rec.Code)
	}
	results, _ := envelope["data"].([]any)
	if len(results) == 0 {
		t.Fatalf("expected day-one match results, got none")
	}

	rec, envelope = doRequest(t, router, http.MethodGet, "/v1/standings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("standings: expected 200, got %d", rec.Code)
	}
	rows, _ := envelope["data"].([]any)
	if len(rows) != 20 {
		t.Fatalf("expected 20 standings rows, got %d", len(rows))
	}
}

func TestSeasonStatus(t *testing.T) {
	router := newTestRouter(t)
	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/season", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["phase"] != "PRESEASON" {
		t.Fatalf("expected PRESEASON on a fresh world, got %v", data["phase"])
	}
	if season, _ := data["season"].(float64); season != 1 {
		t.Fatalf("expected season 1, got %v", data["season"])
	}
}

func TestShopCatalogAndValidation(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/shop/catalog", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog: expected 200, got %d", rec.Code)
	}
	items, _ := envelope["data"].([]any)
	if len(items) != 6 {
		t.Fatalf("expected 6 catalog items, got %d", len(items))
	}

	// Missing itemId fails validation before reaching the engine.
	rec, envelope = doRequest(t, router, http.MethodPost, "/v1/shop/purchase", `{"teamId":"TEAM-X"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := errorStatus(t, envelope); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT, got %s", got)
	}
}

func TestGetPlayoffsBeforeSeeding(t *testing.T) {
	router := newTestRouter(t)
	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/playoffs", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := errorStatus(t, envelope); got != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", got)
	}
}

func TestTradeOffersOutsideRegularSeason(t *testing.T) {
	router := newTestRouter(t)
	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/trades/offers",
		`{"teamId":"TEAM-X","cardId":"CARD-X"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if got := errorStatus(t, envelope); got != "FAILED_PRECONDITION" {
		t.Fatalf("expected FAILED_PRECONDITION, got %s", got)
	}
}

func TestSnapshotSaveAndLoadRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	if rec, _ := doRequest(t, router, http.MethodPost, "/v1/preseason/run", ""); rec.Code != http.StatusOK {
		t.Fatalf("preseason: expected 200, got %d", rec.Code)
	}
	if rec, _ := doRequest(t, router, http.MethodPost, "/v1/snapshot/save", ""); rec.Code != http.StatusOK {
		t.Fatalf("save: expected 200, got %d", rec.Code)
	}
	if rec, _ := doRequest(t, router, http.MethodPost, "/v1/days/next", ""); rec.Code != http.StatusOK {
		t.Fatalf("advance: expected 200, got %d", rec.Code)
	}

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/snapshot/load", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("load: expected 200, got %d (%v)", rec.Code, envelope)
	}
	data, _ := envelope["data"].(map[string]any)
	if day, _ := data["day"].(float64); day != 1 {
		t.Fatalf("expected restored day 1, got %v", data["day"])
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	router := newTestRouter(t)
	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/snapshot/load", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := errorStatus(t, envelope); got != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", got)
	}
}

func TestListArchivedSeasonsEmpty(t *testing.T) {
	router := newTestRouter(t)
	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/archive", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seasons, _ := envelope["data"].([]any); len(seasons) != 0 {
		t.Fatalf("expected no archived seasons, got %v", seasons)
	}
}
