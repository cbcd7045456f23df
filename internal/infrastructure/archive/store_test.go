package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkadito/clash-league/internal/domain/league"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "archive.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadSeason(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := &league.SeasonArchive{
		Season:       1,
		ChampionID:   "TEAM-AAAAAA",
		ChampionName: "Gilded Wolves",
		Standings: []league.StandingsRow{
			{TeamID: "TEAM-AAAAAA", Name: "Gilded Wolves", Wins: 24, Losses: 6, Streak: 5},
		},
		Awards: league.AwardSet{MVP: "CARD-AAAAAA"},
		Series: []league.SeriesResult{{Round: 3, BestOf: 7, HighWins: 4, LowWins: 2, WinnerID: "TEAM-AAAAAA"}},
	}
	require.NoError(t, store.SaveSeason(ctx, a))

	got, found, err := store.LoadSeason(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, a.ChampionName, got.ChampionName)
	assert.Equal(t, a.Standings, got.Standings)
	assert.Equal(t, a.Awards, got.Awards)
	assert.Equal(t, a.Series, got.Series)
}

func TestSaveSeasonUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSeason(ctx, &league.SeasonArchive{Season: 1, ChampionID: "TEAM-X", ChampionName: "First"}))
	require.NoError(t, store.SaveSeason(ctx, &league.SeasonArchive{Season: 1, ChampionID: "TEAM-Y", ChampionName: "Second"}))

	got, found, err := store.LoadSeason(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Second", got.ChampionName)

	seasons, err := store.Seasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, seasons)
}

func TestLoadSeasonMissing(t *testing.T) {
	store := openTestStore(t)

	_, found, err := store.LoadSeason(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSeasonsOrdered(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, season := range []int{3, 1, 2} {
		require.NoError(t, store.SaveSeason(ctx, &league.SeasonArchive{Season: season, ChampionID: "T", ChampionName: "T"}))
	}
	seasons, err := store.Seasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seasons)
}
