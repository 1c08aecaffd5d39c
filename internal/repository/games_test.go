package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bookiebench/pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame(id string, date time.Time) *models.Game {
	return &models.Game{
		GameID:     id,
		GameDate:   date,
		HomeTeam:   "Boston Celtics",
		AwayTeam:   "Los Angeles Lakers",
		HomeAbbrev: "BOS",
		AwayAbbrev: "LAL",
	}
}

func mustInsertGame(t *testing.T, ctx context.Context, db *Database, game *models.Game) {
	t.Helper()
	require.NoError(t, db.Games.Upsert(ctx, game))
}

func mustInsertPrediction(t *testing.T, ctx context.Context, db *Database, gameID, model, pick string, confidence int) {
	t.Helper()
	require.NoError(t, db.Predictions.Upsert(ctx, &models.Prediction{
		GameID:          gameID,
		ModelName:       model,
		PredictedWinner: pick,
		Confidence:      confidence,
	}))
}

func TestGameRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	game := testGame("401705001", date)

	err := db.Games.Upsert(ctx, game)
	require.NoError(t, err, "Should insert game")
	assert.NotZero(t, game.ID)

	retrieved, err := db.Games.GetByGameID(ctx, "401705001")
	require.NoError(t, err, "Should retrieve game")
	assert.Equal(t, "Boston Celtics", retrieved.HomeTeam)
	assert.Equal(t, "LAL", retrieved.AwayAbbrev)
	assert.False(t, retrieved.HasOdds())
	assert.False(t, retrieved.IsFinal())

	// Re-upserting with odds refreshes the line only
	game.VegasFavorite.String = "Boston Celtics"
	game.VegasFavorite.Valid = true
	game.VegasSpread.Float64 = 5.5
	game.VegasSpread.Valid = true
	require.NoError(t, db.Games.Upsert(ctx, game))

	updated, err := db.Games.GetByGameID(ctx, "401705001")
	require.NoError(t, err)
	assert.True(t, updated.HasOdds())
	assert.Equal(t, "Boston Celtics", updated.VegasFavorite.String)
	assert.Equal(t, 5.5, updated.VegasSpread.Float64)
}

func TestGameRepository_UpdateOdds(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	mustInsertGame(t, ctx, db, testGame("401705010", date))

	require.NoError(t, db.Games.UpdateOdds(ctx, "401705010", "Los Angeles Lakers", 3.0))

	game, err := db.Games.GetByGameID(ctx, "401705010")
	require.NoError(t, err)
	assert.Equal(t, "Los Angeles Lakers", game.VegasFavorite.String)
	assert.Equal(t, 3.0, game.VegasSpread.Float64)

	err = db.Games.UpdateOdds(ctx, "no-such-game", "X", 1.0)
	assert.Error(t, err, "Unknown game should not update silently")
}

func TestGameRepository_RecordResult(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	mustInsertGame(t, ctx, db, testGame("401705020", date))

	mustInsertPrediction(t, ctx, db, "401705020", "ChatGPT", "Boston Celtics", 70)
	mustInsertPrediction(t, ctx, db, "401705020", "Claude", "Los Angeles Lakers", 60)

	err := db.Games.RecordResult(ctx, &models.GameResult{
		GameID:    "401705020",
		Winner:    "Boston Celtics",
		HomeScore: 112,
		AwayScore: 104,
	})
	require.NoError(t, err)

	// Game carries the final score
	game, err := db.Games.GetByGameID(ctx, "401705020")
	require.NoError(t, err)
	assert.True(t, game.IsFinal())
	assert.Equal(t, "Boston Celtics", game.Winner.String)
	assert.Equal(t, int32(112), game.HomeScore.Int32)
	assert.Equal(t, int32(104), game.AwayScore.Int32)

	// Predictions were scored
	preds, err := db.Predictions.GetByGame(ctx, "401705020")
	require.NoError(t, err)
	require.Len(t, preds, 2)
	for _, p := range preds {
		require.True(t, p.IsCorrect.Valid, "%s should be scored", p.ModelName)
		if p.ModelName == "ChatGPT" {
			assert.True(t, p.IsCorrect.Bool)
		} else {
			assert.False(t, p.IsCorrect.Bool)
		}
	}

	// Model stats were recomputed in the same transaction
	stats, err := db.Stats.ModelStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "ChatGPT", stats[0].ModelName)
	assert.Equal(t, 1, stats[0].TotalPredictions)
	assert.Equal(t, 1, stats[0].CorrectPredictions)
	assert.Equal(t, 100.0, stats[0].WinRate)

	assert.Equal(t, "Claude", stats[1].ModelName)
	assert.Equal(t, 0, stats[1].CorrectPredictions)
	assert.Equal(t, 0.0, stats[1].WinRate)
}

func TestGameRepository_GetNeedingResults(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	mustInsertGame(t, ctx, db, testGame("401705030", date))
	mustInsertGame(t, ctx, db, testGame("401705031", date))

	require.NoError(t, db.Games.RecordResult(ctx, &models.GameResult{
		GameID: "401705030", Winner: "Boston Celtics", HomeScore: 100, AwayScore: 90,
	}))

	pending, err := db.Games.GetNeedingResults(ctx, date)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "401705031", pending[0].GameID)
}

func TestGameRepository_CountCompletedInRange(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC)

	inWindow := testGame("401705040", start.AddDate(0, 0, 2))
	outside := testGame("401705041", end.AddDate(0, 0, 3))
	unfinished := testGame("401705042", start.AddDate(0, 0, 3))

	mustInsertGame(t, ctx, db, inWindow)
	mustInsertGame(t, ctx, db, outside)
	mustInsertGame(t, ctx, db, unfinished)

	// Multiple predictions must not inflate the game count
	mustInsertPrediction(t, ctx, db, inWindow.GameID, "ChatGPT", "Boston Celtics", 70)
	mustInsertPrediction(t, ctx, db, inWindow.GameID, "Claude", "Boston Celtics", 65)

	for _, id := range []string{"401705040", "401705041"} {
		require.NoError(t, db.Games.RecordResult(ctx, &models.GameResult{
			GameID: id, Winner: "Boston Celtics", HomeScore: 101, AwayScore: 99,
		}))
	}

	count, err := db.Games.CountCompletedInRange(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGameRepository_GetInterestingMatchups(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	split := testGame("401705050", date)
	unanimous := testGame("401705051", date)
	mustInsertGame(t, ctx, db, split)
	mustInsertGame(t, ctx, db, unanimous)

	mustInsertPrediction(t, ctx, db, split.GameID, "ChatGPT", "Boston Celtics", 70)
	mustInsertPrediction(t, ctx, db, split.GameID, "Claude", "Los Angeles Lakers", 60)
	mustInsertPrediction(t, ctx, db, unanimous.GameID, "ChatGPT", "Boston Celtics", 70)
	mustInsertPrediction(t, ctx, db, unanimous.GameID, "Claude", "Boston Celtics", 65)

	matchups, err := db.Games.GetInterestingMatchups(ctx, date, 1)
	require.NoError(t, err)
	require.Len(t, matchups, 1)
	assert.Equal(t, split.GameID, matchups[0].GameID, "disputed game ranks first")
}

func TestGameRepository_GetByDate(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		mustInsertGame(t, ctx, db, testGame(fmt.Sprintf("40170506%d", i), date))
	}
	mustInsertGame(t, ctx, db, testGame("401705070", date.AddDate(0, 0, 1)))

	games, err := db.Games.GetByDate(ctx, date)
	require.NoError(t, err)
	assert.Len(t, games, 3)
}
