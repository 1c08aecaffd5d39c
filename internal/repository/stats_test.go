package repository

import (
	"testing"
	"time"

	"bookiebench/pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository_WeeklyStats(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	db.Stats.HighConfThreshold = 80

	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC)

	inWindow := testGame("401705200", start.AddDate(0, 0, 2))
	outside := testGame("401705201", end.AddDate(0, 0, 2))
	mustInsertGame(t, ctx, db, inWindow)
	mustInsertGame(t, ctx, db, outside)

	mustInsertPrediction(t, ctx, db, inWindow.GameID, "ChatGPT", "Boston Celtics", 85)
	mustInsertPrediction(t, ctx, db, inWindow.GameID, "Claude", "Los Angeles Lakers", 60)
	// Outside the window, must not leak in
	mustInsertPrediction(t, ctx, db, outside.GameID, "ChatGPT", "Los Angeles Lakers", 90)

	for _, id := range []string{inWindow.GameID, outside.GameID} {
		require.NoError(t, db.Games.RecordResult(ctx, &models.GameResult{
			GameID: id, Winner: "Boston Celtics", HomeScore: 110, AwayScore: 98,
		}))
	}

	weekly, err := db.Stats.WeeklyStats(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, weekly, 2)

	// Sorted by win rate with the leader first
	assert.Equal(t, "ChatGPT", weekly[0].ModelName)
	assert.Equal(t, 1, weekly[0].TotalPredictions)
	assert.Equal(t, 1, weekly[0].CorrectPredictions)
	assert.Equal(t, 100.0, weekly[0].WinRate)
	assert.Equal(t, 85.0, weekly[0].AvgConfidence)
	assert.Equal(t, 1, weekly[0].HighConfTotal)
	assert.Equal(t, 1, weekly[0].HighConfCorrect)

	assert.Equal(t, "Claude", weekly[1].ModelName)
	assert.Equal(t, 0, weekly[1].CorrectPredictions)
	assert.Equal(t, 0.0, weekly[1].WinRate)
	assert.Zero(t, weekly[1].HighConfTotal, "60 confidence is below the cutoff")
}

func TestStatsRepository_WeeklyStatsExcludesUnscored(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC)

	game := testGame("401705210", start.AddDate(0, 0, 1))
	mustInsertGame(t, ctx, db, game)
	mustInsertPrediction(t, ctx, db, game.GameID, "Gemini", "Boston Celtics", 70)

	weekly, err := db.Stats.WeeklyStats(ctx, start, end)
	require.NoError(t, err)
	assert.Empty(t, weekly, "unscored predictions never count")
}

func TestStatsRepository_ModelStatsTieBreak(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	game := testGame("401705220", date)
	mustInsertGame(t, ctx, db, game)

	// Both models perfect, so ordering falls back to the name
	mustInsertPrediction(t, ctx, db, game.GameID, "Grok", "Boston Celtics", 75)
	mustInsertPrediction(t, ctx, db, game.GameID, "Claude", "Boston Celtics", 65)

	require.NoError(t, db.Games.RecordResult(ctx, &models.GameResult{
		GameID: game.GameID, Winner: "Boston Celtics", HomeScore: 120, AwayScore: 111,
	}))

	stats, err := db.Stats.ModelStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Claude", stats[0].ModelName)
	assert.Equal(t, "Grok", stats[1].ModelName)
}

func TestStatsRepository_CorrectnessHistory(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	// Loss, then two wins, in insertion order
	picks := []struct {
		gameID string
		pick   string
	}{
		{"401705230", "Los Angeles Lakers"},
		{"401705231", "Boston Celtics"},
		{"401705232", "Boston Celtics"},
	}

	for i, p := range picks {
		mustInsertGame(t, ctx, db, testGame(p.gameID, date.AddDate(0, 0, i)))
		mustInsertPrediction(t, ctx, db, p.gameID, "Gemini", p.pick, 70)
		require.NoError(t, db.Games.RecordResult(ctx, &models.GameResult{
			GameID: p.gameID, Winner: "Boston Celtics", HomeScore: 105, AwayScore: 95,
		}))
	}

	history, err := db.Stats.CorrectnessHistory(ctx, "Gemini")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true}, history)

	streak, err := db.Stats.ModelStreak(ctx, "Gemini")
	require.NoError(t, err)
	assert.Equal(t, models.StreakWin, streak.Type)
	assert.Equal(t, 2, streak.Count)
}

func TestStatsRepository_ModelStreakEmpty(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	streak, err := db.Stats.ModelStreak(ctx, "Gemini")
	require.NoError(t, err)
	assert.Equal(t, models.StreakNone, streak.Type)
	assert.Zero(t, streak.Count)
}

func TestStatsRepository_AllModelStreaks(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	game := testGame("401705240", date)
	mustInsertGame(t, ctx, db, game)

	mustInsertPrediction(t, ctx, db, game.GameID, "ChatGPT", "Boston Celtics", 70)
	mustInsertPrediction(t, ctx, db, game.GameID, "Claude", "Los Angeles Lakers", 60)

	require.NoError(t, db.Games.RecordResult(ctx, &models.GameResult{
		GameID: game.GameID, Winner: "Boston Celtics", HomeScore: 100, AwayScore: 90,
	}))

	streaks, err := db.Stats.AllModelStreaks(ctx)
	require.NoError(t, err)
	require.Len(t, streaks, 2)
	assert.Equal(t, models.Streak{Type: models.StreakWin, Count: 1}, streaks["ChatGPT"])
	assert.Equal(t, models.Streak{Type: models.StreakLoss, Count: 1}, streaks["Claude"])
}
