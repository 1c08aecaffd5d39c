package pipeline

import (
	"database/sql"
	"testing"
	"time"

	"bookiebench/pipeline/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFallbackWeeklyScript(t *testing.T) {
	report := &models.WeeklyReport{
		WeekStart: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		WeekEnd:   time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC),
		OverallLeaderboard: []models.LeaderboardEntry{
			{Rank: 1, ModelName: "ChatGPT", WinRate: 70.0, Record: "7-3"},
			{Rank: 2, ModelName: "Claude", WinRate: 60.0, Record: "6-4"},
		},
		WeeklyReportCards: []models.ReportCard{
			{
				ModelName:  "ChatGPT",
				Streak:     models.Streak{Type: models.StreakWin, Count: 4},
				Indicators: []models.Indicator{models.IndicatorHot, models.IndicatorLeader},
			},
		},
	}

	script := FallbackWeeklyScript(report)

	assert.Contains(t, script, "ChatGPT with a 70.0% win rate")
	assert.Contains(t, script, "Claude comes in second at 60.0%")
	assert.Contains(t, script, "ChatGPT is on a 4-game win streak!")
	assert.Contains(t, script, "Who takes the crown next week?")
}

func TestFallbackDailyScript(t *testing.T) {
	game := &models.Game{
		HomeTeam: "Boston Celtics",
		AwayTeam: "Los Angeles Lakers",
	}
	preds := []*models.Prediction{
		{ModelName: "ChatGPT", PredictedWinner: "Boston Celtics", Confidence: 71},
		{ModelName: "Claude", PredictedWinner: "Los Angeles Lakers", Confidence: 55,
			Reasoning: sql.NullString{String: "Momentum.", Valid: true}},
	}

	script := FallbackDailyScript(game, preds)

	assert.Contains(t, script, "Los Angeles Lakers takes on Boston Celtics")
	assert.Contains(t, script, "ChatGPT picks Boston Celtics at 71% confidence")
	assert.Contains(t, script, "Claude picks Los Angeles Lakers at 55% confidence")
}
