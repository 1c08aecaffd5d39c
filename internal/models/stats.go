package models

import "time"

// ModelStat is the materialized all-time performance row for one model.
// It is recomputed from the predictions table whenever a new result is
// recorded, never incrementally updated, so it is always re-derivable
// from predictions with known correctness.
type ModelStat struct {
	ID                 int       `db:"id"`
	ModelName          string    `db:"model_name"`
	TotalPredictions   int       `db:"total_predictions"`
	CorrectPredictions int       `db:"correct_predictions"`
	WinRate            float64   `db:"win_rate"`
	AvgConfidence      float64   `db:"avg_confidence"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// WeeklyModelStats holds one model's scored predictions inside a
// reporting window, including the high-confidence split.
type WeeklyModelStats struct {
	ModelName          string  `db:"model_name"`
	TotalPredictions   int     `db:"total_predictions"`
	CorrectPredictions int     `db:"correct_predictions"`
	WinRate            float64 `db:"win_rate"`
	AvgConfidence      float64 `db:"avg_confidence"`
	HighConfCorrect    int     `db:"high_conf_correct"`
	HighConfTotal      int     `db:"high_conf_total"`
}

// StreakType is the direction of a model's current run
type StreakType string

const (
	StreakWin  StreakType = "W"
	StreakLoss StreakType = "L"
	StreakNone StreakType = ""
)

// Streak is the trailing run of identical-outcome predictions for a
// model, derived from its full chronological history. Never persisted.
type Streak struct {
	Type  StreakType `json:"type"`
	Count int        `json:"count"`
}

// Indicator is a qualitative flag on a weekly report card
type Indicator string

const (
	IndicatorHot    Indicator = "fire"  // win streak >= 3
	IndicatorCold   Indicator = "ice"   // loss streak >= 3
	IndicatorLeader Indicator = "crown" // best weekly win rate
)

// LeaderboardEntry is one ranked row of the all-time leaderboard
type LeaderboardEntry struct {
	Rank               int     `json:"rank"`
	ModelName          string  `json:"model_name"`
	WinRate            float64 `json:"win_rate"`
	Record             string  `json:"record"`
	TotalPredictions   int     `json:"total_predictions"`
	CorrectPredictions int     `json:"correct_predictions"`
}

// ReportCard is one model's weekly summary
type ReportCard struct {
	ModelName         string      `json:"model_name"`
	WeeklyRecord      string      `json:"weekly_record"`
	WeeklyWinRate     float64     `json:"weekly_win_rate"`
	WeeklyPredictions int         `json:"weekly_predictions"`
	AvgConfidence     float64     `json:"avg_confidence"`
	Streak            Streak      `json:"streak"`
	Indicators        []Indicator `json:"indicators"`
	// Accuracy restricted to high-confidence picks; nil when the model
	// made none that week
	HighConfAccuracy *float64 `json:"high_conf_accuracy"`
}

// HasIndicator reports whether the card carries the given indicator
func (rc *ReportCard) HasIndicator(ind Indicator) bool {
	for _, i := range rc.Indicators {
		if i == ind {
			return true
		}
	}
	return false
}

// WeeklyReport is the ephemeral aggregate produced once per week:
// reporting window, all-time leaderboard and one report card per model
// in the configured roster.
type WeeklyReport struct {
	WeekStart          time.Time          `json:"week_start"`
	WeekEnd            time.Time          `json:"week_end"`
	TotalGames         int                `json:"total_games"`
	OverallLeaderboard []LeaderboardEntry `json:"overall_leaderboard"`
	WeeklyReportCards  []ReportCard       `json:"weekly_report_cards"`
}
