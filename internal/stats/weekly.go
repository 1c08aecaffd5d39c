package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"bookiebench/pipeline/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultStreakThreshold is the streak length at which the hot and
// cold indicators fire
const DefaultStreakThreshold = 3

// Store is the persistence surface the aggregator reads from.
// *repository.StatsRepository satisfies it.
type Store interface {
	// ModelStats returns all-time stats sorted by win rate descending,
	// model name ascending
	ModelStats(ctx context.Context) ([]models.ModelStat, error)
	// WeeklyStats returns per-model scored-prediction aggregates for
	// games dated inside [start, end], same ordering
	WeeklyStats(ctx context.Context, start, end time.Time) ([]models.WeeklyModelStats, error)
	// AllModelStreaks returns each model's current streak over its full
	// history
	AllModelStreaks(ctx context.Context) (map[string]models.Streak, error)
	// TotalGamesInRange counts distinct completed games in the window
	TotalGamesInRange(ctx context.Context, start, end time.Time) (int, error)
}

// Aggregator builds the weekly report from persisted stats
type Aggregator struct {
	store           Store
	roster          []string
	streakThreshold int
}

// NewAggregator wires an aggregator for a fixed model roster. A
// non-positive threshold falls back to the default.
func NewAggregator(store Store, roster []string, streakThreshold int) *Aggregator {
	if streakThreshold <= 0 {
		streakThreshold = DefaultStreakThreshold
	}
	return &Aggregator{
		store:           store,
		roster:          roster,
		streakThreshold: streakThreshold,
	}
}

// BuildReport assembles the report for the most recently completed
// Monday to Sunday week relative to ref. A model missing from the
// weekly stats still gets a card with a zero record and no indicators.
func (a *Aggregator) BuildReport(ctx context.Context, ref time.Time) (*models.WeeklyReport, error) {
	start, end := WeekWindow(ref)

	overall, err := a.store.ModelStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load overall stats: %w", err)
	}

	weekly, err := a.store.WeeklyStats(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly stats: %w", err)
	}

	streaks, err := a.store.AllModelStreaks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load streaks: %w", err)
	}

	totalGames, err := a.store.TotalGamesInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count games: %w", err)
	}

	report := &models.WeeklyReport{
		WeekStart:          start,
		WeekEnd:            end,
		TotalGames:         totalGames,
		OverallLeaderboard: BuildLeaderboard(overall),
	}

	weeklyByModel := make(map[string]models.WeeklyModelStats, len(weekly))
	for _, w := range weekly {
		weeklyByModel[w.ModelName] = w
	}

	// Weekly stats arrive sorted by win rate descending with
	// alphabetical tie-break, so the leader is the first row
	leader := ""
	if len(weekly) > 0 {
		leader = weekly[0].ModelName
	}

	for _, name := range a.roster {
		card := buildReportCard(name, weeklyByModel[name], streaks[name])
		card.Indicators = ComputeIndicators(card, name == leader, a.streakThreshold)
		report.WeeklyReportCards = append(report.WeeklyReportCards, card)
	}

	log.Info().
		Time("week_start", start).
		Time("week_end", end).
		Int("total_games", totalGames).
		Str("weekly_leader", leader).
		Msg("Weekly report built")

	return report, nil
}

// BuildLeaderboard ranks all-time stats by their input order, which the
// store guarantees is win rate descending
func BuildLeaderboard(overall []models.ModelStat) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(overall))
	for i, s := range overall {
		entries = append(entries, models.LeaderboardEntry{
			Rank:               i + 1,
			ModelName:          s.ModelName,
			WinRate:            s.WinRate,
			Record:             fmt.Sprintf("%d-%d", s.CorrectPredictions, s.TotalPredictions-s.CorrectPredictions),
			TotalPredictions:   s.TotalPredictions,
			CorrectPredictions: s.CorrectPredictions,
		})
	}
	return entries
}

func buildReportCard(name string, weekly models.WeeklyModelStats, streak models.Streak) models.ReportCard {
	card := models.ReportCard{
		ModelName:         name,
		WeeklyRecord:      fmt.Sprintf("%d-%d", weekly.CorrectPredictions, weekly.TotalPredictions-weekly.CorrectPredictions),
		WeeklyWinRate:     weekly.WinRate,
		WeeklyPredictions: weekly.TotalPredictions,
		AvgConfidence:     weekly.AvgConfidence,
		Streak:            streak,
	}

	if weekly.HighConfTotal > 0 {
		acc := math.Round(1000*float64(weekly.HighConfCorrect)/float64(weekly.HighConfTotal)) / 10
		card.HighConfAccuracy = &acc
	}

	return card
}

// ComputeIndicators derives a card's qualitative flags. Hot and cold
// are mutually exclusive by construction. A model with no scored
// predictions in the window gets none, whatever its all-time streak.
func ComputeIndicators(card models.ReportCard, isWeeklyLeader bool, streakThreshold int) []models.Indicator {
	if card.WeeklyPredictions == 0 {
		return nil
	}

	var indicators []models.Indicator

	if card.Streak.Count >= streakThreshold {
		switch card.Streak.Type {
		case models.StreakWin:
			indicators = append(indicators, models.IndicatorHot)
		case models.StreakLoss:
			indicators = append(indicators, models.IndicatorCold)
		}
	}

	if isWeeklyLeader {
		indicators = append(indicators, models.IndicatorLeader)
	}

	return indicators
}
