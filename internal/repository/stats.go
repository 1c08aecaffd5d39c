package repository

import (
	"context"
	"fmt"
	"time"

	"bookiebench/pipeline/internal/models"
	"bookiebench/pipeline/internal/stats"
)

// defaultHighConfThreshold is the confidence cutoff for the
// high-confidence accuracy split when none is configured
const defaultHighConfThreshold = 80

// StatsRepository serves the aggregate queries behind the weekly report
type StatsRepository struct {
	db *Database

	// HighConfThreshold overrides the high-confidence cutoff; zero
	// means use the default
	HighConfThreshold int
}

func (r *StatsRepository) highConf() int {
	if r.HighConfThreshold > 0 {
		return r.HighConfThreshold
	}
	return defaultHighConfThreshold
}

// ModelStats retrieves the all-time materialized stats for every model,
// ordered by win rate descending with alphabetical tie-break
func (r *StatsRepository) ModelStats(ctx context.Context) ([]models.ModelStat, error) {
	query := `
		SELECT id, model_name, total_predictions, correct_predictions, win_rate, avg_confidence, updated_at
		FROM model_stats
		ORDER BY win_rate DESC, model_name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query model stats: %w", err)
	}
	defer rows.Close()

	var list []models.ModelStat
	for rows.Next() {
		var s models.ModelStat
		if err := rows.Scan(
			&s.ID, &s.ModelName, &s.TotalPredictions, &s.CorrectPredictions,
			&s.WinRate, &s.AvgConfidence, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan model stats: %w", err)
		}
		list = append(list, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating model stats: %w", err)
	}

	return list, nil
}

// WeeklyStats aggregates scored predictions for games dated inside
// [start, end] inclusive, per model, including the high-confidence
// split. Models with no scored predictions in the window are absent.
func (r *StatsRepository) WeeklyStats(ctx context.Context, start, end time.Time) ([]models.WeeklyModelStats, error) {
	query := `
		SELECT
			p.model_name,
			COUNT(*) AS total_predictions,
			COUNT(*) FILTER (WHERE p.is_correct) AS correct_predictions,
			ROUND(100.0 * COUNT(*) FILTER (WHERE p.is_correct) / COUNT(*), 1) AS win_rate,
			ROUND(AVG(p.confidence)::numeric, 1) AS avg_confidence,
			COUNT(*) FILTER (WHERE p.is_correct AND p.confidence >= $3) AS high_conf_correct,
			COUNT(*) FILTER (WHERE p.confidence >= $3) AS high_conf_total
		FROM predictions p
		JOIN games g ON p.game_id = g.game_id
		WHERE g.game_date BETWEEN $1 AND $2 AND p.is_correct IS NOT NULL
		GROUP BY p.model_name
		ORDER BY win_rate DESC, p.model_name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, start, end, r.highConf())
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly stats: %w", err)
	}
	defer rows.Close()

	var list []models.WeeklyModelStats
	for rows.Next() {
		var s models.WeeklyModelStats
		if err := rows.Scan(
			&s.ModelName, &s.TotalPredictions, &s.CorrectPredictions,
			&s.WinRate, &s.AvgConfidence, &s.HighConfCorrect, &s.HighConfTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan weekly stats: %w", err)
		}
		list = append(list, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly stats: %w", err)
	}

	return list, nil
}

// CorrectnessHistory returns a model's scored outcomes in
// chronological order (oldest first)
func (r *StatsRepository) CorrectnessHistory(ctx context.Context, modelName string) ([]bool, error) {
	query := `
		SELECT is_correct
		FROM predictions
		WHERE model_name = $1 AND is_correct IS NOT NULL
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to query correctness history: %w", err)
	}
	defer rows.Close()

	var outcomes []bool
	for rows.Next() {
		var correct bool
		if err := rows.Scan(&correct); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		outcomes = append(outcomes, correct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outcomes: %w", err)
	}

	return outcomes, nil
}

// ModelStreak computes a model's current streak over its full history
func (r *StatsRepository) ModelStreak(ctx context.Context, modelName string) (models.Streak, error) {
	outcomes, err := r.CorrectnessHistory(ctx, modelName)
	if err != nil {
		return models.Streak{}, err
	}

	return stats.ComputeStreak(outcomes), nil
}

// AllModelStreaks computes the current streak for every model with at
// least one scored prediction
func (r *StatsRepository) AllModelStreaks(ctx context.Context) (map[string]models.Streak, error) {
	query := `
		SELECT model_name, is_correct
		FROM predictions
		WHERE is_correct IS NOT NULL
		ORDER BY model_name, created_at ASC, id ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query streak histories: %w", err)
	}
	defer rows.Close()

	histories := make(map[string][]bool)
	for rows.Next() {
		var name string
		var correct bool
		if err := rows.Scan(&name, &correct); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		histories[name] = append(histories[name], correct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating streak histories: %w", err)
	}

	streaks := make(map[string]models.Streak, len(histories))
	for name, outcomes := range histories {
		streaks[name] = stats.ComputeStreak(outcomes)
	}

	return streaks, nil
}

// TotalGamesInRange counts distinct completed games inside the window
func (r *StatsRepository) TotalGamesInRange(ctx context.Context, start, end time.Time) (int, error) {
	return r.db.Games.CountCompletedInRange(ctx, start, end)
}
