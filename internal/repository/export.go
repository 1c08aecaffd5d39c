package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PredictionExport is one scored-or-pending prediction joined with its
// game, shaped for the spreadsheet sync
type PredictionExport struct {
	GameDate        time.Time
	AwayTeam        string
	HomeTeam        string
	VegasFavorite   sql.NullString
	VegasSpread     sql.NullFloat64
	Winner          sql.NullString
	HomeScore       sql.NullInt32
	AwayScore       sql.NullInt32
	ModelName       string
	PredictedWinner string
	Confidence      int
	Reasoning       sql.NullString
	IsCorrect       sql.NullBool
}

// UpcomingExport is one game without a result plus its collected picks
type UpcomingExport struct {
	GameDate      time.Time
	AwayTeam      string
	HomeTeam      string
	VegasFavorite sql.NullString
	VegasSpread   sql.NullFloat64
	Predictions   sql.NullString
}

// ExportPredictions returns every prediction joined with its game,
// newest game first
func (db *Database) ExportPredictions(ctx context.Context) ([]PredictionExport, error) {
	query := `
		SELECT
			g.game_date, g.away_team, g.home_team, g.vegas_favorite, g.vegas_spread,
			g.winner, g.home_score, g.away_score,
			p.model_name, p.predicted_winner, p.confidence, p.reasoning, p.is_correct
		FROM predictions p
		JOIN games g ON p.game_id = g.game_id
		ORDER BY g.game_date DESC, g.game_id, p.model_name
	`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query prediction export: %w", err)
	}
	defer rows.Close()

	var exports []PredictionExport
	for rows.Next() {
		var e PredictionExport
		if err := rows.Scan(
			&e.GameDate, &e.AwayTeam, &e.HomeTeam, &e.VegasFavorite, &e.VegasSpread,
			&e.Winner, &e.HomeScore, &e.AwayScore,
			&e.ModelName, &e.PredictedWinner, &e.Confidence, &e.Reasoning, &e.IsCorrect,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prediction export: %w", err)
		}
		exports = append(exports, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prediction export: %w", err)
	}

	return exports, nil
}

// ExportUpcoming returns games without a recorded result, each with a
// "Model: Pick (NN%)" summary of collected predictions
func (db *Database) ExportUpcoming(ctx context.Context) ([]UpcomingExport, error) {
	query := `
		SELECT
			g.game_date, g.away_team, g.home_team, g.vegas_favorite, g.vegas_spread,
			STRING_AGG(p.model_name || ': ' || p.predicted_winner || ' (' || p.confidence || '%)', ' | ' ORDER BY p.model_name)
		FROM games g
		LEFT JOIN predictions p ON g.game_id = p.game_id
		WHERE g.winner IS NULL
		GROUP BY g.id
		ORDER BY g.game_date
	`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming export: %w", err)
	}
	defer rows.Close()

	var exports []UpcomingExport
	for rows.Next() {
		var e UpcomingExport
		if err := rows.Scan(
			&e.GameDate, &e.AwayTeam, &e.HomeTeam, &e.VegasFavorite, &e.VegasSpread, &e.Predictions,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upcoming export: %w", err)
		}
		exports = append(exports, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating upcoming export: %w", err)
	}

	return exports, nil
}
