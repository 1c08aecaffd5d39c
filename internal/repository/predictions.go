package repository

import (
	"context"
	"fmt"

	"bookiebench/pipeline/internal/models"

	"github.com/rs/zerolog/log"
)

// PredictionRepository handles prediction database operations
type PredictionRepository struct {
	db *Database
}

// Upsert inserts a prediction or replaces the pick for the same
// (game, model) pair. The correctness flag is left alone so a re-run
// before tip-off cannot unscore an already scored prediction.
func (r *PredictionRepository) Upsert(ctx context.Context, pred *models.Prediction) error {
	if pred == nil {
		return fmt.Errorf("prediction cannot be nil")
	}

	if err := validatePrediction(pred); err != nil {
		return fmt.Errorf("prediction validation failed: %w", err)
	}

	query := `
		INSERT INTO predictions (game_id, model_name, predicted_winner, confidence, reasoning)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id, model_name) DO UPDATE SET
			predicted_winner = EXCLUDED.predicted_winner,
			confidence = EXCLUDED.confidence,
			reasoning = EXCLUDED.reasoning
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		pred.GameID, pred.ModelName, pred.PredictedWinner, pred.Confidence, pred.Reasoning,
	).Scan(&pred.ID, &pred.CreatedAt)

	if err != nil {
		log.Error().Err(err).Str("game_id", pred.GameID).Str("model", pred.ModelName).Msg("Failed to insert prediction")
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}

	log.Debug().
		Str("game_id", pred.GameID).
		Str("model", pred.ModelName).
		Str("pick", pred.PredictedWinner).
		Int("confidence", pred.Confidence).
		Msg("Prediction stored")

	return nil
}

// GetByGame retrieves all predictions for a game
func (r *PredictionRepository) GetByGame(ctx context.Context, gameID string) ([]*models.Prediction, error) {
	query := `
		SELECT id, game_id, model_name, predicted_winner, confidence, reasoning, is_correct, created_at
		FROM predictions
		WHERE game_id = $1
		ORDER BY model_name
	`

	rows, err := r.db.Pool.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var preds []*models.Prediction
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(
			&p.ID, &p.GameID, &p.ModelName, &p.PredictedWinner,
			&p.Confidence, &p.Reasoning, &p.IsCorrect, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		preds = append(preds, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating predictions: %w", err)
	}

	return preds, nil
}

// CountByGame returns how many predictions exist for a game
func (r *PredictionRepository) CountByGame(ctx context.Context, gameID string) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM predictions WHERE game_id = $1`, gameID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count predictions: %w", err)
	}

	return count, nil
}

func validatePrediction(pred *models.Prediction) error {
	if pred.GameID == "" {
		return fmt.Errorf("game_id is required")
	}
	if pred.ModelName == "" {
		return fmt.Errorf("model_name is required")
	}
	if pred.PredictedWinner == "" {
		return fmt.Errorf("predicted_winner is required")
	}
	if pred.Confidence < models.MinConfidence || pred.Confidence > models.MaxConfidence {
		return fmt.Errorf("confidence must be within [%d,%d]", models.MinConfidence, models.MaxConfidence)
	}
	return nil
}
