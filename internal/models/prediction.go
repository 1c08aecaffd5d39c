package models

import (
	"database/sql"
	"time"
)

// Confidence bounds enforced at ingestion. Models are told 50 means a
// coin flip, so anything below 50 is clamped up rather than rejected.
const (
	MinConfidence = 50
	MaxConfidence = 100
)

// Prediction represents one AI model's pick for a game.
// Unique per (game_id, model_name).
type Prediction struct {
	ID              int            `db:"id"`
	GameID          string         `db:"game_id"`
	ModelName       string         `db:"model_name"`
	PredictedWinner string         `db:"predicted_winner"`
	Confidence      int            `db:"confidence"`
	Reasoning       sql.NullString `db:"reasoning"`

	// Tri-state: null until the game's result is known
	IsCorrect sql.NullBool `db:"is_correct"`

	CreatedAt time.Time `db:"created_at"`
}

// PredictionInput is used for creating predictions from an AI provider response
type PredictionInput struct {
	GameID          string `json:"game_id"`
	ModelName       string `json:"model_name"`
	PredictedWinner string `json:"predicted_winner"`
	Confidence      int    `json:"confidence"`
	Reasoning       string `json:"reasoning,omitempty"`
}

// ToPrediction converts PredictionInput to a Prediction model,
// clamping confidence into [MinConfidence, MaxConfidence]
func (pi *PredictionInput) ToPrediction() *Prediction {
	pred := &Prediction{
		GameID:          pi.GameID,
		ModelName:       pi.ModelName,
		PredictedWinner: pi.PredictedWinner,
		Confidence:      ClampConfidence(pi.Confidence),
		CreatedAt:       time.Now(),
	}

	if pi.Reasoning != "" {
		pred.Reasoning = sql.NullString{String: pi.Reasoning, Valid: true}
	}

	return pred
}

// ClampConfidence bounds a confidence value to [MinConfidence, MaxConfidence]
func ClampConfidence(c int) int {
	if c < MinConfidence {
		return MinConfidence
	}
	if c > MaxConfidence {
		return MaxConfidence
	}
	return c
}
