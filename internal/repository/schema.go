package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// schema statements are idempotent so InitSchema can run on every startup
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id SERIAL PRIMARY KEY,
		game_id TEXT UNIQUE NOT NULL,
		game_date DATE NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		home_team_abbrev TEXT NOT NULL,
		away_team_abbrev TEXT NOT NULL,
		vegas_favorite TEXT,
		vegas_spread DOUBLE PRECISION,
		winner TEXT,
		home_score INTEGER,
		away_score INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_games_game_date ON games (game_date)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id SERIAL PRIMARY KEY,
		game_id TEXT NOT NULL REFERENCES games(game_id),
		model_name TEXT NOT NULL,
		predicted_winner TEXT NOT NULL,
		confidence INTEGER NOT NULL CHECK (confidence BETWEEN 50 AND 100),
		reasoning TEXT,
		is_correct BOOLEAN,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (game_id, model_name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_model_name ON predictions (model_name)`,
	`CREATE TABLE IF NOT EXISTS model_stats (
		id SERIAL PRIMARY KEY,
		model_name TEXT UNIQUE NOT NULL,
		total_predictions INTEGER NOT NULL DEFAULT 0,
		correct_predictions INTEGER NOT NULL DEFAULT 0,
		win_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		avg_confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS content_log (
		id SERIAL PRIMARY KEY,
		game_id TEXT NOT NULL,
		video_path TEXT,
		script TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		posted_instagram BOOLEAN NOT NULL DEFAULT FALSE,
		posted_tiktok BOOLEAN NOT NULL DEFAULT FALSE,
		posted_twitter BOOLEAN NOT NULL DEFAULT FALSE
	)`,
}

// InitSchema creates the required tables if they do not exist
func (db *Database) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	log.Info().Msg("Database schema initialized")
	return nil
}
