package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bookiebench/pipeline/internal/ai"
	"bookiebench/pipeline/internal/models"

	"github.com/rs/zerolog/log"
)

// generateDailyScripts writes a voiceover script for the most
// contested matchups of the day and logs them for downstream
// rendering and posting
func (p *Pipeline) generateDailyScripts(ctx context.Context, date time.Time) error {
	games, err := p.db.Games.GetInterestingMatchups(ctx, date, p.cfg.ContentLimit)
	if err != nil {
		return fmt.Errorf("failed to pick matchups: %w", err)
	}

	for _, game := range games {
		preds, err := p.db.Predictions.GetByGame(ctx, game.GameID)
		if err != nil {
			log.Error().Err(err).Str("game_id", game.GameID).Msg("Failed to load predictions for script")
			continue
		}
		if len(preds) == 0 {
			continue
		}

		script, err := p.panel.GenerateScript(ctx, ai.DailyScriptPrompt(game, preds))
		if err != nil {
			log.Warn().Err(err).Str("game_id", game.GameID).Msg("Script generation failed, using fallback")
			script = FallbackDailyScript(game, preds)
		}

		entry := &models.ContentLog{
			GameID: game.GameID,
			Script: sql.NullString{String: script, Valid: true},
		}
		if err := p.db.Content.Log(ctx, entry); err != nil {
			log.Error().Err(err).Str("game_id", game.GameID).Msg("Failed to log content")
			continue
		}

		log.Info().Str("matchup", game.Matchup()).Msg("Daily script generated")
	}

	return nil
}

// FallbackDailyScript builds a matchup script without AI
func FallbackDailyScript(game *models.Game, preds []*models.Prediction) string {
	script := fmt.Sprintf("THE AIs HAVE SPOKEN! %s takes on %s. ", game.AwayTeam, game.HomeTeam)

	for _, pred := range preds {
		script += fmt.Sprintf("%s picks %s at %d%% confidence. ", pred.ModelName, pred.PredictedWinner, pred.Confidence)
	}

	script += "Who do YOU trust? Sound off below!"
	return script
}
