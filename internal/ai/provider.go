package ai

import (
	"context"
	"time"

	"bookiebench/pipeline/internal/metrics"
	"bookiebench/pipeline/internal/models"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// Provider is one AI model in the benchmark roster
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Panel queries every provider in the roster for game predictions.
// A provider failing or returning garbage costs that provider its pick
// for the game, never the whole batch.
type Panel struct {
	providers []Provider
}

// NewPanel creates a panel over a fixed provider roster
func NewPanel(providers ...Provider) *Panel {
	return &Panel{providers: providers}
}

// Providers returns the roster in panel order
func (p *Panel) Providers() []Provider {
	return p.providers
}

// PredictGame asks each provider for a winner pick on one game.
// Results come back in roster order, minus any provider that failed.
func (p *Panel) PredictGame(ctx context.Context, game *models.Game) []*models.PredictionInput {
	prompt := PredictionPrompt(game, time.Now())

	var picks []*models.PredictionInput
	for _, provider := range p.providers {
		pick, err := p.askProvider(ctx, provider, game, prompt)
		if err != nil {
			log.Warn().
				Err(err).
				Str("model", provider.Name()).
				Str("game_id", game.GameID).
				Msg("Provider failed to produce a prediction")
			continue
		}

		log.Info().
			Str("model", provider.Name()).
			Str("game_id", game.GameID).
			Str("pick", pick.PredictedWinner).
			Int("confidence", pick.Confidence).
			Msg("Prediction collected")

		picks = append(picks, pick)
	}

	return picks
}

func (p *Panel) askProvider(ctx context.Context, provider Provider, game *models.Game, prompt string) (*models.PredictionInput, error) {
	response, err := p.complete(ctx, provider, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := ParsePrediction(response, game.HomeTeam, game.AwayTeam)
	if err != nil {
		return nil, err
	}

	return &models.PredictionInput{
		GameID:          game.GameID,
		ModelName:       provider.Name(),
		PredictedWinner: parsed.Winner,
		Confidence:      parsed.Confidence,
		Reasoning:       parsed.Reasoning,
	}, nil
}

// GenerateScript runs a free-form writing prompt through the first
// provider in the roster
func (p *Panel) GenerateScript(ctx context.Context, prompt string) (string, error) {
	return p.complete(ctx, p.providers[0], prompt)
}

// complete runs one prompt through a provider with retry, recording a
// call metric per attempt
func (p *Panel) complete(ctx context.Context, provider Provider, prompt string) (string, error) {
	var response string

	operation := func() error {
		start := time.Now()
		var err error
		response, err = provider.Complete(ctx, prompt)

		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.RecordProviderCall(provider.Name(), status, time.Since(start).Seconds())

		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}

	return response, nil
}
