package pipeline

import (
	"context"
	"fmt"
	"time"

	"bookiebench/pipeline/internal/ai"
	"bookiebench/pipeline/internal/cache"
	"bookiebench/pipeline/internal/client"
	"bookiebench/pipeline/internal/config"
	"bookiebench/pipeline/internal/metrics"
	"bookiebench/pipeline/internal/models"
	"bookiebench/pipeline/internal/repository"
	"bookiebench/pipeline/internal/sheets"
	"bookiebench/pipeline/internal/stats"

	"github.com/rs/zerolog/log"
)

// Pipeline wires the fetch, predict, score and publish stages. The
// cache and publisher are optional; a nil value disables that stage.
type Pipeline struct {
	cfg        *config.Config
	espn       *client.Client
	db         *repository.Database
	panel      *ai.Panel
	aggregator *stats.Aggregator
	cache      *cache.RedisCache
	publisher  *sheets.Publisher
}

// New assembles a pipeline
func New(
	cfg *config.Config,
	espn *client.Client,
	db *repository.Database,
	panel *ai.Panel,
	aggregator *stats.Aggregator,
	redisCache *cache.RedisCache,
	publisher *sheets.Publisher,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		espn:       espn,
		db:         db,
		panel:      panel,
		aggregator: aggregator,
		cache:      redisCache,
		publisher:  publisher,
	}
}

// RunMorning fetches tomorrow's schedule and odds, collects a pick
// from every provider on every game, and queues content scripts for
// the most contested matchups.
func (p *Pipeline) RunMorning(ctx context.Context) error {
	return p.RunMorningFor(ctx, time.Now().AddDate(0, 0, 1))
}

// RunMorningFor runs the morning pipeline against a specific game date
func (p *Pipeline) RunMorningFor(ctx context.Context, date time.Time) error {
	return p.timed(ctx, "morning", func(ctx context.Context) error {
		return p.runMorning(ctx, date)
	})
}

// RunEvening fetches yesterday's final scores, records results and
// scores every prediction against them.
func (p *Pipeline) RunEvening(ctx context.Context) error {
	return p.RunEveningFor(ctx, time.Now().AddDate(0, 0, -1))
}

// RunEveningFor runs the evening pipeline against a specific game date
func (p *Pipeline) RunEveningFor(ctx context.Context, date time.Time) error {
	return p.timed(ctx, "evening", func(ctx context.Context) error {
		return p.runEvening(ctx, date)
	})
}

// RunWeekly builds the weekly report for the last completed week and
// turns it into a recap script.
func (p *Pipeline) RunWeekly(ctx context.Context) error {
	return p.RunWeeklyFor(ctx, time.Now())
}

// RunWeeklyFor runs the weekly pipeline against a specific reference date
func (p *Pipeline) RunWeeklyFor(ctx context.Context, ref time.Time) error {
	return p.timed(ctx, "weekly", func(ctx context.Context) error {
		return p.runWeekly(ctx, ref)
	})
}

func (p *Pipeline) timed(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordPipelineRun(name, "error", duration)
		metrics.RecordError("pipeline", name)
		return err
	}

	metrics.RecordPipelineRun(name, "success", duration)
	return nil
}

func (p *Pipeline) runMorning(ctx context.Context, date time.Time) error {
	// Catch up on anything that finished since the last evening run
	// before collecting new picks. The morning date is tomorrow, so
	// yesterday sits two days back.
	if err := p.recordResults(ctx, date.AddDate(0, 0, -2)); err != nil {
		log.Warn().Err(err).Msg("Result catch-up failed")
	}

	games, err := p.fetchSchedule(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule: %w", err)
	}
	metrics.GamesTracked.Set(float64(len(games)))

	for _, game := range games {
		if err := p.db.Games.Upsert(ctx, game); err != nil {
			log.Error().Err(err).Str("game_id", game.GameID).Msg("Failed to store game")
		}
	}

	lines, err := p.espn.OddsForDate(ctx, date)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch odds, predictions run without lines")
	} else {
		for gameID, line := range lines {
			if err := p.db.Games.UpdateOdds(ctx, gameID, line.Favorite, line.Spread); err != nil {
				log.Warn().Err(err).Str("game_id", gameID).Msg("Failed to store odds")
			}
		}
	}

	if err := p.collectPredictions(ctx, date); err != nil {
		return err
	}

	if err := p.generateDailyScripts(ctx, date); err != nil {
		log.Error().Err(err).Msg("Daily script generation failed")
	}

	p.publish(ctx)
	return nil
}

// fetchSchedule loads the slate for a date, serving a cached copy when
// one is fresh so a morning re-run does not hit the API again
func (p *Pipeline) fetchSchedule(ctx context.Context, date time.Time) ([]*models.Game, error) {
	key := cache.ScoreboardKey(date)

	if p.cache != nil {
		var cached []*models.Game
		hit, err := p.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("Schedule cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	games, err := p.espn.GamesForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if p.cache != nil && len(games) > 0 {
		ttl := time.Duration(p.cfg.CacheTTLScoreboard) * time.Second
		if err := p.cache.Set(ctx, key, games, ttl); err != nil {
			log.Warn().Err(err).Msg("Schedule cache write failed")
		}
	}

	return games, nil
}

// collectPredictions asks the panel about every game on a date that
// does not already have a full set of picks
func (p *Pipeline) collectPredictions(ctx context.Context, date time.Time) error {
	games, err := p.db.Games.GetByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to load games for prediction: %w", err)
	}

	rosterSize := len(p.panel.Providers())
	for _, game := range games {
		existing, err := p.db.Predictions.CountByGame(ctx, game.GameID)
		if err != nil {
			return fmt.Errorf("failed to count predictions: %w", err)
		}
		if existing >= rosterSize {
			log.Debug().Str("game_id", game.GameID).Msg("Predictions already collected, skipping")
			continue
		}

		log.Info().Str("matchup", game.Matchup()).Msg("Collecting predictions")

		for _, input := range p.panel.PredictGame(ctx, game) {
			pred := input.ToPrediction()
			if err := p.db.Predictions.Upsert(ctx, pred); err != nil {
				log.Error().Err(err).Str("game_id", game.GameID).Str("model", pred.ModelName).Msg("Failed to store prediction")
				continue
			}
			metrics.RecordPrediction(pred.ModelName)
		}
	}

	return nil
}

func (p *Pipeline) runEvening(ctx context.Context, date time.Time) error {
	if err := p.recordResults(ctx, date); err != nil {
		return err
	}

	p.publish(ctx)
	return nil
}

// recordResults pulls final scores for a date and scores every stored
// prediction on the games that finished
func (p *Pipeline) recordResults(ctx context.Context, date time.Time) error {
	needing, err := p.db.Games.GetNeedingResults(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to load games needing results: %w", err)
	}
	if len(needing) == 0 {
		log.Info().Str("date", date.Format("2006-01-02")).Msg("No games needing results")
		return nil
	}

	results, err := p.espn.ResultsForDate(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to fetch results: %w", err)
	}

	byGame := make(map[string]*models.GameResult, len(results))
	for _, res := range results {
		byGame[res.GameID] = res
	}

	recorded := 0
	for _, game := range needing {
		res, ok := byGame[game.GameID]
		if !ok {
			log.Warn().Str("game_id", game.GameID).Msg("No final score yet")
			continue
		}

		if err := p.db.Games.RecordResult(ctx, res); err != nil {
			log.Error().Err(err).Str("game_id", game.GameID).Msg("Failed to record result")
			continue
		}

		metrics.ResultsRecorded.Inc()
		recorded++
	}

	log.Info().
		Str("date", date.Format("2006-01-02")).
		Int("recorded", recorded).
		Int("pending", len(needing)-recorded).
		Msg("Results run complete")

	return nil
}

// publish syncs the spreadsheet when a publisher is configured
func (p *Pipeline) publish(ctx context.Context) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.SyncAll(ctx); err != nil {
		log.Error().Err(err).Msg("Sheets sync failed")
		metrics.RecordError("sheets", "sync")
	}
}
