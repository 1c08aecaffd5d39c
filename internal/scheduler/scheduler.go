package scheduler

import (
	"context"
	"fmt"

	"bookiebench/pipeline/internal/config"
	"bookiebench/pipeline/internal/pipeline"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs the three daily jobs on cron schedules:
// - morning: fetch schedule and odds, collect predictions
// - evening: fetch final scores, settle predictions
// - weekly: build the report and recap on Monday mornings
type Scheduler struct {
	cfg  *config.Config
	pipe *pipeline.Pipeline
	cron *cron.Cron
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, pipe *pipeline.Pipeline) *Scheduler {
	return &Scheduler{
		cfg:  cfg,
		pipe: pipe,
		cron: cron.New(),
	}
}

// Start registers the cron jobs and starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.MorningCron, func() {
		log.Info().Msg("Running morning pipeline...")
		if err := s.pipe.RunMorning(ctx); err != nil {
			log.Error().Err(err).Msg("Morning pipeline failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule morning pipeline: %w", err)
	}

	if _, err := s.cron.AddFunc(s.cfg.EveningCron, func() {
		log.Info().Msg("Running evening pipeline...")
		if err := s.pipe.RunEvening(ctx); err != nil {
			log.Error().Err(err).Msg("Evening pipeline failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule evening pipeline: %w", err)
	}

	if _, err := s.cron.AddFunc(s.cfg.WeeklyCron, func() {
		log.Info().Msg("Running weekly pipeline...")
		if err := s.pipe.RunWeekly(ctx); err != nil {
			log.Error().Err(err).Msg("Weekly pipeline failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule weekly pipeline: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("morning", s.cfg.MorningCron).
		Str("evening", s.cfg.EveningCron).
		Str("weekly", s.cfg.WeeklyCron).
		Msg("Pipelines scheduled")

	return nil
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	<-s.cron.Stop().Done()
	log.Info().Msg("Scheduler stopped")
}
