package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"bookiebench/pipeline/internal/ai"
	"bookiebench/pipeline/internal/cache"
	"bookiebench/pipeline/internal/client"
	"bookiebench/pipeline/internal/config"
	"bookiebench/pipeline/internal/pipeline"
	"bookiebench/pipeline/internal/repository"
	"bookiebench/pipeline/internal/sheets"
	"bookiebench/pipeline/internal/stats"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// One-shot runner for individual pipeline stages, useful for manual
// backfills and local debugging. The worker binary is the production
// entry point.
func main() {
	job := flag.String("job", "", "job to run: morning | evening | weekly | sheets | init")
	dateFlag := flag.String("date", "", "override date (YYYY-MM-DD); game date for morning/evening, reference date for weekly")
	flag.Parse()

	if *job == "" {
		fmt.Fprintln(os.Stderr, "usage: pipeline -job <morning|evening|weekly|sheets|init> [-date YYYY-MM-DD]")
		os.Exit(2)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg := config.MustLoad()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	db.Stats.HighConfThreshold = cfg.HighConfThreshold

	if *job == "init" {
		if err := db.InitSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize schema")
		}
		log.Info().Msg("Schema initialized")
		return
	}

	espnClient := client.NewClient(cfg.ESPNBaseURL+"/scoreboard", cfg.ESPNTimeout)

	redisCache, err := cache.NewRedisCache(ctx, cache.Config{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running uncached")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	var publisher *sheets.Publisher
	if cfg.SheetsEnabled && cfg.GoogleSheetsID != "" {
		publisher, err = sheets.NewPublisher(ctx, cfg.GoogleCredentialsFile, cfg.GoogleSheetsID, db)
		if err != nil {
			log.Warn().Err(err).Msg("Sheets unavailable, skipping sync")
			publisher = nil
		}
	}

	panel := ai.NewPanel(
		ai.NewChatGPT(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		ai.NewClaude(cfg.AnthropicAPIKey, cfg.AnthropicModel),
		ai.NewGemini(cfg.GoogleAIAPIKey, cfg.GeminiModel),
		ai.NewGrok(cfg.XAIAPIKey, cfg.GrokModel),
	)

	aggregator := stats.NewAggregator(db.Stats, cfg.ModelRoster(), cfg.StreakThreshold)
	pipe := pipeline.New(cfg, espnClient, db, panel, aggregator, redisCache, publisher)

	switch *job {
	case "morning":
		err = pipe.RunMorningFor(ctx, parseDate(*dateFlag, time.Now().AddDate(0, 0, 1)))
	case "evening":
		err = pipe.RunEveningFor(ctx, parseDate(*dateFlag, time.Now().AddDate(0, 0, -1)))
	case "weekly":
		err = pipe.RunWeeklyFor(ctx, parseDate(*dateFlag, time.Now()))
	case "sheets":
		if publisher == nil {
			log.Fatal().Msg("Sheets sync requested but publisher is not configured")
		}
		err = publisher.SyncAll(ctx)
	default:
		log.Fatal().Str("job", *job).Msg("Unknown job")
	}

	if err != nil {
		log.Fatal().Err(err).Str("job", *job).Msg("Job failed")
	}

	log.Info().Str("job", *job).Msg("Job complete")
}

func parseDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}

	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Fatal().Str("date", s).Msg("Invalid date, expected YYYY-MM-DD")
	}
	return d
}
