package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"bookiebench/pipeline/internal/ai"
	"bookiebench/pipeline/internal/cache"
	"bookiebench/pipeline/internal/client"
	"bookiebench/pipeline/internal/config"
	"bookiebench/pipeline/internal/metrics"
	"bookiebench/pipeline/internal/pipeline"
	"bookiebench/pipeline/internal/repository"
	"bookiebench/pipeline/internal/scheduler"
	"bookiebench/pipeline/internal/sheets"
	"bookiebench/pipeline/internal/stats"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting NBA prediction pipeline worker")

	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	espnClient := client.NewClient(cfg.ESPNBaseURL+"/scoreboard", cfg.ESPNTimeout)
	log.Info().Msg("ESPN scoreboard client initialized")

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

	if err := db.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize schema")
	}

	redisCache, err := cache.NewRedisCache(ctx, cache.Config{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	var publisher *sheets.Publisher
	if cfg.SheetsEnabled && cfg.GoogleSheetsID != "" {
		publisher, err = sheets.NewPublisher(ctx, cfg.GoogleCredentialsFile, cfg.GoogleSheetsID, db)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to create sheets publisher - continuing without sync")
			publisher = nil
		} else {
			log.Info().Msg("Google Sheets publisher initialized")
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

	if cfg.EnableMetrics {
		go startMetricsServer(cfg.MetricsPort)

		startTime := time.Now()
		go func() {
			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					metrics.SystemUptime.Set(time.Since(startTime).Seconds())
					stat := db.Pool.Stat()
					metrics.UpdateDBConnectionStats(stat.AcquiredConns(), stat.IdleConns())
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	sched := scheduler.NewScheduler(cfg, pipe)
	if cfg.EnableScheduler {
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	<-ctx.Done()

	log.Info().Msg("Shutting down scheduler...")
	sched.Stop()

	log.Info().Msg("Worker shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsedLevel, err := zerolog.ParseLevel(lvl); err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port int) {
	http.Handle("/metrics", promhttp.Handler())

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info().Int("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
