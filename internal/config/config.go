package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// ESPN scoreboard API
	ESPNBaseURL string        `envconfig:"ESPN_BASE_URL" default:"https://site.api.espn.com/apis/site/v2/sports/basketball/nba"`
	ESPNTimeout time.Duration `envconfig:"ESPN_TIMEOUT" default:"10s"`

	// AI provider keys
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`
	GoogleAIAPIKey  string `envconfig:"GOOGLE_AI_API_KEY"`
	XAIAPIKey       string `envconfig:"XAI_API_KEY"`

	// AI model identifiers
	OpenAIModel    string `envconfig:"OPENAI_MODEL" default:"gpt-4o"`
	AnthropicModel string `envconfig:"ANTHROPIC_MODEL" default:"claude-sonnet-4-20250514"`
	GeminiModel    string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	GrokModel      string `envconfig:"GROK_MODEL" default:"grok-3"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"bookiebench"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"bookiebench_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Scheduler
	EnableScheduler bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	MorningCron     string `envconfig:"MORNING_CRON" default:"0 5 * * *"`
	EveningCron     string `envconfig:"EVENING_CRON" default:"0 22 * * *"`
	WeeklyCron      string `envconfig:"WEEKLY_CRON" default:"0 9 * * 1"`

	// Reporting
	HighConfThreshold int `envconfig:"HIGH_CONF_THRESHOLD" default:"80"`
	StreakThreshold   int `envconfig:"STREAK_THRESHOLD" default:"3"`
	ContentLimit      int `envconfig:"CONTENT_LIMIT" default:"3"`

	// Caching TTL (in seconds)
	CacheTTLScoreboard   int `envconfig:"CACHE_TTL_SCOREBOARD" default:"300"`
	CacheTTLWeeklyReport int `envconfig:"CACHE_TTL_WEEKLY_REPORT" default:"3600"`

	// Google Sheets
	SheetsEnabled         bool   `envconfig:"SHEETS_ENABLED" default:"true"`
	GoogleSheetsID        string `envconfig:"GOOGLE_SHEETS_ID"`
	GoogleCredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE" default:"config/credentials.json"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// ModelRoster is the fixed set of benchmarked models, in report order.
// Injected from here rather than discovered from the database so a
// model with no rows still gets a report card.
func (c *Config) ModelRoster() []string {
	return []string{"ChatGPT", "Claude", "Gemini", "Grok"}
}

// Load loads configuration from environment variables.
// It first attempts to load a .env file if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.SheetsEnabled && c.GoogleSheetsID == "" && c.IsProduction() {
		return fmt.Errorf("GOOGLE_SHEETS_ID is required when sheets sync is enabled")
	}

	if c.HighConfThreshold < 50 || c.HighConfThreshold > 100 {
		return fmt.Errorf("HIGH_CONF_THRESHOLD must be within [50,100]")
	}

	return nil
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or exits on error.
// Use this in main() where we want to fail fast.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
