package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookiebench/pipeline/internal/metrics"
	"bookiebench/pipeline/internal/models"

	"github.com/rs/zerolog/log"
)

const scoreboardDateFormat = "20060102"

// Client is the ESPN scoreboard API client. The scoreboard endpoint is
// unauthenticated; one call per date carries schedule, odds and final
// scores, so all three fetchers share it.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	teams       models.TeamTable
	rateLimiter chan struct{}
	maxRetries  int
	retryDelay  time.Duration
}

// NewClient creates a new ESPN scoreboard client
func NewClient(baseURL string, timeout time.Duration) *Client {
	// Rate limiter: max 5 concurrent requests
	rateLimiter := make(chan struct{}, 5)
	for i := 0; i < 5; i++ {
		rateLimiter <- struct{}{}
	}

	return &Client{
		baseURL:     baseURL,
		teams:       models.NBATeams(),
		rateLimiter: rateLimiter,
		maxRetries:  3,
		retryDelay:  1 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Scoreboard response shapes, only the fields we read

type scoreboardResponse struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID           string        `json:"id"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Competitors []competitor `json:"competitors"`
	Odds        []oddsEntry  `json:"odds"`
	Status      gameStatus   `json:"status"`
}

type competitor struct {
	HomeAway string   `json:"homeAway"`
	Score    string   `json:"score"`
	Team     teamInfo `json:"team"`
}

type teamInfo struct {
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
}

type oddsEntry struct {
	Details string  `json:"details"`
	Spread  float64 `json:"spread"`
}

type gameStatus struct {
	Type struct {
		Completed bool `json:"completed"`
	} `json:"type"`
}

// OddsLine is a parsed betting line for one game
type OddsLine struct {
	Favorite string
	Spread   float64
}

// get performs a GET request with retry logic and rate limiting
func (c *Client) get(ctx context.Context, params map[string]string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("url", c.baseURL).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying scoreboard request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.rateLimiter:
			defer func() { c.rateLimiter <- struct{}{} }()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "bookiebench/1.0")

		q := req.URL.Query()
		for key, value := range params {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("scoreboard request failed: %w", err)
			if attempt < c.maxRetries {
				continue
			}
			return nil, lastErr
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			if attempt < c.maxRetries {
				continue
			}
			return nil, lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			log.Debug().
				Int("status", resp.StatusCode).
				Int("size", len(body)).
				Msg("Scoreboard request successful")
			return body, nil

		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			lastErr = fmt.Errorf("scoreboard returned retryable status %d", resp.StatusCode)
			if attempt < c.maxRetries {
				log.Warn().
					Int("status", resp.StatusCode).
					Int("attempt", attempt+1).
					Msg("Received retryable error, will retry")
				continue
			}
			return nil, lastErr

		default:
			return nil, fmt.Errorf("scoreboard returned status %d: %s", resp.StatusCode, string(body))
		}
	}

	return nil, lastErr
}

func (c *Client) scoreboard(ctx context.Context, date time.Time) (*scoreboardResponse, error) {
	start := time.Now()
	body, err := c.get(ctx, map[string]string{
		"dates": date.Format(scoreboardDateFormat),
	})
	if err != nil {
		metrics.RecordScoreboardCall("scoreboard", "error", time.Since(start).Seconds())
		return nil, err
	}
	metrics.RecordScoreboardCall("scoreboard", "success", time.Since(start).Seconds())

	var sb scoreboardResponse
	if err := json.Unmarshal(body, &sb); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scoreboard: %w", err)
	}

	return &sb, nil
}

// GamesForDate fetches the schedule for a date. Events missing a home
// or away competitor are skipped and logged, not fatal.
func (c *Client) GamesForDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	sb, err := c.scoreboard(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch games: %w", err)
	}

	var games []*models.Game
	for _, event := range sb.Events {
		if len(event.Competitions) == 0 {
			continue
		}

		home, away, ok := splitCompetitors(event.Competitions[0].Competitors)
		if !ok {
			log.Warn().Str("game_id", event.ID).Msg("Event missing home or away competitor, skipping")
			continue
		}

		homeAbbrev := models.NormalizeAbbrev(home.Team.Abbreviation)
		awayAbbrev := models.NormalizeAbbrev(away.Team.Abbreviation)

		input := models.GameInput{
			GameID:     event.ID,
			GameDate:   date.Format("2006-01-02"),
			HomeTeam:   c.teamName(homeAbbrev, home.Team.DisplayName),
			AwayTeam:   c.teamName(awayAbbrev, away.Team.DisplayName),
			HomeAbbrev: homeAbbrev,
			AwayAbbrev: awayAbbrev,
		}
		games = append(games, input.ToGame())
	}

	log.Info().
		Str("date", date.Format("2006-01-02")).
		Int("games", len(games)).
		Msg("Fetched schedule")

	return games, nil
}

// OddsForDate fetches betting lines for a date, keyed by game id.
// Games with no published line are absent from the map.
func (c *Client) OddsForDate(ctx context.Context, date time.Time) (map[string]OddsLine, error) {
	sb, err := c.scoreboard(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch odds: %w", err)
	}

	lines := make(map[string]OddsLine)
	for _, event := range sb.Events {
		if len(event.Competitions) == 0 || len(event.Competitions[0].Odds) == 0 {
			continue
		}

		comp := event.Competitions[0]
		home, away, ok := splitCompetitors(comp.Competitors)
		if !ok {
			continue
		}

		line, ok := parseOdds(comp.Odds[0], home.Team.DisplayName, away.Team.DisplayName)
		if !ok {
			log.Debug().Str("game_id", event.ID).Msg("No usable betting line")
			continue
		}

		lines[event.ID] = line
	}

	return lines, nil
}

// ResultsForDate fetches final scores for a date. Games still in
// progress are absent from the returned slice.
func (c *Client) ResultsForDate(ctx context.Context, date time.Time) ([]*models.GameResult, error) {
	sb, err := c.scoreboard(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}

	var results []*models.GameResult
	for _, event := range sb.Events {
		if len(event.Competitions) == 0 {
			continue
		}

		comp := event.Competitions[0]
		if !comp.Status.Type.Completed {
			continue
		}

		home, away, ok := splitCompetitors(comp.Competitors)
		if !ok {
			continue
		}

		homeScore := parseScore(home.Score)
		awayScore := parseScore(away.Score)

		winner := home.Team.DisplayName
		if awayScore > homeScore {
			winner = away.Team.DisplayName
		}

		results = append(results, &models.GameResult{
			GameID:    event.ID,
			Winner:    winner,
			HomeScore: homeScore,
			AwayScore: awayScore,
		})
	}

	log.Info().
		Str("date", date.Format("2006-01-02")).
		Int("results", len(results)).
		Msg("Fetched final scores")

	return results, nil
}

func (c *Client) teamName(abbrev, fallback string) string {
	if team, ok := c.teams[abbrev]; ok {
		return team.Name
	}
	return fallback
}

func splitCompetitors(competitors []competitor) (home, away competitor, ok bool) {
	var haveHome, haveAway bool
	for _, comp := range competitors {
		if comp.HomeAway == "home" {
			home = comp
			haveHome = true
		} else {
			away = comp
			haveAway = true
		}
	}
	return home, away, haveHome && haveAway
}

// parseOdds extracts the favorite and spread from an odds entry. The
// spread field is quoted relative to the home team: negative means the
// home side is favored. When the numeric spread is absent, the details
// string ("LAL -5.5") is the fallback.
func parseOdds(odds oddsEntry, homeTeam, awayTeam string) (OddsLine, bool) {
	if odds.Spread != 0 {
		if odds.Spread < 0 {
			return OddsLine{Favorite: homeTeam, Spread: -odds.Spread}, true
		}
		return OddsLine{Favorite: awayTeam, Spread: odds.Spread}, true
	}

	parts := strings.Fields(odds.Details)
	if len(parts) < 2 {
		return OddsLine{}, false
	}

	spread, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil {
		return OddsLine{}, false
	}
	if spread < 0 {
		spread = -spread
	}

	favorite := awayTeam
	if strings.Contains(strings.ToUpper(homeTeam), parts[0]) {
		favorite = homeTeam
	}

	return OddsLine{Favorite: favorite, Spread: spread}, true
}

func parseScore(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
