package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookiebench/pipeline/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

// Upsert inserts a game or refreshes its betting line if it already
// exists. Result fields are never touched here; see RecordResult.
func (r *GameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (
			game_id, game_date, home_team, away_team,
			home_team_abbrev, away_team_abbrev, vegas_favorite, vegas_spread
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_id) DO UPDATE SET
			vegas_favorite = EXCLUDED.vegas_favorite,
			vegas_spread = EXCLUDED.vegas_spread,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		game.GameID, game.GameDate, game.HomeTeam, game.AwayTeam,
		game.HomeAbbrev, game.AwayAbbrev, game.VegasFavorite, game.VegasSpread,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	log.Debug().
		Str("game_id", game.GameID).
		Str("home", game.HomeAbbrev).
		Str("away", game.AwayAbbrev).
		Msg("Game upserted")

	return nil
}

// UpdateOdds attaches the betting line to an existing game
func (r *GameRepository) UpdateOdds(ctx context.Context, gameID, favorite string, spread float64) error {
	query := `
		UPDATE games
		SET vegas_favorite = $1, vegas_spread = $2, updated_at = NOW()
		WHERE game_id = $3
	`

	result, err := r.db.Pool.Exec(ctx, query, favorite, spread, gameID)
	if err != nil {
		return fmt.Errorf("failed to update odds: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("game not found: %s", gameID)
	}

	return nil
}

// RecordResult writes the final score, marks every prediction for the
// game correct or incorrect, and recomputes model_stats from scratch.
// The stats recompute is a full re-aggregation rather than an
// increment so the materialized row can never drift from the
// predictions table. All three writes happen in one transaction.
func (r *GameRepository) RecordResult(ctx context.Context, res *models.GameResult) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE games
		SET winner = $1, home_score = $2, away_score = $3, updated_at = NOW()
		WHERE game_id = $4
	`, res.Winner, res.HomeScore, res.AwayScore, res.GameID)
	if err != nil {
		return fmt.Errorf("failed to update game result: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("game not found: %s", res.GameID)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE predictions
		SET is_correct = (predicted_winner = $1)
		WHERE game_id = $2
	`, res.Winner, res.GameID); err != nil {
		return fmt.Errorf("failed to score predictions: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO model_stats (model_name, total_predictions, correct_predictions, win_rate, avg_confidence, updated_at)
		SELECT
			model_name,
			COUNT(*),
			COUNT(*) FILTER (WHERE is_correct),
			ROUND(100.0 * COUNT(*) FILTER (WHERE is_correct) / COUNT(*), 1),
			ROUND(AVG(confidence)::numeric, 1),
			NOW()
		FROM predictions
		WHERE is_correct IS NOT NULL
		GROUP BY model_name
		ON CONFLICT (model_name) DO UPDATE SET
			total_predictions = EXCLUDED.total_predictions,
			correct_predictions = EXCLUDED.correct_predictions,
			win_rate = EXCLUDED.win_rate,
			avg_confidence = EXCLUDED.avg_confidence,
			updated_at = NOW()
	`); err != nil {
		return fmt.Errorf("failed to recompute model stats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit result: %w", err)
	}

	log.Info().
		Str("game_id", res.GameID).
		Str("winner", res.Winner).
		Int("home_score", res.HomeScore).
		Int("away_score", res.AwayScore).
		Msg("Game result recorded")

	return nil
}

const gameColumns = `id, game_id, game_date, home_team, away_team,
       home_team_abbrev, away_team_abbrev, vegas_favorite, vegas_spread,
       winner, home_score, away_score, created_at, updated_at`

func scanGame(row pgx.Row) (*models.Game, error) {
	var g models.Game
	err := row.Scan(
		&g.ID, &g.GameID, &g.GameDate, &g.HomeTeam, &g.AwayTeam,
		&g.HomeAbbrev, &g.AwayAbbrev, &g.VegasFavorite, &g.VegasSpread,
		&g.Winner, &g.HomeScore, &g.AwayScore, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByGameID retrieves a game by its external identifier
func (r *GameRepository) GetByGameID(ctx context.Context, gameID string) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1`

	game, err := scanGame(r.db.Pool.QueryRow(ctx, query, gameID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetByDate retrieves all games on a calendar date
func (r *GameRepository) GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_date = $1 ORDER BY game_id`

	return r.queryGames(ctx, query, date)
}

// GetNeedingResults retrieves games from a date that have no recorded winner
func (r *GameRepository) GetNeedingResults(ctx context.Context, date time.Time) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_date = $1 AND winner IS NULL ORDER BY game_id`

	return r.queryGames(ctx, query, date)
}

// GetInterestingMatchups returns up to limit games for a date ordered
// by how much the models disagree (distinct picks, descending)
func (r *GameRepository) GetInterestingMatchups(ctx context.Context, date time.Time, limit int) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM (
			SELECT g.*, COUNT(DISTINCT p.predicted_winner) AS unique_picks
			FROM games g
			LEFT JOIN predictions p ON g.game_id = p.game_id
			WHERE g.game_date = $1
			GROUP BY g.id
			ORDER BY unique_picks DESC, g.game_id
			LIMIT $2
		) ranked
	`

	return r.queryGames(ctx, query, date, limit)
}

// CountCompletedInRange counts distinct games with a recorded result
// whose date falls inside [start, end] inclusive
func (r *GameRepository) CountCompletedInRange(ctx context.Context, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(DISTINCT game_id)
		FROM games
		WHERE game_date BETWEEN $1 AND $2 AND winner IS NOT NULL
	`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed games: %w", err)
	}

	return count, nil
}

func (r *GameRepository) queryGames(ctx context.Context, query string, args ...interface{}) ([]*models.Game, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}
