package repository

import (
	"context"
	"fmt"

	"bookiebench/pipeline/internal/models"

	"github.com/rs/zerolog/log"
)

// ContentRepository tracks generated scripts and where they were posted
type ContentRepository struct {
	db *Database
}

// Log records a generated piece of content for a game
func (r *ContentRepository) Log(ctx context.Context, entry *models.ContentLog) error {
	query := `
		INSERT INTO content_log (game_id, video_path, script)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		entry.GameID, entry.VideoPath, entry.Script,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to log content: %w", err)
	}

	log.Debug().Str("game_id", entry.GameID).Int("id", entry.ID).Msg("Content logged")
	return nil
}

// MarkPosted flags a content entry as published on a platform
func (r *ContentRepository) MarkPosted(ctx context.Context, id int, platform string) error {
	var column string
	switch platform {
	case "instagram":
		column = "posted_instagram"
	case "tiktok":
		column = "posted_tiktok"
	case "twitter":
		column = "posted_twitter"
	default:
		return fmt.Errorf("unknown platform: %s", platform)
	}

	query := fmt.Sprintf(`UPDATE content_log SET %s = TRUE WHERE id = $1`, column)

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark content posted: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("content entry not found: %d", id)
	}

	return nil
}

// GetUnposted retrieves content entries not yet posted to a platform
func (r *ContentRepository) GetUnposted(ctx context.Context, platform string, limit int) ([]*models.ContentLog, error) {
	var column string
	switch platform {
	case "instagram":
		column = "posted_instagram"
	case "tiktok":
		column = "posted_tiktok"
	case "twitter":
		column = "posted_twitter"
	default:
		return nil, fmt.Errorf("unknown platform: %s", platform)
	}

	query := fmt.Sprintf(`
		SELECT id, game_id, video_path, script, created_at,
		       posted_instagram, posted_tiktok, posted_twitter
		FROM content_log
		WHERE NOT %s
		ORDER BY created_at DESC
		LIMIT $1
	`, column)

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query content log: %w", err)
	}
	defer rows.Close()

	var entries []*models.ContentLog
	for rows.Next() {
		var e models.ContentLog
		if err := rows.Scan(
			&e.ID, &e.GameID, &e.VideoPath, &e.Script, &e.CreatedAt,
			&e.PostedInstagram, &e.PostedTikTok, &e.PostedTwitter,
		); err != nil {
			return nil, fmt.Errorf("failed to scan content entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content log: %w", err)
	}

	return entries, nil
}
