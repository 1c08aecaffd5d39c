package models

import (
	"database/sql"
	"time"
)

// ContentLog records a generated piece of content (daily matchup video
// or weekly recap) and its downstream publishing state
type ContentLog struct {
	ID        int            `db:"id"`
	GameID    string         `db:"game_id"`
	VideoPath sql.NullString `db:"video_path"`
	Script    sql.NullString `db:"script"`
	CreatedAt time.Time      `db:"created_at"`

	PostedInstagram bool `db:"posted_instagram"`
	PostedTikTok    bool `db:"posted_tiktok"`
	PostedTwitter   bool `db:"posted_twitter"`
}
