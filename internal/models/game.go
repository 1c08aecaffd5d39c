package models

import (
	"database/sql"
	"time"
)

// Game represents a single NBA game
type Game struct {
	ID         int       `db:"id"`
	GameID     string    `db:"game_id"`
	GameDate   time.Time `db:"game_date"`
	HomeTeam   string    `db:"home_team"`
	AwayTeam   string    `db:"away_team"`
	HomeAbbrev string    `db:"home_team_abbrev"`
	AwayAbbrev string    `db:"away_team_abbrev"`

	// Betting line (set once odds arrive)
	VegasFavorite sql.NullString  `db:"vegas_favorite"`
	VegasSpread   sql.NullFloat64 `db:"vegas_spread"`

	// Final result (set once the game is over)
	Winner    sql.NullString `db:"winner"`
	HomeScore sql.NullInt32  `db:"home_score"`
	AwayScore sql.NullInt32  `db:"away_score"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GameInput is used for creating/updating games from the scoreboard API
type GameInput struct {
	GameID     string `json:"game_id"`
	GameDate   string `json:"game_date"` // YYYY-MM-DD
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	HomeAbbrev string `json:"home_team_abbrev"`
	AwayAbbrev string `json:"away_team_abbrev"`

	VegasFavorite *string  `json:"vegas_favorite,omitempty"`
	VegasSpread   *float64 `json:"vegas_spread,omitempty"`
}

// ToGame converts GameInput (from API) to Game model
func (gi *GameInput) ToGame() *Game {
	game := &Game{
		GameID:     gi.GameID,
		HomeTeam:   gi.HomeTeam,
		AwayTeam:   gi.AwayTeam,
		HomeAbbrev: gi.HomeAbbrev,
		AwayAbbrev: gi.AwayAbbrev,
	}

	if gameDate, err := time.Parse("2006-01-02", gi.GameDate); err == nil {
		game.GameDate = gameDate
	}

	if gi.VegasFavorite != nil && *gi.VegasFavorite != "" {
		game.VegasFavorite = sql.NullString{String: *gi.VegasFavorite, Valid: true}
	}
	if gi.VegasSpread != nil && *gi.VegasSpread > 0 {
		game.VegasSpread = sql.NullFloat64{Float64: *gi.VegasSpread, Valid: true}
	}

	return game
}

// GameResult holds the final outcome of a game
type GameResult struct {
	GameID    string `json:"game_id"`
	Winner    string `json:"winner"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

// HasOdds returns true if a betting line has been recorded
func (g *Game) HasOdds() bool {
	return g.VegasFavorite.Valid && g.VegasSpread.Valid
}

// IsFinal returns true if the game has a recorded winner
func (g *Game) IsFinal() bool {
	return g.Winner.Valid
}

// Matchup returns the "Away @ Home" display string
func (g *Game) Matchup() string {
	return g.AwayTeam + " @ " + g.HomeTeam
}
