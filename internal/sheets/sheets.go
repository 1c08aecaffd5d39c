package sheets

import (
	"context"
	"database/sql"
	"fmt"

	"bookiebench/pipeline/internal/repository"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Worksheet names expected in the target spreadsheet
const (
	predictionsSheet = "Predictions"
	modelStatsSheet  = "Model Stats"
	upcomingSheet    = "Upcoming"
)

// Publisher syncs the prediction ledger, model stats and upcoming
// games into a Google spreadsheet for mobile access
type Publisher struct {
	svc           *sheets.Service
	spreadsheetID string
	db            *repository.Database
}

// NewPublisher builds a Sheets client from a service account
// credentials file
func NewPublisher(ctx context.Context, credentialsFile, spreadsheetID string, db *repository.Database) (*Publisher, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Publisher{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		db:            db,
	}, nil
}

// SyncAll rewrites all three worksheets from the database
func (p *Publisher) SyncAll(ctx context.Context) error {
	if err := p.syncPredictions(ctx); err != nil {
		return fmt.Errorf("failed to sync predictions sheet: %w", err)
	}
	if err := p.syncModelStats(ctx); err != nil {
		return fmt.Errorf("failed to sync model stats sheet: %w", err)
	}
	if err := p.syncUpcoming(ctx); err != nil {
		return fmt.Errorf("failed to sync upcoming sheet: %w", err)
	}

	log.Info().Str("spreadsheet_id", p.spreadsheetID).Msg("Google Sheets synced")
	return nil
}

func (p *Publisher) syncPredictions(ctx context.Context) error {
	exports, err := p.db.ExportPredictions(ctx)
	if err != nil {
		return err
	}

	values := [][]interface{}{{
		"Date", "Away Team", "Home Team", "Vegas Favorite", "Spread",
		"Actual Winner", "Home Score", "Away Score", "Model", "Prediction",
		"Confidence", "Reasoning", "Correct?",
	}}

	for _, e := range exports {
		correct := ""
		if e.IsCorrect.Valid {
			if e.IsCorrect.Bool {
				correct = "Yes"
			} else {
				correct = "No"
			}
		}

		values = append(values, []interface{}{
			e.GameDate.Format("2006-01-02"), e.AwayTeam, e.HomeTeam,
			nullString(e.VegasFavorite), nullFloat(e.VegasSpread),
			nullString(e.Winner), nullInt(e.HomeScore), nullInt(e.AwayScore),
			e.ModelName, e.PredictedWinner, e.Confidence,
			nullString(e.Reasoning), correct,
		})
	}

	if err := p.writeSheet(ctx, predictionsSheet, values); err != nil {
		return err
	}

	log.Info().Int("rows", len(values)-1).Msg("Predictions sheet synced")
	return nil
}

func (p *Publisher) syncModelStats(ctx context.Context) error {
	stats, err := p.db.Stats.ModelStats(ctx)
	if err != nil {
		return err
	}

	values := [][]interface{}{{
		"Model", "Total Predictions", "Correct", "Win Rate %", "Avg Confidence",
	}}

	for _, s := range stats {
		values = append(values, []interface{}{
			s.ModelName, s.TotalPredictions, s.CorrectPredictions, s.WinRate, s.AvgConfidence,
		})
	}

	if err := p.writeSheet(ctx, modelStatsSheet, values); err != nil {
		return err
	}

	log.Info().Int("models", len(values)-1).Msg("Model stats sheet synced")
	return nil
}

func (p *Publisher) syncUpcoming(ctx context.Context) error {
	exports, err := p.db.ExportUpcoming(ctx)
	if err != nil {
		return err
	}

	values := [][]interface{}{{
		"Date", "Away Team", "Home Team", "Vegas Favorite", "Spread", "AI Predictions",
	}}

	for _, e := range exports {
		values = append(values, []interface{}{
			e.GameDate.Format("2006-01-02"), e.AwayTeam, e.HomeTeam,
			nullString(e.VegasFavorite), nullFloat(e.VegasSpread),
			nullString(e.Predictions),
		})
	}

	if err := p.writeSheet(ctx, upcomingSheet, values); err != nil {
		return err
	}

	log.Info().Int("games", len(values)-1).Msg("Upcoming sheet synced")
	return nil
}

// writeSheet clears a worksheet and rewrites it from A1
func (p *Publisher) writeSheet(ctx context.Context, sheet string, values [][]interface{}) error {
	clearRange := fmt.Sprintf("%s!A1:Z", sheet)
	if _, err := p.svc.Spreadsheets.Values.
		Clear(p.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", sheet, err)
	}

	writeRange := fmt.Sprintf("%s!A1", sheet)
	if _, err := p.svc.Spreadsheets.Values.
		Update(p.spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to update %s: %w", sheet, err)
	}

	return nil
}

func nullString(s sql.NullString) interface{} {
	if !s.Valid {
		return ""
	}
	return s.String
}

func nullFloat(f sql.NullFloat64) interface{} {
	if !f.Valid {
		return ""
	}
	return f.Float64
}

func nullInt(i sql.NullInt32) interface{} {
	if !i.Valid {
		return ""
	}
	return i.Int32
}
