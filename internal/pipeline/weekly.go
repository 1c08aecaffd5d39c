package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bookiebench/pipeline/internal/ai"
	"bookiebench/pipeline/internal/cache"
	"bookiebench/pipeline/internal/models"
	"bookiebench/pipeline/internal/stats"

	"github.com/rs/zerolog/log"
)

func (p *Pipeline) runWeekly(ctx context.Context, ref time.Time) error {
	report, err := p.weeklyReport(ctx, ref)
	if err != nil {
		return err
	}

	leaderboard := stats.FormatLeaderboard(report.OverallLeaderboard)
	cards := stats.FormatReportCards(report.WeeklyReportCards)
	callout := stats.StreakCallout(report)

	script, err := p.panel.GenerateScript(ctx, ai.WeeklyScriptPrompt(report, leaderboard, cards, callout))
	if err != nil {
		log.Warn().Err(err).Msg("AI recap generation failed, using fallback script")
		script = FallbackWeeklyScript(report)
	}

	entry := &models.ContentLog{
		GameID: fmt.Sprintf("weekly-%s", report.WeekStart.Format("2006-01-02")),
		Script: sql.NullString{String: script, Valid: true},
	}
	if err := p.db.Content.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to log weekly recap: %w", err)
	}

	log.Info().
		Time("week_start", report.WeekStart).
		Time("week_end", report.WeekEnd).
		Str("callout", callout).
		Msg("Weekly recap generated")

	p.publish(ctx)
	return nil
}

// weeklyReport builds the report, caching it per window so a re-run
// inside the hour does not hit the aggregate queries again
func (p *Pipeline) weeklyReport(ctx context.Context, ref time.Time) (*models.WeeklyReport, error) {
	weekStart, _ := stats.WeekWindow(ref)

	if p.cache != nil {
		var cached models.WeeklyReport
		hit, err := p.cache.Get(ctx, cache.WeeklyReportKey(weekStart), &cached)
		if err != nil {
			log.Warn().Err(err).Msg("Weekly report cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	report, err := p.aggregator.BuildReport(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly report: %w", err)
	}

	if p.cache != nil {
		ttl := time.Duration(p.cfg.CacheTTLWeeklyReport) * time.Second
		if err := p.cache.Set(ctx, cache.WeeklyReportKey(weekStart), report, ttl); err != nil {
			log.Warn().Err(err).Msg("Weekly report cache write failed")
		}
	}

	return report, nil
}

// FallbackWeeklyScript builds a recap without AI, used when every
// provider is down
func FallbackWeeklyScript(report *models.WeeklyReport) string {
	script := "THE WEEKLY AI SHOWDOWN RESULTS ARE IN! "

	if len(report.OverallLeaderboard) > 0 {
		leader := report.OverallLeaderboard[0]
		script += fmt.Sprintf("In first place, %s with a %.1f%% win rate! ", leader.ModelName, leader.WinRate)
	}
	if len(report.OverallLeaderboard) > 1 {
		second := report.OverallLeaderboard[1]
		script += fmt.Sprintf("%s comes in second at %.1f%%. ", second.ModelName, second.WinRate)
	}

	script += stats.StreakCallout(report)
	script += " Who takes the crown next week? Drop your prediction!"

	return script
}
