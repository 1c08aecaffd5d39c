package stats

import (
	"fmt"
	"strings"

	"bookiebench/pipeline/internal/models"
)

// FormatLeaderboard renders the all-time leaderboard one line per
// entry, "#rank name: winrate% (record)"
func FormatLeaderboard(entries []models.LeaderboardEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "#%d %s: %.1f%% (%s)\n", e.Rank, e.ModelName, e.WinRate, e.Record)
	}
	return b.String()
}

// FormatReportCards renders one summary line per card for use in
// script prompts
func FormatReportCards(cards []models.ReportCard) string {
	var b strings.Builder
	for _, c := range cards {
		streak := "none"
		if c.Streak.Type != models.StreakNone {
			streak = fmt.Sprintf("%d%s", c.Streak.Count, c.Streak.Type)
		}
		labels := "none"
		if len(c.Indicators) > 0 {
			names := make([]string, 0, len(c.Indicators))
			for _, ind := range c.Indicators {
				names = append(names, string(ind))
			}
			labels = strings.Join(names, ", ")
		}
		fmt.Fprintf(&b, "- %s: %s (%.1f%%), streak: %s, indicators: %s\n",
			c.ModelName, c.WeeklyRecord, c.WeeklyWinRate, streak, labels)
	}
	return b.String()
}

// StreakCallout builds the narrative sentence about noteworthy runs.
// One sentence per hot model and per cold model; with neither, the
// best weekly win rate gets a "dominated" line, and a flat week falls
// back to a neutral statement.
func StreakCallout(report *models.WeeklyReport) string {
	var callouts []string

	for _, card := range report.WeeklyReportCards {
		if card.HasIndicator(models.IndicatorHot) {
			callouts = append(callouts,
				fmt.Sprintf("%s is on a %d-game win streak!", card.ModelName, card.Streak.Count))
		}
		if card.HasIndicator(models.IndicatorCold) {
			callouts = append(callouts,
				fmt.Sprintf("%s has dropped %d straight!", card.ModelName, card.Streak.Count))
		}
	}

	if len(callouts) == 0 {
		if top := bestWeeklyCard(report.WeeklyReportCards); top != nil {
			callouts = append(callouts, fmt.Sprintf("%s dominated this week!", top.ModelName))
		}
	}

	if len(callouts) == 0 {
		return "It's anyone's game!"
	}

	return strings.Join(callouts, " ")
}

// bestWeeklyCard returns the card with the highest positive weekly win
// rate, or nil when every card is zero. Ties keep the first card seen,
// which is roster order.
func bestWeeklyCard(cards []models.ReportCard) *models.ReportCard {
	var best *models.ReportCard
	for i := range cards {
		if cards[i].WeeklyWinRate <= 0 {
			continue
		}
		if best == nil || cards[i].WeeklyWinRate > best.WeeklyWinRate {
			best = &cards[i]
		}
	}
	return best
}

// IndicatorGlyph maps an indicator to its on-screen glyph
func IndicatorGlyph(ind models.Indicator) string {
	switch ind {
	case models.IndicatorHot:
		return "🔥"
	case models.IndicatorCold:
		return "🧊"
	case models.IndicatorLeader:
		return "👑"
	default:
		return ""
	}
}
