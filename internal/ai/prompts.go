package ai

import (
	"fmt"
	"strings"
	"time"

	"bookiebench/pipeline/internal/models"
)

// PredictionPrompt builds the winner-pick prompt for one game
func PredictionPrompt(game *models.Game, today time.Time) string {
	var b strings.Builder

	b.WriteString("You are a sports analyst AI making NBA game predictions.\n\n")
	fmt.Fprintf(&b, "Today's Date: %s\n", today.Format("2006-01-02"))
	fmt.Fprintf(&b, "Game Date: %s\n\n", game.GameDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "MATCHUP: %s @ %s\n\n", game.AwayTeam, game.HomeTeam)

	if game.HasOdds() {
		fmt.Fprintf(&b, "VEGAS LINE: %s favored by %.1f\n\n", game.VegasFavorite.String, game.VegasSpread.Float64)
	}

	b.WriteString(`Based on your knowledge of:
- Current team records and standings
- Recent performance and momentum
- Head-to-head history
- Key player availability (injuries, rest)
- Home court advantage

Predict the winner of this game.

IMPORTANT: Respond in EXACTLY this JSON format, nothing else:
{
    "winner": "[Team Name]",
    "confidence": [50-100],
    "reasoning": "[One sentence explanation]"
}

Rules:
`)
	fmt.Fprintf(&b, "- winner must be exactly %q or %q\n", game.HomeTeam, game.AwayTeam)
	b.WriteString("- confidence is a number 50-100 (50 = coin flip, 100 = absolute certainty)\n")
	b.WriteString("- Keep reasoning to ONE punchy sentence\n")

	return b.String()
}

// DailyScriptPrompt builds the voiceover prompt for one matchup and
// the panel's picks on it
func DailyScriptPrompt(game *models.Game, preds []*models.Prediction) string {
	var b strings.Builder

	b.WriteString("Generate a dramatic, engaging voiceover script for a sports betting AI prediction video.\n\n")
	fmt.Fprintf(&b, "MATCHUP: %s vs %s\n", game.AwayTeam, game.HomeTeam)
	if game.HasOdds() {
		fmt.Fprintf(&b, "VEGAS LINE: %s -%.1f\n", game.VegasFavorite.String, game.VegasSpread.Float64)
	}

	b.WriteString("\nAI PREDICTIONS:\n")
	for _, p := range preds {
		fmt.Fprintf(&b, "- %s picks %s (%d%% confident)", p.ModelName, p.PredictedWinner, p.Confidence)
		if p.Reasoning.Valid {
			fmt.Fprintf(&b, ": %s", p.Reasoning.String)
		}
		b.WriteString("\n")
	}

	b.WriteString(`
REQUIREMENTS:
1. Start with dramatic hook like "THE AIs HAVE SPOKEN" or "THE MACHINES HAVE DECIDED"
2. State the matchup dramatically
3. Go through each AI's pick with their confidence
4. Highlight any disagreements dramatically - this is CONTENT GOLD
5. End with a provocative question or statement to drive comments

TONE: Dramatic, slightly unhinged, rage-bait friendly. Think sports talk radio meets AI hype.

LENGTH: STRICTLY 50-70 words maximum. This is critical - the video must be under 25 seconds.

Respond with ONLY the voiceover script text, no formatting or labels. Do NOT exceed 70 words.
`)

	return b.String()
}

// WeeklyScriptPrompt builds the weekly recap voiceover prompt
func WeeklyScriptPrompt(report *models.WeeklyReport, leaderboard, reportCards, streakCallout string) string {
	var b strings.Builder

	b.WriteString("Generate a dramatic voiceover script recapping a week of AI models predicting NBA games.\n\n")
	fmt.Fprintf(&b, "WEEK: %s to %s (%d games)\n\n",
		report.WeekStart.Format("2006-01-02"), report.WeekEnd.Format("2006-01-02"), report.TotalGames)

	b.WriteString("ALL-TIME LEADERBOARD:\n")
	b.WriteString(leaderboard)
	b.WriteString("\nTHIS WEEK:\n")
	b.WriteString(reportCards)
	fmt.Fprintf(&b, "\nSTREAK CALLOUT: %s\n", streakCallout)

	b.WriteString(`
REQUIREMENTS:
1. Open with a dramatic weekly-recap hook
2. Crown the leader, roast the loser
3. Work the streak callout in
4. End with "Who takes the crown next week?" energy

TONE: Dramatic, slightly unhinged. Think sports talk radio meets AI hype.

LENGTH: STRICTLY 60-90 words maximum.

Respond with ONLY the voiceover script text, no formatting or labels.
`)

	return b.String()
}
