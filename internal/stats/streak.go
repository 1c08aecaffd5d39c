package stats

import "bookiebench/pipeline/internal/models"

// ComputeStreak returns the trailing run of identical outcomes in a
// chronologically ordered correctness sequence (oldest first). An empty
// sequence yields a zero-length streak with no direction.
func ComputeStreak(outcomes []bool) models.Streak {
	if len(outcomes) == 0 {
		return models.Streak{Type: models.StreakNone, Count: 0}
	}

	last := outcomes[len(outcomes)-1]
	count := 0
	for i := len(outcomes) - 1; i >= 0; i-- {
		if outcomes[i] != last {
			break
		}
		count++
	}

	streakType := models.StreakLoss
	if last {
		streakType = models.StreakWin
	}

	return models.Streak{Type: streakType, Count: count}
}
