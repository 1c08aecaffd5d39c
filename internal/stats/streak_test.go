package stats

import (
	"testing"

	"bookiebench/pipeline/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []bool
		want     models.Streak
	}{
		{
			name:     "empty history",
			outcomes: nil,
			want:     models.Streak{Type: models.StreakNone, Count: 0},
		},
		{
			name:     "single win",
			outcomes: []bool{true},
			want:     models.Streak{Type: models.StreakWin, Count: 1},
		},
		{
			name:     "single loss",
			outcomes: []bool{false},
			want:     models.Streak{Type: models.StreakLoss, Count: 1},
		},
		{
			name:     "win then loss",
			outcomes: []bool{true, false},
			want:     models.Streak{Type: models.StreakLoss, Count: 1},
		},
		{
			name:     "trailing three losses",
			outcomes: []bool{true, true, false, false, false},
			want:     models.Streak{Type: models.StreakLoss, Count: 3},
		},
		{
			name:     "all wins",
			outcomes: []bool{true, true, true, true},
			want:     models.Streak{Type: models.StreakWin, Count: 4},
		},
		{
			name:     "alternating ends on win",
			outcomes: []bool{false, true, false, true},
			want:     models.Streak{Type: models.StreakWin, Count: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.outcomes))
		})
	}
}

func TestComputeStreakBounds(t *testing.T) {
	histories := [][]bool{
		{true},
		{false, false},
		{true, false, true, true},
		{false, true, false, false, false, false},
	}

	for _, outcomes := range histories {
		streak := ComputeStreak(outcomes)

		assert.LessOrEqual(t, streak.Count, len(outcomes))
		assert.Positive(t, streak.Count)

		last := outcomes[len(outcomes)-1]
		if last {
			assert.Equal(t, models.StreakWin, streak.Type)
		} else {
			assert.Equal(t, models.StreakLoss, streak.Type)
		}
	}
}
