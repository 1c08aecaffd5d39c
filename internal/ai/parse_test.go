package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	homeTeam = "Boston Celtics"
	awayTeam = "Los Angeles Lakers"
)

func TestParsePrediction(t *testing.T) {
	resp := `{"winner": "Boston Celtics", "confidence": 72, "reasoning": "Home court and a healthier roster."}`

	parsed, err := ParsePrediction(resp, homeTeam, awayTeam)
	require.NoError(t, err)

	assert.Equal(t, homeTeam, parsed.Winner)
	assert.Equal(t, 72, parsed.Confidence)
	assert.Equal(t, "Home court and a healthier roster.", parsed.Reasoning)
}

func TestParsePredictionWrappedInProse(t *testing.T) {
	resp := "Sure, here is my pick:\n```json\n" +
		`{"winner": "Lakers", "confidence": 65, "reasoning": "Momentum."}` +
		"\n```\nGood luck!"

	parsed, err := ParsePrediction(resp, homeTeam, awayTeam)
	require.NoError(t, err)

	// partial name resolves to the full away team
	assert.Equal(t, awayTeam, parsed.Winner)
	assert.Equal(t, 65, parsed.Confidence)
}

func TestParsePredictionClampsConfidence(t *testing.T) {
	tests := []struct {
		name string
		resp string
		want int
	}{
		{"below range", `{"winner": "Boston Celtics", "confidence": 30}`, 50},
		{"above range", `{"winner": "Boston Celtics", "confidence": 110}`, 100},
		{"missing defaults to floor", `{"winner": "Boston Celtics"}`, 50},
		{"float accepted", `{"winner": "Boston Celtics", "confidence": 77.5}`, 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParsePrediction(tt.resp, homeTeam, awayTeam)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.Confidence)
		})
	}
}

func TestParsePredictionErrors(t *testing.T) {
	tests := []struct {
		name string
		resp string
	}{
		{"no JSON at all", "I think the Celtics win tonight."},
		{"invalid JSON", `{"winner": "Boston Celtics", "confidence":}`},
		{"unmatchable winner", `{"winner": "Chicago Bulls", "confidence": 60}`},
		{"empty winner", `{"confidence": 60}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePrediction(tt.resp, homeTeam, awayTeam)
			assert.Error(t, err)
		})
	}
}

func TestParsePredictionTruncatesReasoning(t *testing.T) {
	long := strings.Repeat("x", 600)
	resp := `{"winner": "Boston Celtics", "confidence": 60, "reasoning": "` + long + `"}`

	parsed, err := ParsePrediction(resp, homeTeam, awayTeam)
	require.NoError(t, err)
	assert.Len(t, parsed.Reasoning, maxReasoningLen)
}
