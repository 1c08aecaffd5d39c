package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookiebench/pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name     string
	response string
	err      error
	failures int // fail this many calls before succeeding
	calls    int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if s.calls <= s.failures {
		return "", errors.New("transient failure")
	}
	return s.response, nil
}

func testGame() *models.Game {
	return &models.Game{
		GameID:   "401705001",
		GameDate: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		HomeTeam: "Boston Celtics",
		AwayTeam: "Los Angeles Lakers",
	}
}

func TestPanelPredictGame(t *testing.T) {
	good := &stubProvider{
		name:     "ChatGPT",
		response: `{"winner": "Boston Celtics", "confidence": 70, "reasoning": "Depth."}`,
	}
	broken := &stubProvider{name: "Grok", err: errors.New("api down")}
	garbage := &stubProvider{name: "Gemini", response: "no json here"}

	panel := NewPanel(good, broken, garbage)
	picks := panel.PredictGame(context.Background(), testGame())

	// one provider down and one unparsable still yields the good pick
	require.Len(t, picks, 1)
	pick := picks[0]
	assert.Equal(t, "ChatGPT", pick.ModelName)
	assert.Equal(t, "401705001", pick.GameID)
	assert.Equal(t, "Boston Celtics", pick.PredictedWinner)
	assert.Equal(t, 70, pick.Confidence)
}

func TestPanelRetriesTransientFailures(t *testing.T) {
	flaky := &stubProvider{
		name:     "Claude",
		response: `{"winner": "Los Angeles Lakers", "confidence": 58}`,
		failures: 1,
	}

	panel := NewPanel(flaky)
	picks := panel.PredictGame(context.Background(), testGame())

	require.Len(t, picks, 1)
	assert.Equal(t, "Los Angeles Lakers", picks[0].PredictedWinner)
	assert.Equal(t, 2, flaky.calls)
}

func TestGenerateScript(t *testing.T) {
	p := &stubProvider{name: "ChatGPT", response: "THE MACHINES HAVE DECIDED."}

	panel := NewPanel(p)
	script, err := panel.GenerateScript(context.Background(), "write something")
	require.NoError(t, err)
	assert.Equal(t, "THE MACHINES HAVE DECIDED.", script)
}
