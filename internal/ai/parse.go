package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"bookiebench/pipeline/internal/models"
)

const maxReasoningLen = 500

// ParsedPrediction is a validated winner pick extracted from raw model output
type ParsedPrediction struct {
	Winner     string
	Confidence int
	Reasoning  string
}

type rawPrediction struct {
	Winner     string      `json:"winner"`
	Confidence json.Number `json:"confidence"`
	Reasoning  string      `json:"reasoning"`
}

// ParsePrediction extracts the JSON pick from a model response. Models
// often wrap the JSON in prose, so everything outside the outermost
// braces is discarded. The winner must match one of the two team names,
// case-insensitively, in either containment direction.
func ParsePrediction(response, homeTeam, awayTeam string) (*ParsedPrediction, error) {
	text := strings.TrimSpace(response)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var raw rawPrediction
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode prediction JSON: %w", err)
	}

	winner, err := matchTeam(raw.Winner, homeTeam, awayTeam)
	if err != nil {
		return nil, err
	}

	confidence := models.MinConfidence
	if raw.Confidence != "" {
		f, err := raw.Confidence.Float64()
		if err != nil {
			return nil, fmt.Errorf("confidence is not numeric: %w", err)
		}
		confidence = models.ClampConfidence(int(f))
	}

	reasoning := strings.TrimSpace(raw.Reasoning)
	if len(reasoning) > maxReasoningLen {
		reasoning = reasoning[:maxReasoningLen]
	}

	return &ParsedPrediction{
		Winner:     winner,
		Confidence: confidence,
		Reasoning:  reasoning,
	}, nil
}

func matchTeam(pick, homeTeam, awayTeam string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(pick))
	if p == "" {
		return "", fmt.Errorf("response has no winner")
	}

	home := strings.ToLower(homeTeam)
	away := strings.ToLower(awayTeam)

	switch {
	case strings.Contains(home, p) || strings.Contains(p, home):
		return homeTeam, nil
	case strings.Contains(away, p) || strings.Contains(p, away):
		return awayTeam, nil
	default:
		return "", fmt.Errorf("winner %q matches neither %q nor %q", pick, homeTeam, awayTeam)
	}
}
