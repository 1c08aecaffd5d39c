package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scoreboardFixture = `{
	"events": [
		{
			"id": "401705001",
			"competitions": [{
				"competitors": [
					{"homeAway": "home", "score": "112", "team": {"abbreviation": "GS", "displayName": "Golden State Warriors"}},
					{"homeAway": "away", "score": "104", "team": {"abbreviation": "LAL", "displayName": "Los Angeles Lakers"}}
				],
				"odds": [{"details": "GSW -4.5", "spread": -4.5}],
				"status": {"type": {"completed": true}}
			}]
		},
		{
			"id": "401705002",
			"competitions": [{
				"competitors": [
					{"homeAway": "home", "score": "0", "team": {"abbreviation": "BOS", "displayName": "Boston Celtics"}},
					{"homeAway": "away", "score": "0", "team": {"abbreviation": "NY", "displayName": "New York Knicks"}}
				],
				"odds": [],
				"status": {"type": {"completed": false}}
			}]
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func fixtureHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20260114", r.URL.Query().Get("dates"))
		w.Write([]byte(scoreboardFixture))
	}
}

func testDate() time.Time {
	return time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC)
}

func TestGamesForDate(t *testing.T) {
	c := newTestClient(t, fixtureHandler(t))

	games, err := c.GamesForDate(context.Background(), testDate())
	require.NoError(t, err)
	require.Len(t, games, 2)

	first := games[0]
	assert.Equal(t, "401705001", first.GameID)
	assert.Equal(t, "GSW", first.HomeAbbrev)
	assert.Equal(t, "LAL", first.AwayAbbrev)
	assert.Equal(t, "Golden State Warriors", first.HomeTeam)
	assert.Equal(t, testDate(), first.GameDate)

	// ESPN's NY normalizes to the standard NYK
	assert.Equal(t, "NYK", games[1].AwayAbbrev)
}

func TestOddsForDate(t *testing.T) {
	c := newTestClient(t, fixtureHandler(t))

	lines, err := c.OddsForDate(context.Background(), testDate())
	require.NoError(t, err)
	require.Len(t, lines, 1)

	line := lines["401705001"]
	assert.Equal(t, "Golden State Warriors", line.Favorite)
	assert.Equal(t, 4.5, line.Spread)
}

func TestResultsForDate(t *testing.T) {
	c := newTestClient(t, fixtureHandler(t))

	results, err := c.ResultsForDate(context.Background(), testDate())
	require.NoError(t, err)
	require.Len(t, results, 1, "in-progress games must be excluded")

	res := results[0]
	assert.Equal(t, "401705001", res.GameID)
	assert.Equal(t, "Golden State Warriors", res.Winner)
	assert.Equal(t, 112, res.HomeScore)
	assert.Equal(t, 104, res.AwayScore)
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(scoreboardFixture))
	})

	games, err := c.GamesForDate(context.Background(), testDate())
	require.NoError(t, err)
	assert.Len(t, games, 2)
	assert.Equal(t, 2, calls)
}

func TestGetDoesNotRetryClientError(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := c.GamesForDate(context.Background(), testDate())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestParseOddsFromDetails(t *testing.T) {
	line, ok := parseOdds(oddsEntry{Details: "BOS -5.5"}, "Boston Celtics", "New York Knicks")
	require.True(t, ok)
	assert.Equal(t, "Boston Celtics", line.Favorite)
	assert.Equal(t, 5.5, line.Spread)

	_, ok = parseOdds(oddsEntry{}, "Boston Celtics", "New York Knicks")
	assert.False(t, ok)
}
