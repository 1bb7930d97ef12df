package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"turni/internal/config"
	"turni/internal/database"
	"turni/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg config.APIConfig) (*httptest.Server, *database.DB) {
	t.Helper()
	logger := zerolog.New(os.Stdout)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := NewHTTPServer(cfg, db, &logger)
	ts := httptest.NewServer(srv.server.Handler)
	t.Cleanup(ts.Close)
	return ts, db
}

func authedConfig() config.APIConfig {
	return config.APIConfig{
		Enabled: true,
		Auth: config.APIAuthConfig{
			Enabled: true,
			APIKeys: []config.APIClientKey{{Key: "secret-key", Name: "dashboard"}},
		},
	}
}

func get(t *testing.T, ts *httptest.Server, path, apiKey string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestAuthRejectsMissingAndInvalidKey(t *testing.T) {
	ts, _ := newTestServer(t, authedConfig())

	resp := get(t, ts, "/api/v1/schedule", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = get(t, ts, "/api/v1/schedule", "wrong-key")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = get(t, ts, "/api/v1/schedule", "secret-key")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimitReturns429(t *testing.T) {
	cfg := authedConfig()
	cfg.RateLimit = config.APIRateLimitConfig{RPS: 0.001, Burst: 2}
	ts, _ := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		resp := get(t, ts, "/api/v1/schedule", "secret-key")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := get(t, ts, "/api/v1/schedule", "secret-key")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRostersValidatesParams(t *testing.T) {
	ts, _ := newTestServer(t, config.APIConfig{Enabled: true})

	cases := []string{
		"/api/v1/rosters",
		"/api/v1/rosters?duty=laundry&from=2025-03-03&to=2025-03-07",
		"/api/v1/rosters?duty=trash&from=2025-03-03",
		"/api/v1/rosters?duty=trash&from=notadate&to=2025-03-07",
		"/api/v1/rosters?duty=trash&from=2025-03-07&to=2025-03-03",
	}
	for _, path := range cases {
		resp := get(t, ts, path, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestRostersReturnsGroupedNames(t *testing.T) {
	ts, db := newTestServer(t, config.APIConfig{Enabled: true})
	ctx := context.Background()

	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	_, err := db.AddBooking(ctx, models.DutyTrash, date, 1, "Anna")
	require.NoError(t, err)
	_, err = db.AddBooking(ctx, models.DutyTrash, date, 2, "Marco")
	require.NoError(t, err)

	resp := get(t, ts, "/api/v1/rosters?duty=trash&from=2025-03-03&to=2025-03-07", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Duty    string              `json:"duty"`
		Rosters map[string][]string `json:"rosters"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, models.DutyTrash, body.Duty)
	assert.Equal(t, []string{"Anna", "Marco"}, body.Rosters["2025-03-05"])
}

func TestLeaderboardEndpoint(t *testing.T) {
	ts, db := newTestServer(t, config.APIConfig{Enabled: true})
	ctx := context.Background()

	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	_, err := db.AddBooking(ctx, models.DutyCoffee, date, 1, "Anna")
	require.NoError(t, err)

	resp := get(t, ts, "/api/v1/leaderboard", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Leaderboard, 1)
	assert.Equal(t, "Anna", body.Leaderboard[0].UserName)
	assert.Equal(t, 1, body.Leaderboard[0].CoffeeCount)
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t, config.APIConfig{Enabled: true})

	resp, err := ts.Client().Post(ts.URL+"/api/v1/schedule", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
