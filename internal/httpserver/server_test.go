package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/driftlab/beacon-analytics/internal/analytics"
	"github.com/driftlab/beacon-analytics/internal/config"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Auth:      config.AuthConfig{Enabled: false},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Metrics:   config.MetricsConfig{Enabled: false},
	}
	return NewServer(&Dependencies{Config: cfg, Logger: zap.NewNop()})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestCampaignIngestAndLeaderboard(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/links", map[string]interface{}{
		"code": "l1", "total_clicks": 42, "unique_clicks": 30,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/campaigns", map[string]interface{}{
		"id": "c1", "owner_user_id": "alice", "link_code": "l1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/reports/leaderboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var board []analytics.OwnerAggregate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	require.Len(t, board, 1)
	assert.Equal(t, "alice", board[0].OwnerKey)
	assert.Equal(t, int64(42), board[0].TotalClicks)
	assert.Equal(t, analytics.TierGold, board[0].Tier)
}

func TestCampaignValidation(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/campaigns", map[string]interface{}{"id": "c1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCampaignByID(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/campaigns", map[string]interface{}{
		"id": "c1", "owner_user_id": "alice",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/campaigns/c1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/campaigns/c1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/campaigns/c1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProviderReport(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/billing/deposits", map[string]interface{}{
		"provider_name": "openai", "amount_usd": 100,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/billing/usage", map[string]interface{}{
		"provider_name": "openai", "cost_usd": 10,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/reports/providers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []analytics.ProviderBalance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.InDelta(t, 90.0, rows[0].CurrentBalance, 1e-9)
}

func TestLeaderboardRejectsUnknownMetric(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/reports/leaderboard?metric=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDepositValidation(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/billing/deposits", map[string]interface{}{
		"provider_name": "openai", "amount_usd": -5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{
		Auth:      config.AuthConfig{Enabled: true, MasterKey: "secret", SkipPaths: []string{"/health"}},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Metrics:   config.MetricsConfig{Enabled: false},
	}
	h := NewServer(&Dependencies{Config: cfg, Logger: zap.NewNop()})

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/campaigns", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/campaigns", nil)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
