package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatsReflectCheckIns(t *testing.T) {
	fiberApp := newTestApp(t)
	token := tokenFor(t, 1)
	readID := createHabit(t, fiberApp, token, map[string]any{"title": "Read", "frequency": "daily"})
	createHabit(t, fiberApp, token, map[string]any{"title": "Walk", "frequency": "daily"})

	status, body := doJSON(t, fiberApp, http.MethodPost, "/api/logs", token, map[string]any{"habit_id": readID})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = doJSON(t, fiberApp, http.MethodGet, "/api/stats/overview", token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	overview := decodeBody[map[string]int](t, body)
	require.Equal(t, 2, overview["active_habits"])
	require.Equal(t, 2, overview["due_today"])
	require.Equal(t, 1, overview["completed_today"])
	require.Equal(t, 50, overview["today_rate"])
	require.Equal(t, 1, overview["total_completions"])

	status, body = doJSON(t, fiberApp, http.MethodGet, "/api/stats/completion-rate", token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	require.Equal(t, float64(100), decodeBody[map[string]any](t, body)["rate"])
}

func TestCompletionChartIsZeroFilled(t *testing.T) {
	fiberApp := newTestApp(t)
	token := tokenFor(t, 1)

	to := time.Now().UTC().Format("2006-01-02")
	from := time.Now().UTC().AddDate(0, 0, -6).Format("2006-01-02")
	status, body := doJSON(t, fiberApp, http.MethodGet, "/api/stats/chart?from="+from+"&to="+to, token, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	buckets := decodeBody[[]map[string]any](t, body)
	require.Len(t, buckets, 7)
	for _, bucket := range buckets {
		require.Equal(t, float64(0), bucket["completed"])
	}
}

func TestStatsRejectBadQueries(t *testing.T) {
	fiberApp := newTestApp(t)
	token := tokenFor(t, 1)

	status, _ := doJSON(t, fiberApp, http.MethodGet, "/api/stats/chart?habit_id=abc", token, nil)
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, fiberApp, http.MethodGet, "/api/stats/completion-rate?from=2020-01-01&to=2026-01-01", token, nil)
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, fiberApp, http.MethodGet, "/api/stats/completion-rate?habit_id=999", token, nil)
	require.Equal(t, http.StatusNotFound, status)
}
