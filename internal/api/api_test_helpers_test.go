package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/habitflow/internal/app"
	"github.com/terraincognita07/habitflow/internal/db"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "habitflow.db"))
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	handler, err := NewHandler(app.NewServices(database, time.UTC), testSecretKey)
	require.NoError(t, err)

	fiberApp := fiber.New()
	RegisterRoutes(fiberApp, handler)
	return fiberApp
}

func tokenFor(t *testing.T, userID uint) string {
	t.Helper()

	token, err := IssueToken(testSecretKey, userID, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, fiberApp *fiber.App, method string, path string, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := fiberApp.Test(request, -1)
	require.NoError(t, err)
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return response.StatusCode, content
}

func decodeBody[T any](t *testing.T, content []byte) T {
	t.Helper()

	var value T
	require.NoError(t, json.Unmarshal(content, &value), "body: %s", string(content))
	return value
}

func createHabit(t *testing.T, fiberApp *fiber.App, token string, payload map[string]any) uint {
	t.Helper()

	status, body := doJSON(t, fiberApp, http.MethodPost, "/api/habits", token, payload)
	require.Equal(t, http.StatusCreated, status, string(body))

	created := decodeBody[struct {
		Habit struct {
			ID uint `json:"id"`
		} `json:"habit"`
	}](t, body)
	require.NotZero(t, created.Habit.ID)
	return created.Habit.ID
}
