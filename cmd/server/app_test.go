package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/lumen-api/internal/config"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/service"
	"github.com/phrazzld/lumen-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

// testConfig uses the in-memory store and local media, with no provider
// credentials so content generation is unavailable.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "error"},
		Database: config.DatabaseConfig{Backend: "memory"},
		Auth:     config.AuthConfig{JWTSecret: testJWTSecret, TokenLifetimeMinutes: 60},
		LLM:      config.LLMConfig{Provider: "gemini", ModelName: "gemini-1.5-flash"},
		Media: config.MediaConfig{
			Backend:       "local",
			LocalDir:      t.TempDir(),
			PublicBaseURL: "http://localhost:8080/media",
		},
		Generation: config.GenerationConfig{
			WorkerCount:         1,
			QueueSize:           10,
			LessonFailurePolicy: "soft",
			AudioFailurePolicy:  "soft",
			ImageFailurePolicy:  "loud",
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	app, err := newApplication(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

func serve(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewApplication(t *testing.T) {
	t.Run("memory backend with local media", func(t *testing.T) {
		app := newTestApp(t, testConfig(t))

		assert.Nil(t, app.db)
		assert.Nil(t, app.redis)
		assert.Nil(t, app.gcs)
		assert.Nil(t, app.taskRunner)
		require.NotNil(t, app.localMedia)
		assert.NotNil(t, app.services.Generator)
		assert.NotNil(t, app.services.Media)
	})

	t.Run("auto media starts the task runner", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Generation.AutoMedia = true

		app := newTestApp(t, cfg)
		assert.NotNil(t, app.taskRunner)
	})

	t.Run("unknown failure policy", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Generation.LessonFailurePolicy = "sometimes"

		_, err := newApplication(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lesson failure policy")
	})

	t.Run("unusable redis url", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Cache.RedisURL = "http://localhost:6379"

		_, err := newApplication(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "materials cache")
	})

	t.Run("weak jwt secret", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Auth.JWTSecret = "short"

		_, err := newApplication(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrWeakSecret)
	})
}

func TestRouterOperationalEndpoints(t *testing.T) {
	app := newTestApp(t, testConfig(t))
	router := app.setupRouter()

	rec := serve(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = serve(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lumen_http_requests_total")
}

func TestRouterServesLocalMedia(t *testing.T) {
	app := newTestApp(t, testConfig(t))
	router := app.setupRouter()

	path := filepath.Join(app.localMedia.Dir(), "narration.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3 audio"), 0o600))

	rec := serve(t, router, http.MethodGet, "/media/narration.mp3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ID3 audio", rec.Body.String())

	rec = serve(t, router, http.MethodGet, "/media/missing.mp3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Without provider credentials every lesson falls back to the fixed content,
// which exercises the whole pipeline against the in-memory store.
func TestRouterLessonLifecycle(t *testing.T) {
	app := newTestApp(t, testConfig(t))
	router := app.setupRouter()

	rec := serve(t, router, http.MethodPost, "/api/lessons/generate", `{"question":"What is photosynthesis?"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result service.LessonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Degraded)
	require.NotNil(t, result.Lesson)
	assert.Equal(t, "What is photosynthesis?", result.Lesson.Title)
	assert.Len(t, result.Quiz, 1)
	assert.Len(t, result.Flashcards, 1)

	lessonPath := "/api/lessons/" + result.Lesson.ID.String()

	rec = serve(t, router, http.MethodGet, "/api/lessons", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var lessons []domain.Lesson
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lessons))
	assert.Len(t, lessons, 1)

	rec = serve(t, router, http.MethodGet, lessonPath+"/materials", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var materials domain.LessonWithMaterials
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &materials))
	assert.Len(t, materials.Worksheets, 1)
	assert.Len(t, materials.Flashcards, 1)
	assert.Empty(t, materials.AudioFiles)

	rec = serve(t, router, http.MethodDelete, lessonPath, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := app.jwtService.GenerateToken(context.Background(), "teacher", auth.RoleTeacher)
	require.NoError(t, err)

	rec = serve(t, router, http.MethodDelete, lessonPath, "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(t, router, http.MethodGet, lessonPath, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterLessonFailLoud(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generation.LessonFailurePolicy = "loud"
	router := newTestApp(t, cfg).setupRouter()

	rec := serve(t, router, http.MethodPost, "/api/lessons/generate", `{"question":"What is photosynthesis?"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, rec.Body.String())

	rec = serve(t, router, http.MethodGet, "/api/lessons", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
