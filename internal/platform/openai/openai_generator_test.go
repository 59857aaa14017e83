package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/lumen-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gen, err := NewGenerator(nil, Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1", ModelName: "gpt-4o-mini"})
	require.NoError(t, err)
	return gen
}

func writeCompletion(w http.ResponseWriter, content, finish string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
	})
}

func TestNewGeneratorRequiresCredentials(t *testing.T) {
	_, err := NewGenerator(nil, Config{ModelName: "gpt-4o"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewGenerator(nil, Config{APIKey: "sk-test"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGenerate(t *testing.T) {
	var body struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		MaxTokens   int     `json:"max_completion_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeCompletion(w, `{"title":"Cells"}`, "stop")
	})

	resp, err := gen.Generate(context.Background(), generation.Request{Prompt: "teach cells", Temperature: 0.8})

	require.NoError(t, err)
	assert.Equal(t, `{"title":"Cells"}`, resp.Text)
	assert.Equal(t, "gpt-4o-mini", body.Model)
	assert.Equal(t, float32(0.8), body.Temperature)
	assert.Equal(t, generation.DefaultMaxTokens, body.MaxTokens)
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Equal(t, generation.DefaultSystemInstruction, body.Messages[0].Content)
	assert.Equal(t, "teach cells", body.Messages[1].Content)
}

func TestGenerateMapsFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content string
		finish  string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, "", "", generation.ErrInvalidConfig},
		{"rate limited", http.StatusTooManyRequests, "", "", generation.ErrTransientFailure},
		{"server error", http.StatusInternalServerError, "", "", generation.ErrTransientFailure},
		{"bad request", http.StatusBadRequest, "", "", generation.ErrGenerationFailed},
		{"content filter", http.StatusOK, "partial", "content_filter", generation.ErrContentBlocked},
		{"empty content", http.StatusOK, "", "stop", generation.ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			gen := newTestGenerator(t, func(w http.ResponseWriter, _ *http.Request) {
				calls++
				if tt.status != http.StatusOK {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(tt.status)
					_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"test_error"}}`))
					return
				}
				writeCompletion(w, tt.content, tt.finish)
			})

			_, err := gen.Generate(context.Background(), generation.Request{Prompt: "p"})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, calls, "generator must not retry")
		})
	}
}
