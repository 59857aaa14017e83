package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"fenced object", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare array", `[{"a":1},{"a":2}]`, `[{"a":1},{"a":2}]`},
		{"array with prose", "Here you go:\n[1,2]\nEnjoy", `[1,2]`},
		{"object containing array", `{"xs":[1,2]}`, `{"xs":[1,2]}`},
		{"no json", "  sorry  ", "sorry"},
		{"unclosed", `{"a":`, `{"a":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}

func TestRequestWithDefaults(t *testing.T) {
	req := Request{Prompt: "p"}.WithDefaults()
	assert.Equal(t, DefaultSystemInstruction, req.SystemInstruction)
	assert.Equal(t, DefaultTemperature, req.Temperature)
	assert.Equal(t, DefaultMaxTokens, req.MaxTokens)

	custom := Request{Prompt: "p", SystemInstruction: "s", Temperature: 0.2, MaxTokens: 10}.WithDefaults()
	assert.Equal(t, "s", custom.SystemInstruction)
	assert.Equal(t, float32(0.2), custom.Temperature)
	assert.Equal(t, 10, custom.MaxTokens)
}

func TestGenerateJSON(t *testing.T) {
	t.Run("appends suffix and parses", func(t *testing.T) {
		var seen Request
		gen := GeneratorFunc(func(_ context.Context, req Request) (*Response, error) {
			seen = req
			return &Response{Text: "```json\n{\"ok\": true}\n```"}, nil
		})

		parsed, err := GenerateJSON(context.Background(), gen, Request{Prompt: "give json"})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"ok": true}, parsed)
		assert.Equal(t, "give json"+JSONOnlySuffix, seen.Prompt)
	})

	t.Run("parse failure is invalid response", func(t *testing.T) {
		gen := GeneratorFunc(func(context.Context, Request) (*Response, error) {
			return &Response{Text: "not json at all"}, nil
		})

		_, err := GenerateJSON(context.Background(), gen, Request{Prompt: "x"})

		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("generator error passes through", func(t *testing.T) {
		gen := GeneratorFunc(func(context.Context, Request) (*Response, error) {
			return nil, ErrContentBlocked
		})

		_, err := GenerateJSON(context.Background(), gen, Request{Prompt: "x"})

		assert.True(t, errors.Is(err, ErrContentBlocked))
	})
}

func TestUnwrapList(t *testing.T) {
	arr := []any{"a"}
	assert.Equal(t, arr, unwrapList(arr, "questions"))
	assert.Equal(t, arr, unwrapList(map[string]any{"questions": arr}, "questions"))
	assert.Empty(t, unwrapList(map[string]any{"other": arr}, "questions"))
	assert.Empty(t, unwrapList("text", "questions"))
}

func TestValidateSchemas(t *testing.T) {
	assert.NoError(t, validate(schemaLesson, map[string]any{"explanation": "text", "summary": []any{"a"}}))
	assert.NoError(t, validate(schemaLesson, map[string]any{"explanation": "text", "summary": []any{}, "keyPoints": []any{"k"}}))
	assert.ErrorIs(t, validate(schemaLesson, map[string]any{"title": "only"}), ErrInvalidResponse)
	assert.ErrorIs(t, validate(schemaLesson, map[string]any{"explanation": "text"}), ErrInvalidResponse)
	assert.ErrorIs(t, validate(schemaLesson, map[string]any{"explanation": "text", "summary": []any{}}), ErrInvalidResponse)

	options := []any{"A", "B", "C", "D"}
	assert.NoError(t, validate(schemaQuiz, []any{map[string]any{"question": "q", "options": options, "correct": "A"}}))
	assert.ErrorIs(t, validate(schemaQuiz, []any{}), ErrInvalidResponse)
	assert.ErrorIs(t, validate(schemaQuiz, []any{map[string]any{"question": "q", "options": []any{"A", "B"}, "correct": "A"}}), ErrInvalidResponse)

	assert.NoError(t, validate(schemaFlashcards, []any{map[string]any{"front": "f", "back": "b"}}))
	assert.ErrorIs(t, validate(schemaFlashcards, []any{map[string]any{"front": "f"}}), ErrInvalidResponse)
	assert.ErrorIs(t, validate(schemaFlashcards, []any{}), ErrInvalidResponse)

	_, err := compiledSchema("missing")
	assert.Error(t, err)
}

func TestUnavailable(t *testing.T) {
	gen := Unavailable(ErrInvalidConfig)

	resp, err := gen.Generate(context.Background(), Request{Prompt: "x"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
