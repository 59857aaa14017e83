// Package openai implements generation.ContentGenerator against the OpenAI
// chat completions API or any endpoint compatible with it.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/lumen-api/internal/generation"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	goopenai "github.com/sashabaranov/go-openai"
)

// Config holds the settings needed to talk to an OpenAI-compatible endpoint.
// An empty BaseURL selects the public OpenAI API.
type Config struct {
	APIKey    string
	BaseURL   string
	ModelName string
}

// Generator implements generation.ContentGenerator with go-openai.
type Generator struct {
	logger *slog.Logger
	client *goopenai.Client
	model  string
}

var _ generation.ContentGenerator = (*Generator)(nil)

// NewGenerator creates a Generator. A missing API key or model name is
// reported as generation.ErrInvalidConfig.
func NewGenerator(log *slog.Logger, cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	config := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &Generator{
		logger: log.With(slog.String("component", "openai_generator")),
		client: goopenai.NewClientWithConfig(config),
		model:  cfg.ModelName,
	}, nil
}

// Generate sends one chat completion request and returns the first choice.
func (g *Generator) Generate(ctx context.Context, req generation.Request) (*generation.Response, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)
	req = req.WithDefaults()

	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: g.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: req.SystemInstruction},
			{Role: goopenai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         req.Temperature,
	})
	if err != nil {
		mapped := mapError(err)
		log.ErrorContext(ctx, "chat completion failed", slog.String("error", mapped.Error()))
		return nil, mapped
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", generation.ErrInvalidResponse)
	}
	choice := resp.Choices[0]
	if choice.FinishReason == goopenai.FinishReasonContentFilter {
		return nil, fmt.Errorf("%w: completion stopped by content filter", generation.ErrContentBlocked)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return nil, fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}

	return &generation.Response{Text: choice.Message.Content, Raw: resp}, nil
}

func mapError(err error) error {
	code := 0
	var apiErr *goopenai.APIError
	var reqErr *goopenai.RequestError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		code = reqErr.HTTPStatusCode
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: endpoint rejected the API key: %v", generation.ErrInvalidConfig, err)
	case code == http.StatusTooManyRequests, code >= 500:
		return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	default:
		return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
}
