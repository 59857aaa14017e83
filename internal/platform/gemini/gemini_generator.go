package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/lumen-api/internal/generation"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"google.golang.org/genai"
)

// contentAPI is the subset of *genai.Models used by the generator.
type contentAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Config holds the settings needed to talk to Gemini.
type Config struct {
	APIKey    string
	ModelName string
}

// GeminiGenerator implements generation.ContentGenerator using the Gemini API.
type GeminiGenerator struct {
	logger *slog.Logger
	api    contentAPI
	model  string
}

var _ generation.ContentGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a generator with a new Gemini client.
// A missing API key or model name is reported as generation.ErrInvalidConfig.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg Config) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(logger, client.Models, cfg.ModelName), nil
}

func newGenerator(log *slog.Logger, api contentAPI, model string) *GeminiGenerator {
	if log == nil {
		log = slog.Default()
	}
	return &GeminiGenerator{
		logger: log.With(slog.String("component", "gemini_generator")),
		api:    api,
		model:  model,
	}
}

// Generate sends one prompt to Gemini and returns the concatenated text of
// the first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, req generation.Request) (*generation.Response, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)
	req = req.WithDefaults()

	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
		Temperature:     &temperature,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		},
	}
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: req.Prompt}},
	}}

	log.DebugContext(ctx, "calling Gemini",
		slog.String("model", g.model),
		slog.Int("prompt_length", len(req.Prompt)))

	resp, err := g.api.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		mapped := mapError(err)
		log.ErrorContext(ctx, "Gemini API call failed", slog.String("error", mapped.Error()))
		return nil, mapped
	}

	if err := checkResponse(resp); err != nil {
		log.WarnContext(ctx, "Gemini returned no usable content", slog.String("error", err.Error()))
		return nil, err
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}

	return &generation.Response{Text: text, Raw: resp}, nil
}

func checkResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}
	return nil
}

// mapError translates SDK errors into generation sentinels.
func mapError(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: Gemini rejected the API key: %v", generation.ErrInvalidConfig, err)
	case code == http.StatusTooManyRequests, code >= 500:
		return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	default:
		return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
}
