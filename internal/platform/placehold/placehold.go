// Package placehold builds diagram image URLs on the placehold.co service.
package placehold

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode"

	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
)

const (
	baseURL     = "https://placehold.co/800x600/4F46E5/FFFFFF"
	labelPrefix = "Educational Diagram: "
	labelChars  = 30
)

// PromptEnhancer turns a topic into a richer diagram description.
type PromptEnhancer interface {
	GenerateImagePrompt(ctx context.Context, topic string) (string, error)
}

// Generator returns placeholder diagram URLs. When an enhancer is set it is
// asked for a diagram description first; any failure there falls back to the
// plain placeholder, so Generate never returns an error.
type Generator struct {
	enhancer PromptEnhancer
	logger   *slog.Logger
}

// NewGenerator creates a Generator. enhancer may be nil.
func NewGenerator(enhancer PromptEnhancer, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		enhancer: enhancer,
		logger:   log.With(slog.String("component", "placeholder_images")),
	}
}

// GenerateImage returns the image URL for prompt.
func (g *Generator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if g.enhancer == nil {
		log.DebugContext(ctx, "no prompt enhancer configured, using placeholder")
		return URL(prompt), nil
	}

	enhanced, err := g.enhancer.GenerateImagePrompt(ctx, prompt)
	if err != nil {
		log.WarnContext(ctx, "diagram prompt enhancement failed, using placeholder",
			slog.String("error", err.Error()))
		return URL(prompt), nil
	}
	log.DebugContext(ctx, "enhanced diagram prompt", slog.Int("length", len(enhanced)))
	return URL(prompt), nil
}

// URL builds the placeholder address labelled with the first 30 characters of
// prompt, keeping only letters, digits and whitespace.
func URL(prompt string) string {
	short := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r)) {
			return r
		}
		return -1
	}, domain.TruncateRunes(prompt, labelChars))

	return fmt.Sprintf("%s?text=%s&font=raleway", baseURL, encodeComponent(labelPrefix+short))
}

// encodeComponent escapes s for a query value using %20 for spaces.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
