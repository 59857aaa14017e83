// Package elevenlabs is a minimal client for the ElevenLabs text-to-speech API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultBaseURL = "https://api.elevenlabs.io"
	DefaultModelID = "eleven_monolingual_v1"
)

// Config holds the credentials and endpoint for the API.
type Config struct {
	APIKey     string
	VoiceID    string
	ModelID    string
	BaseURL    string
	HTTPClient *http.Client
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

var defaultVoiceSettings = voiceSettings{
	Stability:       0.5,
	SimilarityBoost: 0.75,
	Style:           0,
	UseSpeakerBoost: true,
}

// Client calls the text-to-speech endpoint. It makes one request per call and
// never retries.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a Client. Missing credentials are not an error here;
// Synthesize reports ErrNotConfigured instead.
func NewClient(cfg Config, log *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModelID
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: log.With(slog.String("component", "elevenlabs_client")),
	}
}

// Configured reports whether both the API key and voice id are set.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.VoiceID != ""
}

// Synthesize converts text to MP3 audio. Text longer than
// domain.MaxSpeechChars characters is truncated before sending.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	speak := strings.TrimSpace(domain.TruncateRunes(text, domain.MaxSpeechChars))
	if speak == "" {
		return nil, ErrEmptyText
	}

	payload, err := json.Marshal(ttsRequest{
		Text:          speak,
		ModelID:       c.cfg.ModelID,
		VoiceSettings: defaultVoiceSettings,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal speech request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build speech request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.cfg.APIKey)

	log.DebugContext(ctx, "requesting speech synthesis", slog.Int("text_length", len([]rune(speak))))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := newAPIError(resp, string(body))
		log.WarnContext(ctx, "speech synthesis rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("error", apiErr.Error()))
		return nil, apiErr
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}
	return audio, nil
}
