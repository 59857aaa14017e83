package elevenlabs

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by the client.
var (
	ErrNotConfigured = errors.New("ElevenLabs API key or voice ID is not configured")
	ErrEmptyText     = errors.New("text content is required for speech generation")
	ErrEmptyAudio    = errors.New("received empty audio response from ElevenLabs")

	ErrUnauthorized  = errors.New("elevenlabs: unauthorized")
	ErrVoiceNotFound = errors.New("elevenlabs: voice not found")
	ErrBadRequest    = errors.New("elevenlabs: bad request")
	ErrRateLimited   = errors.New("elevenlabs: rate limited")
	ErrServer        = errors.New("elevenlabs: api error")
)

// APIError describes a non-2xx response. It unwraps to one of the status
// sentinels above and its message is safe to show to an operator.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
	kind       error
}

func newAPIError(resp *http.Response, body string) *APIError {
	e := &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: body}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		e.kind = ErrUnauthorized
	case http.StatusNotFound:
		e.kind = ErrVoiceNotFound
	case http.StatusBadRequest:
		e.kind = ErrBadRequest
	case http.StatusTooManyRequests:
		e.kind = ErrRateLimited
	default:
		e.kind = ErrServer
	}
	return e
}

func (e *APIError) Error() string {
	switch e.kind {
	case ErrUnauthorized:
		return "Invalid ElevenLabs API key - please check your configuration"
	case ErrVoiceNotFound:
		return "Invalid Voice ID - please check your ElevenLabs voice configuration"
	case ErrBadRequest:
		return "Bad request to ElevenLabs API - check text content"
	case ErrRateLimited:
		return "ElevenLabs API rate limit exceeded - please try again later"
	default:
		return fmt.Sprintf("ElevenLabs API error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func (e *APIError) Unwrap() error {
	return e.kind
}
