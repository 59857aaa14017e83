package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lumen-api/internal/api/shared"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/generation"
	"github.com/phrazzld/lumen-api/internal/platform/elevenlabs"
	"github.com/phrazzld/lumen-api/internal/service"
	"github.com/phrazzld/lumen-api/internal/service/auth"
	"github.com/phrazzld/lumen-api/internal/store"
)

// errorMapping pairs a sentinel with the status code and client message it maps to.
type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is checked in order with errors.Is; the first match wins.
var errorMappings = []errorMapping{
	// Authentication and authorization
	{auth.ErrMissingToken, http.StatusUnauthorized, "Authorization required"},
	{auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
	{auth.ErrTokenNotYetValid, http.StatusUnauthorized, "Invalid token"},
	{auth.ErrNotTeacher, http.StatusForbidden, "Teacher access required"},

	// Not found
	{service.ErrLessonNotFound, http.StatusNotFound, "Lesson not found"},
	{service.ErrWorksheetNotFound, http.StatusNotFound, "Worksheet not found"},
	{service.ErrFlashcardNotFound, http.StatusNotFound, "Flashcard not found"},
	{service.ErrAudioFileNotFound, http.StatusNotFound, "Audio file not found"},
	{service.ErrImageNotFound, http.StatusNotFound, "Image not found"},
	{store.ErrNotFound, http.StatusNotFound, "Resource not found"},

	// Bad requests
	{service.ErrEmptyQuestion, http.StatusBadRequest, "Question is required"},
	{service.ErrEmptyTopic, http.StatusBadRequest, "Topic is required"},
	{service.ErrEmptyFileName, http.StatusBadRequest, "File name is required"},
	{domain.ErrInvalidID, http.StatusBadRequest, "Invalid ID"},
	{domain.ErrValidation, http.StatusBadRequest, "Validation error"},
	{domain.ErrLessonTitleEmpty, http.StatusBadRequest, "Title cannot be empty"},
	{domain.ErrWorksheetTitleEmpty, http.StatusBadRequest, "Title cannot be empty"},
	{domain.ErrWorksheetLessonIDEmpty, http.StatusBadRequest, "Lesson ID is required"},
	{domain.ErrQuestionTextEmpty, http.StatusBadRequest, "Question text cannot be empty"},
	{domain.ErrInvalidQuestionType, http.StatusBadRequest, "Invalid question type"},
	{domain.ErrFlashcardFrontEmpty, http.StatusBadRequest, "Flashcard front cannot be empty"},
	{domain.ErrFlashcardBackEmpty, http.StatusBadRequest, "Flashcard back cannot be empty"},
	{store.ErrInvalidEntity, http.StatusBadRequest, "Invalid entity data"},
	{shared.ErrEmptyBody, http.StatusBadRequest, "Request body is required"},

	// Conflicts
	{store.ErrDuplicate, http.StatusConflict, "Resource already exists"},

	// Upstream providers
	{generation.ErrInvalidConfig, http.StatusServiceUnavailable, "Content generation is not configured"},
	{generation.ErrTransientFailure, http.StatusServiceUnavailable, "Content generation is temporarily unavailable"},
	{generation.ErrContentBlocked, http.StatusUnprocessableEntity, "Content was blocked by safety filters"},
	{generation.ErrInvalidResponse, http.StatusBadGateway, "Content generation returned an invalid response"},
	{generation.ErrGenerationFailed, http.StatusBadGateway, "Content generation failed"},
	{elevenlabs.ErrNotConfigured, http.StatusServiceUnavailable, "Speech synthesis is not configured"},
	{elevenlabs.ErrRateLimited, http.StatusServiceUnavailable, "Speech synthesis is temporarily unavailable"},
	{elevenlabs.ErrUnauthorized, http.StatusBadGateway, "Speech synthesis failed"},
	{elevenlabs.ErrVoiceNotFound, http.StatusBadGateway, "Speech synthesis failed"},
	{elevenlabs.ErrBadRequest, http.StatusBadGateway, "Speech synthesis failed"},
	{elevenlabs.ErrServer, http.StatusBadGateway, "Speech synthesis failed"},
	{elevenlabs.ErrEmptyAudio, http.StatusBadGateway, "Speech synthesis failed"},
}

const defaultErrorMessage = "An unexpected error occurred"

func lookupError(err error) (errorMapping, bool) {
	if err == nil {
		return errorMapping{}, false
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m, true
		}
	}
	return errorMapping{}, false
}

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing internal error types. Unknown errors are 500s.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest
	}
	if m, ok := lookupError(err); ok {
		return m.status
	}
	return http.StatusInternalServerError
}

// GetSafeErrorMessage returns a client-safe message for err.
func GetSafeErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return SanitizeValidationError(err)
	}
	if m, ok := lookupError(err); ok {
		return m.message
	}
	return defaultErrorMessage
}

// HandleAPIError writes the mapped status and message for err and logs the
// redacted error. defaultMsg replaces the generic message on 500s.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		msg = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}

// SanitizeValidationError turns validator output into a short message naming
// the first offending field and rule.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("Invalid %s: %s", jsonFieldName(verrs[0]), getValidationTagMessage(verrs[0].Tag()))
	}
	return "Validation error"
}

// jsonFieldName drops the request type from a validator namespace such as
// "CreateWorksheetRequest.questions[0].question".
func jsonFieldName(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid UUID"
	case "url":
		return "invalid URL"
	default:
		return "validation failed"
	}
}
