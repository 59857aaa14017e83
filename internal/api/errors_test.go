package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/lumen-api/internal/api/shared"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/generation"
	"github.com/phrazzld/lumen-api/internal/platform/elevenlabs"
	"github.com/phrazzld/lumen-api/internal/service"
	"github.com/phrazzld/lumen-api/internal/service/auth"
	"github.com/phrazzld/lumen-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"nil", nil, http.StatusInternalServerError, defaultErrorMessage},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, defaultErrorMessage},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"not a teacher", auth.ErrNotTeacher, http.StatusForbidden, "Teacher access required"},
		{"lesson not found", service.ErrLessonNotFound, http.StatusNotFound, "Lesson not found"},
		{"wrapped store not found", fmt.Errorf("lookup: %w", store.ErrWorksheetNotFound), http.StatusNotFound, "Resource not found"},
		{"empty question", service.ErrEmptyQuestion, http.StatusBadRequest, "Question is required"},
		{"invalid id", fmt.Errorf("id: %w", domain.ErrInvalidID), http.StatusBadRequest, "Invalid ID"},
		{"domain validation", domain.ErrLessonTitleEmpty, http.StatusBadRequest, "Title cannot be empty"},
		{
			"invalid entity in service error",
			&service.ServiceError{Service: "lesson", Operation: "update_lesson", Message: "x", Err: store.ErrInvalidEntity},
			http.StatusBadRequest, "Invalid entity data",
		},
		{"duplicate", store.ErrDuplicate, http.StatusConflict, "Resource already exists"},
		{"provider not configured", generation.ErrInvalidConfig, http.StatusServiceUnavailable, "Content generation is not configured"},
		{"blocked", generation.ErrContentBlocked, http.StatusUnprocessableEntity, "Content was blocked by safety filters"},
		{"unparseable reply", fmt.Errorf("quiz: %w", generation.ErrInvalidResponse), http.StatusBadGateway, "Content generation returned an invalid response"},
		{"speech rate limited", elevenlabs.ErrRateLimited, http.StatusServiceUnavailable, "Speech synthesis is temporarily unavailable"},
		{"speech server error", elevenlabs.ErrServer, http.StatusBadGateway, "Speech synthesis failed"},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest, "Request body is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.message, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestValidationErrorsMapToBadRequest(t *testing.T) {
	err := shared.ValidateRequest(GenerateLessonRequest{})
	require.Error(t, err)

	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(err))
	assert.Equal(t, "Invalid question: required field", GetSafeErrorMessage(err))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}

func TestHandleAPIErrorNeverLeaksDetails(t *testing.T) {
	err := &service.ServiceError{
		Service:   "lesson",
		Operation: "generate_lesson",
		Message:   "failed to save lesson",
		Err:       errors.New("dial postgres://lumen:s3cret@db:5432/lumen: connection refused"),
	}
	req := httptest.NewRequest(http.MethodPost, "/api/lessons/generate", nil)
	rr := httptest.NewRecorder()

	HandleAPIError(rr, req, err, "Failed to generate lesson")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to generate lesson", errorMessage(t, rr))
	assert.NotContains(t, rr.Body.String(), "s3cret")
	assert.NotContains(t, rr.Body.String(), "postgres")

	rr = httptest.NewRecorder()
	HandleAPIError(rr, req, service.ErrLessonNotFound, "Failed to generate lesson")
	assert.Equal(t, "Lesson not found", errorMessage(t, rr))
}
