package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/lumen-api/internal/store"
)

// Sentinel errors returned by the services. The API layer maps them to status codes.
var (
	// ErrEmptyQuestion is returned when a lesson is requested for a blank question.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrEmptyTopic is returned when worksheet or flashcard generation gets a blank topic.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrEmptyFileName is returned when a teacher upload has no usable name.
	ErrEmptyFileName = errors.New("file name cannot be empty")

	ErrLessonNotFound    = errors.New("lesson not found")
	ErrWorksheetNotFound = errors.New("worksheet not found")
	ErrFlashcardNotFound = errors.New("flashcard not found")
	ErrAudioFileNotFound = errors.New("audio file not found")
	ErrImageNotFound     = errors.New("generated image not found")
)

// notFoundErrors maps store-level not found errors onto service sentinels.
var notFoundErrors = []struct {
	store, service error
}{
	{store.ErrLessonNotFound, ErrLessonNotFound},
	{store.ErrWorksheetNotFound, ErrWorksheetNotFound},
	{store.ErrFlashcardNotFound, ErrFlashcardNotFound},
	{store.ErrAudioFileNotFound, ErrAudioFileNotFound},
	{store.ErrImageNotFound, ErrImageNotFound},
}

// ServiceError wraps an unexpected failure with the service and operation it came from.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err in a ServiceError.
// Not found conditions are returned as the matching service sentinel without wrapping,
// and a nil err yields nil.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, m := range notFoundErrors {
		if errors.Is(err, m.service) || errors.Is(err, m.store) {
			return m.service
		}
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
