package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
)

// LessonStore defines the interface for lesson persistence.
type LessonStore interface {
	// Create saves a new lesson. Returns ErrInvalidEntity if validation fails.
	Create(ctx context.Context, lesson *domain.Lesson) error

	// GetByID retrieves a lesson by its unique ID.
	// Returns ErrLessonNotFound if the lesson does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)

	// List returns all lessons, newest first.
	List(ctx context.Context) ([]*domain.Lesson, error)

	// Update saves changes to title, subject, content, summary and updated_at.
	// Returns ErrLessonNotFound if the lesson does not exist.
	Update(ctx context.Context, lesson *domain.Lesson) error

	// Delete removes a lesson. Its materials are left in place.
	// Returns ErrLessonNotFound if the lesson does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
