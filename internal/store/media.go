package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
)

// AudioFileStore defines the interface for narration metadata persistence.
type AudioFileStore interface {
	Create(ctx context.Context, audio *domain.AudioFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AudioFile, error)
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.AudioFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImageStore defines the interface for generated diagram persistence.
type ImageStore interface {
	Create(ctx context.Context, img *domain.GeneratedImage) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedImage, error)
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.GeneratedImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Stores bundles one implementation of every store so backends can be swapped as a unit.
type Stores struct {
	Lessons    LessonStore
	Worksheets WorksheetStore
	Flashcards FlashcardStore
	AudioFiles AudioFileStore
	Images     ImageStore
}
