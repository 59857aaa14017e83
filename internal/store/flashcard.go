package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
)

// FlashcardStore defines the interface for flashcard persistence.
type FlashcardStore interface {
	// CreateBatch saves all cards atomically: either every card is stored or none is.
	CreateBatch(ctx context.Context, cards []*domain.Flashcard) error

	// GetByID returns ErrFlashcardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// List returns all cards, newest first.
	List(ctx context.Context) ([]*domain.Flashcard, error)

	// ListByLesson returns the cards of one lesson, newest first.
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Flashcard, error)

	// Update saves front and back.
	Update(ctx context.Context, card *domain.Flashcard) error

	Delete(ctx context.Context, id uuid.UUID) error
}
