package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
)

// WorksheetStore defines the interface for worksheet persistence.
type WorksheetStore interface {
	Create(ctx context.Context, ws *domain.Worksheet) error
	// GetByID returns ErrWorksheetNotFound if the worksheet does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error)
	List(ctx context.Context) ([]*domain.Worksheet, error)
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Worksheet, error)
	// Update saves title and questions.
	Update(ctx context.Context, ws *domain.Worksheet) error
	Delete(ctx context.Context, id uuid.UUID) error
}
