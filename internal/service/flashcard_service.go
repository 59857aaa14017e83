package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"github.com/phrazzld/lumen-api/internal/store"
)

// FlashcardService persists and edits flashcards.
type FlashcardService struct {
	flashcards store.FlashcardStore
	cache      MaterialsCache
	logger     *slog.Logger
}

// NewFlashcardService creates a FlashcardService. A nil cache disables caching.
func NewFlashcardService(flashcards store.FlashcardStore, cache MaterialsCache, logger *slog.Logger) (*FlashcardService, error) {
	if flashcards == nil {
		return nil, &ServiceError{Service: "flashcard", Operation: "create_service", Message: "flashcard store cannot be nil"}
	}
	if cache == nil {
		cache = nopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardService{
		flashcards: flashcards,
		cache:      cache,
		logger:     logger.With("component", "flashcard_service"),
	}, nil
}

// CreateFlashcards stores all faces for a lesson in one batch.
func (s *FlashcardService) CreateFlashcards(ctx context.Context, lessonID uuid.UUID, faces []domain.CardFace) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := domain.NewFlashcards(lessonID, faces)
	if err != nil {
		return nil, NewServiceError("flashcard", "create_flashcards", "invalid flashcard", err)
	}
	if err := s.flashcards.CreateBatch(ctx, cards); err != nil {
		log.ErrorContext(ctx, "failed to create flashcards",
			slog.String("lesson_id", lessonID.String()),
			slog.Int("count", len(cards)),
			slog.String("error", err.Error()))
		return nil, NewServiceError("flashcard", "create_flashcards", "failed to save flashcards", err)
	}

	invalidate(ctx, s.cache, log, lessonID)
	return cards, nil
}

// GetFlashcard returns one flashcard.
func (s *FlashcardService) GetFlashcard(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	card, err := s.flashcards.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("flashcard", "get_flashcard", "failed to get flashcard", err)
	}
	return card, nil
}

// ListFlashcardsByLesson returns the flashcards of a lesson, newest first.
func (s *FlashcardService) ListFlashcardsByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Flashcard, error) {
	cards, err := s.flashcards.ListByLesson(ctx, lessonID)
	if err != nil {
		return nil, NewServiceError("flashcard", "list_flashcards", "failed to list flashcards", err)
	}
	return cards, nil
}

// UpdateFlashcard changes the front and/or back of a flashcard.
func (s *FlashcardService) UpdateFlashcard(ctx context.Context, id uuid.UUID, update domain.FlashcardUpdate) (*domain.Flashcard, error) {
	card, err := s.flashcards.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("flashcard", "update_flashcard", "failed to get flashcard", err)
	}
	if err := card.Apply(update); err != nil {
		return nil, NewServiceError("flashcard", "update_flashcard", "invalid flashcard update", err)
	}
	if err := s.flashcards.Update(ctx, card); err != nil {
		return nil, NewServiceError("flashcard", "update_flashcard", "failed to save flashcard", err)
	}

	invalidate(ctx, s.cache, logger.FromContextOrDefault(ctx, s.logger), card.LessonID)
	return card, nil
}

// DeleteFlashcard removes a flashcard.
func (s *FlashcardService) DeleteFlashcard(ctx context.Context, id uuid.UUID) error {
	card, err := s.flashcards.GetByID(ctx, id)
	if err != nil {
		return NewServiceError("flashcard", "delete_flashcard", "failed to get flashcard", err)
	}
	if err := s.flashcards.Delete(ctx, id); err != nil {
		return NewServiceError("flashcard", "delete_flashcard", "failed to delete flashcard", err)
	}

	invalidate(ctx, s.cache, logger.FromContextOrDefault(ctx, s.logger), card.LessonID)
	return nil
}
