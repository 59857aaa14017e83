package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"github.com/phrazzld/lumen-api/internal/store"
)

// LessonService reads and edits lessons and assembles a lesson with its materials.
type LessonService struct {
	stores store.Stores
	cache  MaterialsCache
	logger *slog.Logger
}

// NewLessonService creates a LessonService. A nil cache disables caching.
func NewLessonService(stores store.Stores, cache MaterialsCache, logger *slog.Logger) (*LessonService, error) {
	if stores.Lessons == nil || stores.Worksheets == nil || stores.Flashcards == nil ||
		stores.AudioFiles == nil || stores.Images == nil {
		return nil, &ServiceError{Service: "lesson", Operation: "create_service", Message: "all stores are required"}
	}
	if cache == nil {
		cache = nopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonService{
		stores: stores,
		cache:  cache,
		logger: logger.With("component", "lesson_service"),
	}, nil
}

// GetLesson returns one lesson.
func (s *LessonService) GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	lesson, err := s.stores.Lessons.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("lesson", "get_lesson", "failed to get lesson", err)
	}
	return lesson, nil
}

// ListLessons returns every lesson, newest first.
func (s *LessonService) ListLessons(ctx context.Context) ([]*domain.Lesson, error) {
	lessons, err := s.stores.Lessons.List(ctx)
	if err != nil {
		return nil, NewServiceError("lesson", "list_lessons", "failed to list lessons", err)
	}
	return lessons, nil
}

// UpdateLesson applies a partial update and bumps updated_at.
func (s *LessonService) UpdateLesson(ctx context.Context, id uuid.UUID, update domain.LessonUpdate) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	lesson, err := s.stores.Lessons.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("lesson", "update_lesson", "failed to get lesson", err)
	}
	if err := lesson.Apply(update); err != nil {
		return nil, NewServiceError("lesson", "update_lesson", "invalid lesson update", err)
	}
	if err := s.stores.Lessons.Update(ctx, lesson); err != nil {
		log.ErrorContext(ctx, "failed to update lesson",
			slog.String("lesson_id", id.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("lesson", "update_lesson", "failed to save lesson", err)
	}

	invalidate(ctx, s.cache, log, id)
	return lesson, nil
}

// DeleteLesson removes a lesson. Its materials are left in place.
func (s *LessonService) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.stores.Lessons.Delete(ctx, id); err != nil {
		return NewServiceError("lesson", "delete_lesson", "failed to delete lesson", err)
	}

	invalidate(ctx, s.cache, log, id)
	return nil
}

// GetLessonWithMaterials returns the lesson together with its worksheets,
// flashcards, audio files and images. Results are served from the cache when present.
func (s *LessonService) GetLessonWithMaterials(ctx context.Context, id uuid.UUID) (*domain.LessonWithMaterials, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("lesson_id", id.String()))

	cached, ok, err := s.cache.Get(ctx, id)
	if err != nil {
		log.WarnContext(ctx, "failed to read cached lesson materials", slog.String("error", err.Error()))
	}
	if ok {
		return cached, nil
	}

	lesson, err := s.stores.Lessons.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("lesson", "get_lesson_materials", "failed to get lesson", err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	worksheets, err := s.stores.Worksheets.ListByLesson(ctx, id)
	if err != nil {
		return nil, NewServiceError("lesson", "get_lesson_materials", "failed to list worksheets", err)
	}
	flashcards, err := s.stores.Flashcards.ListByLesson(ctx, id)
	if err != nil {
		return nil, NewServiceError("lesson", "get_lesson_materials", "failed to list flashcards", err)
	}
	audio, err := s.stores.AudioFiles.ListByLesson(ctx, id)
	if err != nil {
		return nil, NewServiceError("lesson", "get_lesson_materials", "failed to list audio files", err)
	}
	images, err := s.stores.Images.ListByLesson(ctx, id)
	if err != nil {
		return nil, NewServiceError("lesson", "get_lesson_materials", "failed to list images", err)
	}

	materials := &domain.LessonWithMaterials{
		Lesson:          *lesson,
		Worksheets:      values(worksheets),
		Flashcards:      values(flashcards),
		AudioFiles:      values(audio),
		GeneratedImages: values(images),
	}

	if err := s.cache.Set(ctx, materials); err != nil {
		log.WarnContext(ctx, "failed to cache lesson materials", slog.String("error", err.Error()))
	}
	return materials, nil
}

// values dereferences ptrs into a non-nil slice.
func values[T any](ptrs []*T) []T {
	out := make([]T, 0, len(ptrs))
	for _, p := range ptrs {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}
