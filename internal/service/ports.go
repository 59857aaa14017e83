package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/generation"
)

// ContentGenerator produces the structured lesson material. *generation.Service implements it.
type ContentGenerator interface {
	GenerateLesson(ctx context.Context, topic, language string) (*generation.LessonContent, error)
	GenerateQuiz(ctx context.Context, topic string, count int) ([]generation.QuizItem, error)
	GenerateFlashcards(ctx context.Context, topic string, count int) ([]generation.FlashcardContent, error)
	GenerateWorksheetQuestions(ctx context.Context, topic string) (*generation.WorksheetQuestions, error)
}

// SpeechSynthesizer turns narration text into MP3 audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// MediaStore keeps generated binaries and reports their public URL.
type MediaStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// ImageGenerator returns the URL of a diagram for the prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// MaterialsCache caches a lesson together with its materials.
type MaterialsCache interface {
	Get(ctx context.Context, lessonID uuid.UUID) (*domain.LessonWithMaterials, bool, error)
	Set(ctx context.Context, value *domain.LessonWithMaterials) error
	Invalidate(ctx context.Context, lessonID uuid.UUID) error
}

// Recorder counts generation outcomes. *metrics.Metrics implements it.
type Recorder interface {
	LessonGeneration(operation, outcome string)
	MediaOutcome(kind, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) LessonGeneration(string, string) {}
func (nopRecorder) MediaOutcome(string, string)     {}

type nopCache struct{}

func (nopCache) Get(context.Context, uuid.UUID) (*domain.LessonWithMaterials, bool, error) {
	return nil, false, nil
}
func (nopCache) Set(context.Context, *domain.LessonWithMaterials) error { return nil }
func (nopCache) Invalidate(context.Context, uuid.UUID) error            { return nil }

// invalidate drops the cached materials of a lesson. Failures are only logged.
func invalidate(ctx context.Context, cache MaterialsCache, log *slog.Logger, lessonID uuid.UUID) {
	if err := cache.Invalidate(ctx, lessonID); err != nil {
		log.WarnContext(ctx, "failed to invalidate cached lesson materials",
			slog.String("lesson_id", lessonID.String()),
			slog.String("error", err.Error()))
	}
}
