package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/service"
)

// LessonGenerator is the generation surface of service.LessonOrchestrator.
type LessonGenerator interface {
	GenerateLessonContent(ctx context.Context, req service.LessonRequest) (*service.LessonResult, error)
	GenerateWorksheetContent(ctx context.Context, topic, subject string) (*domain.WorksheetDraft, error)
	GenerateFlashcardsForTopic(ctx context.Context, topic string) ([]domain.CardFace, error)
	GenerateTeacherMaterials(ctx context.Context, fileName string) (*domain.Lesson, error)
}

// LessonService is implemented by service.LessonService.
type LessonService interface {
	GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	ListLessons(ctx context.Context) ([]*domain.Lesson, error)
	GetLessonWithMaterials(ctx context.Context, id uuid.UUID) (*domain.LessonWithMaterials, error)
	UpdateLesson(ctx context.Context, id uuid.UUID, update domain.LessonUpdate) (*domain.Lesson, error)
	DeleteLesson(ctx context.Context, id uuid.UUID) error
}

// WorksheetService is implemented by service.WorksheetService.
type WorksheetService interface {
	CreateWorksheet(ctx context.Context, lessonID uuid.UUID, title string, questions []domain.Question) (*domain.Worksheet, error)
	GetWorksheet(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error)
	ListWorksheets(ctx context.Context) ([]*domain.Worksheet, error)
	UpdateWorksheet(ctx context.Context, id uuid.UUID, update domain.WorksheetUpdate) (*domain.Worksheet, error)
	DeleteWorksheet(ctx context.Context, id uuid.UUID) error
}

// FlashcardService is implemented by service.FlashcardService.
type FlashcardService interface {
	ListFlashcardsByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Flashcard, error)
	UpdateFlashcard(ctx context.Context, id uuid.UUID, update domain.FlashcardUpdate) (*domain.Flashcard, error)
	DeleteFlashcard(ctx context.Context, id uuid.UUID) error
}

// MediaService covers the media fan-out and both side paths.
type MediaService interface {
	GenerateMedia(ctx context.Context, lessonID uuid.UUID, req service.MediaRequest) (*service.MediaResult, error)
	GenerateAndSaveAudio(ctx context.Context, lessonID uuid.UUID, text string) (*domain.AudioFile, error)
	GenerateAndSaveImage(ctx context.Context, lessonID uuid.UUID, prompt string) (*domain.GeneratedImage, error)
	DeleteAudioFile(ctx context.Context, id uuid.UUID) error
	DeleteImage(ctx context.Context, id uuid.UUID) error
}
