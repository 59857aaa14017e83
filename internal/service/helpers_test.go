package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/generation"
	"github.com/phrazzld/lumen-api/internal/platform/memstore"
	"github.com/phrazzld/lumen-api/internal/store"
)

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStores keeps the concrete in-memory stores so tests can count rows.
type memStores struct {
	lessons    *memstore.LessonStore
	worksheets *memstore.WorksheetStore
	flashcards *memstore.FlashcardStore
	audio      *memstore.AudioFileStore
	images     *memstore.ImageStore
}

func newMemStores() *memStores {
	return &memStores{
		lessons:    memstore.NewLessonStore(),
		worksheets: memstore.NewWorksheetStore(),
		flashcards: memstore.NewFlashcardStore(),
		audio:      memstore.NewAudioFileStore(),
		images:     memstore.NewImageStore(),
	}
}

func (m *memStores) stores() store.Stores {
	return store.Stores{
		Lessons:    m.lessons,
		Worksheets: m.worksheets,
		Flashcards: m.flashcards,
		AudioFiles: m.audio,
		Images:     m.images,
	}
}

// fakeContent is a ContentGenerator driven by func fields. Unset fields return canned content.
type fakeContent struct {
	mu    sync.Mutex
	calls []string

	lessonFn     func(topic, language string) (*generation.LessonContent, error)
	quizFn       func(topic string, count int) ([]generation.QuizItem, error)
	flashcardsFn func(topic string, count int) ([]generation.FlashcardContent, error)
	worksheetFn  func(topic string) (*generation.WorksheetQuestions, error)
}

func (f *fakeContent) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeContent) GenerateLesson(_ context.Context, topic, language string) (*generation.LessonContent, error) {
	f.record("lesson")
	if f.lessonFn != nil {
		return f.lessonFn(topic, language)
	}
	return &generation.LessonContent{
		Title:       topic,
		Explanation: "Photosynthesis turns light into chemical energy.",
		Summary:     []string{"Light is absorbed", "Glucose is produced"},
	}, nil
}

func (f *fakeContent) GenerateQuiz(_ context.Context, topic string, count int) ([]generation.QuizItem, error) {
	f.record("quiz")
	if f.quizFn != nil {
		return f.quizFn(topic, count)
	}
	return []generation.QuizItem{
		{Question: "Q1?", Options: []string{"A) a", "B) b", "C) c", "D) d"}, Correct: "A) a"},
		{Question: "Q2?", Options: []string{"A) a", "B) b", "C) c", "D) d"}, Correct: "C) c"},
	}, nil
}

func (f *fakeContent) GenerateFlashcards(_ context.Context, topic string, count int) ([]generation.FlashcardContent, error) {
	f.record("flashcards")
	if f.flashcardsFn != nil {
		return f.flashcardsFn(topic, count)
	}
	return []generation.FlashcardContent{
		{Front: "Chlorophyll", Back: "Green pigment"},
		{Front: "Stomata", Back: "Leaf pores"},
	}, nil
}

func (f *fakeContent) GenerateWorksheetQuestions(_ context.Context, topic string) (*generation.WorksheetQuestions, error) {
	f.record("worksheet")
	if f.worksheetFn != nil {
		return f.worksheetFn(topic)
	}
	return &generation.WorksheetQuestions{}, nil
}

// fakeRecorder collects metric observations as "operation:outcome" strings.
type fakeRecorder struct {
	mu      sync.Mutex
	lessons []string
	media   []string
}

func (r *fakeRecorder) LessonGeneration(operation, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lessons = append(r.lessons, operation+":"+outcome)
}

func (r *fakeRecorder) MediaOutcome(kind, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.media = append(r.media, kind+":"+outcome)
}

// fakeCache records invalidations and serves a single optional entry.
type fakeCache struct {
	mu          sync.Mutex
	entry       *domain.LessonWithMaterials
	getErr      error
	sets        int
	invalidated []uuid.UUID
}

func (c *fakeCache) Get(_ context.Context, id uuid.UUID) (*domain.LessonWithMaterials, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	if c.entry != nil && c.entry.ID == id {
		return c.entry, true, nil
	}
	return nil, false, nil
}

func (c *fakeCache) Set(_ context.Context, v *domain.LessonWithMaterials) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, id)
	return nil
}

// failingFlashcards fails the first failures CreateBatch calls, then delegates.
type failingFlashcards struct {
	store.FlashcardStore
	failures int
}

func (f *failingFlashcards) CreateBatch(ctx context.Context, cards []*domain.Flashcard) error {
	if f.failures > 0 {
		f.failures--
		return errBoom
	}
	return f.FlashcardStore.CreateBatch(ctx, cards)
}

// failingWorksheets always fails Create.
type failingWorksheets struct {
	store.WorksheetStore
}

func (failingWorksheets) Create(context.Context, *domain.Worksheet) error {
	return errBoom
}

// failingImages always fails Create.
type failingImages struct {
	store.ImageStore
}

func (failingImages) Create(context.Context, *domain.GeneratedImage) error {
	return errBoom
}

// failingAudio always fails Create.
type failingAudio struct {
	store.AudioFileStore
}

func (failingAudio) Create(context.Context, *domain.AudioFile) error {
	return errBoom
}
