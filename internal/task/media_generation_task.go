package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrNilMediaGenerator = errors.New("media generator cannot be nil")
	ErrEmptyLessonID     = errors.New("lesson ID cannot be empty")
)

// MediaGenerator produces the audio and image side paths for a lesson.
type MediaGenerator interface {
	GenerateMediaForLesson(ctx context.Context, lessonID uuid.UUID) error
}

type mediaGenerationPayload struct {
	LessonID uuid.UUID `json:"lesson_id"`
}

// MediaGenerationTask runs MediaGenerator once for a lesson.
type MediaGenerationTask struct {
	id        uuid.UUID
	lessonID  uuid.UUID
	generator MediaGenerator
	logger    *slog.Logger

	mu     sync.RWMutex
	status TaskStatus
}

var _ Task = (*MediaGenerationTask)(nil)

// NewMediaGenerationTask creates a pending task for lessonID.
func NewMediaGenerationTask(lessonID uuid.UUID, generator MediaGenerator, logger *slog.Logger) (*MediaGenerationTask, error) {
	if lessonID == uuid.Nil {
		return nil, ErrEmptyLessonID
	}
	if generator == nil {
		return nil, ErrNilMediaGenerator
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &MediaGenerationTask{
		id:        id,
		lessonID:  lessonID,
		generator: generator,
		logger: logger.With(
			slog.String("task_id", id.String()),
			slog.String("lesson_id", lessonID.String()),
		),
		status: TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *MediaGenerationTask) ID() uuid.UUID { return t.id }

// Type returns TaskTypeMediaGeneration
func (t *MediaGenerationTask) Type() string { return TaskTypeMediaGeneration }

// LessonID returns the lesson the task generates media for.
func (t *MediaGenerationTask) LessonID() uuid.UUID { return t.lessonID }

// Payload returns the lesson id as JSON.
func (t *MediaGenerationTask) Payload() []byte {
	b, err := json.Marshal(mediaGenerationPayload{LessonID: t.lessonID})
	if err != nil {
		t.logger.Error("failed to marshal task payload", slog.String("error", err.Error()))
		return []byte("{}")
	}
	return b
}

// Status returns the current task status
func (t *MediaGenerationTask) Status() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *MediaGenerationTask) setStatus(s TaskStatus) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// Execute generates the lesson media.
func (t *MediaGenerationTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)
	t.logger.InfoContext(ctx, "generating lesson media")

	if err := t.generator.GenerateMediaForLesson(ctx, t.lessonID); err != nil {
		t.setStatus(TaskStatusFailed)
		return fmt.Errorf("media generation for lesson %s: %w", t.lessonID, err)
	}

	t.setStatus(TaskStatusCompleted)
	return nil
}

// MediaGenerationTaskFactory creates MediaGenerationTask values bound to one generator.
type MediaGenerationTaskFactory struct {
	generator MediaGenerator
	logger    *slog.Logger
}

// NewMediaGenerationTaskFactory creates a factory.
func NewMediaGenerationTaskFactory(generator MediaGenerator, logger *slog.Logger) *MediaGenerationTaskFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaGenerationTaskFactory{
		generator: generator,
		logger:    logger.With(slog.String("component", "media_generation_task")),
	}
}

// CreateTask creates a task for lessonID.
func (f *MediaGenerationTaskFactory) CreateTask(lessonID uuid.UUID) (Task, error) {
	return NewMediaGenerationTask(lessonID, f.generator, f.logger)
}
