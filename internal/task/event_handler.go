package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/events"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
)

// TaskFactory creates a task for a lesson.
type TaskFactory interface {
	CreateTask(lessonID uuid.UUID) (Task, error)
}

// Submitter accepts tasks for background execution.
type Submitter interface {
	Submit(ctx context.Context, task Task) error
}

// TaskFactoryEventHandler turns lesson.created events into background tasks.
type TaskFactoryEventHandler struct {
	factory   TaskFactory
	submitter Submitter
	logger    *slog.Logger
}

var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)

// NewTaskFactoryEventHandler creates a handler that submits factory tasks to submitter.
func NewTaskFactoryEventHandler(factory TaskFactory, submitter Submitter, log *slog.Logger) *TaskFactoryEventHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskFactoryEventHandler{
		factory:   factory,
		submitter: submitter,
		logger:    log.With(slog.String("component", "task_factory_event_handler")),
	}
}

// HandleEvent submits a task for lesson.created events and ignores others.
func (h *TaskFactoryEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	if event.Type != events.TypeLessonCreated {
		log.DebugContext(ctx, "ignoring event with unsupported type",
			slog.String("event_type", event.Type),
			slog.String("event_id", event.ID.String()))
		return nil
	}

	var payload events.LessonCreatedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	task, err := h.factory.CreateTask(payload.LessonID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	// The request context ends with the HTTP response; the task outlives it.
	if err := h.submitter.Submit(context.WithoutCancel(ctx), task); err != nil {
		log.ErrorContext(ctx, "dropping media generation task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID().String()),
			slog.String("lesson_id", payload.LessonID.String()))
		return fmt.Errorf("failed to submit task: %w", err)
	}

	log.InfoContext(ctx, "media generation task submitted",
		slog.String("task_id", task.ID().String()),
		slog.String("lesson_id", payload.LessonID.String()),
		slog.String("event_id", event.ID.String()))
	return nil
}
