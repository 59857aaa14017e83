package task

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTask is a Task whose Execute is a func field.
type stubTask struct {
	id        uuid.UUID
	executeFn func(ctx context.Context) error
	runs      atomic.Int32
}

func newStubTask(fn func(ctx context.Context) error) *stubTask {
	if fn == nil {
		fn = func(context.Context) error { return nil }
	}
	return &stubTask{id: uuid.New(), executeFn: fn}
}

func (t *stubTask) ID() uuid.UUID      { return t.id }
func (t *stubTask) Type() string       { return "stub" }
func (t *stubTask) Payload() []byte    { return []byte("{}") }
func (t *stubTask) Status() TaskStatus { return TaskStatusPending }
func (t *stubTask) Execute(ctx context.Context) error {
	t.runs.Add(1)
	return t.executeFn(ctx)
}

// generatorFunc adapts a function to MediaGenerator.
type generatorFunc func(ctx context.Context, lessonID uuid.UUID) error

func (f generatorFunc) GenerateMediaForLesson(ctx context.Context, lessonID uuid.UUID) error {
	return f(ctx, lessonID)
}
