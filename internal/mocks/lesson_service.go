package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
)

// MockLessonService implements the lesson read and write operations of
// service.LessonService for testing.
type MockLessonService struct {
	GetLessonFn              func(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	ListLessonsFn            func(ctx context.Context) ([]*domain.Lesson, error)
	GetLessonWithMaterialsFn func(ctx context.Context, id uuid.UUID) (*domain.LessonWithMaterials, error)
	UpdateLessonFn           func(ctx context.Context, id uuid.UUID, update domain.LessonUpdate) (*domain.Lesson, error)
	DeleteLessonFn           func(ctx context.Context, id uuid.UUID) error

	Err error

	// DeletedIDs records every DeleteLesson call.
	DeletedIDs []uuid.UUID
}

func (m *MockLessonService) GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	if m.GetLessonFn != nil {
		return m.GetLessonFn(ctx, id)
	}
	return nil, m.Err
}

func (m *MockLessonService) ListLessons(ctx context.Context) ([]*domain.Lesson, error) {
	if m.ListLessonsFn != nil {
		return m.ListLessonsFn(ctx)
	}
	return nil, m.Err
}

func (m *MockLessonService) GetLessonWithMaterials(ctx context.Context, id uuid.UUID) (*domain.LessonWithMaterials, error) {
	if m.GetLessonWithMaterialsFn != nil {
		return m.GetLessonWithMaterialsFn(ctx, id)
	}
	return nil, m.Err
}

func (m *MockLessonService) UpdateLesson(ctx context.Context, id uuid.UUID, update domain.LessonUpdate) (*domain.Lesson, error) {
	if m.UpdateLessonFn != nil {
		return m.UpdateLessonFn(ctx, id, update)
	}
	return nil, m.Err
}

func (m *MockLessonService) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	m.DeletedIDs = append(m.DeletedIDs, id)
	if m.DeleteLessonFn != nil {
		return m.DeleteLessonFn(ctx, id)
	}
	return m.Err
}
