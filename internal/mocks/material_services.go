package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
)

// MockWorksheetService implements the worksheet operations used by the API.
type MockWorksheetService struct {
	CreateWorksheetFn func(ctx context.Context, lessonID uuid.UUID, title string, questions []domain.Question) (*domain.Worksheet, error)
	GetWorksheetFn    func(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error)
	ListWorksheetsFn  func(ctx context.Context) ([]*domain.Worksheet, error)
	UpdateWorksheetFn func(ctx context.Context, id uuid.UUID, update domain.WorksheetUpdate) (*domain.Worksheet, error)
	DeleteWorksheetFn func(ctx context.Context, id uuid.UUID) error

	Err error
}

func (m *MockWorksheetService) CreateWorksheet(ctx context.Context, lessonID uuid.UUID, title string, questions []domain.Question) (*domain.Worksheet, error) {
	if m.CreateWorksheetFn != nil {
		return m.CreateWorksheetFn(ctx, lessonID, title, questions)
	}
	return nil, m.Err
}

func (m *MockWorksheetService) GetWorksheet(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error) {
	if m.GetWorksheetFn != nil {
		return m.GetWorksheetFn(ctx, id)
	}
	return nil, m.Err
}

func (m *MockWorksheetService) ListWorksheets(ctx context.Context) ([]*domain.Worksheet, error) {
	if m.ListWorksheetsFn != nil {
		return m.ListWorksheetsFn(ctx)
	}
	return nil, m.Err
}

func (m *MockWorksheetService) UpdateWorksheet(ctx context.Context, id uuid.UUID, update domain.WorksheetUpdate) (*domain.Worksheet, error) {
	if m.UpdateWorksheetFn != nil {
		return m.UpdateWorksheetFn(ctx, id, update)
	}
	return nil, m.Err
}

func (m *MockWorksheetService) DeleteWorksheet(ctx context.Context, id uuid.UUID) error {
	if m.DeleteWorksheetFn != nil {
		return m.DeleteWorksheetFn(ctx, id)
	}
	return m.Err
}

// MockFlashcardService implements the flashcard operations used by the API.
type MockFlashcardService struct {
	ListFlashcardsByLessonFn func(ctx context.Context, lessonID uuid.UUID) ([]*domain.Flashcard, error)
	UpdateFlashcardFn        func(ctx context.Context, id uuid.UUID, update domain.FlashcardUpdate) (*domain.Flashcard, error)
	DeleteFlashcardFn        func(ctx context.Context, id uuid.UUID) error

	Err error
}

func (m *MockFlashcardService) ListFlashcardsByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Flashcard, error) {
	if m.ListFlashcardsByLessonFn != nil {
		return m.ListFlashcardsByLessonFn(ctx, lessonID)
	}
	return nil, m.Err
}

func (m *MockFlashcardService) UpdateFlashcard(ctx context.Context, id uuid.UUID, update domain.FlashcardUpdate) (*domain.Flashcard, error) {
	if m.UpdateFlashcardFn != nil {
		return m.UpdateFlashcardFn(ctx, id, update)
	}
	return nil, m.Err
}

func (m *MockFlashcardService) DeleteFlashcard(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFlashcardFn != nil {
		return m.DeleteFlashcardFn(ctx, id)
	}
	return m.Err
}
