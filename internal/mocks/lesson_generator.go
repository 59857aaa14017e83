package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/service"
)

// MockLessonGenerator implements the generation operations of
// service.LessonOrchestrator for testing.
type MockLessonGenerator struct {
	GenerateLessonContentFn      func(ctx context.Context, req service.LessonRequest) (*service.LessonResult, error)
	GenerateWorksheetContentFn   func(ctx context.Context, topic, subject string) (*domain.WorksheetDraft, error)
	GenerateFlashcardsForTopicFn func(ctx context.Context, topic string) ([]domain.CardFace, error)
	GenerateTeacherMaterialsFn   func(ctx context.Context, fileName string) (*domain.Lesson, error)

	// Err is returned by any operation without a function field.
	Err error

	mu             sync.Mutex
	LessonRequests []service.LessonRequest
	Topics         []string
	FileNames      []string
}

// GenerateLessonContent records req and delegates to GenerateLessonContentFn.
func (m *MockLessonGenerator) GenerateLessonContent(ctx context.Context, req service.LessonRequest) (*service.LessonResult, error) {
	m.mu.Lock()
	m.LessonRequests = append(m.LessonRequests, req)
	m.mu.Unlock()

	if m.GenerateLessonContentFn != nil {
		return m.GenerateLessonContentFn(ctx, req)
	}
	return nil, m.Err
}

// GenerateWorksheetContent records topic and delegates to GenerateWorksheetContentFn.
func (m *MockLessonGenerator) GenerateWorksheetContent(ctx context.Context, topic, subject string) (*domain.WorksheetDraft, error) {
	m.recordTopic(topic)
	if m.GenerateWorksheetContentFn != nil {
		return m.GenerateWorksheetContentFn(ctx, topic, subject)
	}
	return nil, m.Err
}

// GenerateFlashcardsForTopic records topic and delegates to GenerateFlashcardsForTopicFn.
func (m *MockLessonGenerator) GenerateFlashcardsForTopic(ctx context.Context, topic string) ([]domain.CardFace, error) {
	m.recordTopic(topic)
	if m.GenerateFlashcardsForTopicFn != nil {
		return m.GenerateFlashcardsForTopicFn(ctx, topic)
	}
	return nil, m.Err
}

// GenerateTeacherMaterials records fileName and delegates to GenerateTeacherMaterialsFn.
func (m *MockLessonGenerator) GenerateTeacherMaterials(ctx context.Context, fileName string) (*domain.Lesson, error) {
	m.mu.Lock()
	m.FileNames = append(m.FileNames, fileName)
	m.mu.Unlock()

	if m.GenerateTeacherMaterialsFn != nil {
		return m.GenerateTeacherMaterialsFn(ctx, fileName)
	}
	return nil, m.Err
}

func (m *MockLessonGenerator) recordTopic(topic string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Topics = append(m.Topics, topic)
}
