package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/service"
)

// MockMediaService implements the media fan-out plus the audio and image
// side paths used by the API.
type MockMediaService struct {
	GenerateMediaFn        func(ctx context.Context, lessonID uuid.UUID, req service.MediaRequest) (*service.MediaResult, error)
	GenerateAndSaveAudioFn func(ctx context.Context, lessonID uuid.UUID, text string) (*domain.AudioFile, error)
	GenerateAndSaveImageFn func(ctx context.Context, lessonID uuid.UUID, prompt string) (*domain.GeneratedImage, error)
	DeleteAudioFileFn      func(ctx context.Context, id uuid.UUID) error
	DeleteImageFn          func(ctx context.Context, id uuid.UUID) error

	Err error
}

func (m *MockMediaService) GenerateMedia(ctx context.Context, lessonID uuid.UUID, req service.MediaRequest) (*service.MediaResult, error) {
	if m.GenerateMediaFn != nil {
		return m.GenerateMediaFn(ctx, lessonID, req)
	}
	return nil, m.Err
}

func (m *MockMediaService) GenerateAndSaveAudio(ctx context.Context, lessonID uuid.UUID, text string) (*domain.AudioFile, error) {
	if m.GenerateAndSaveAudioFn != nil {
		return m.GenerateAndSaveAudioFn(ctx, lessonID, text)
	}
	return nil, m.Err
}

func (m *MockMediaService) GenerateAndSaveImage(ctx context.Context, lessonID uuid.UUID, prompt string) (*domain.GeneratedImage, error) {
	if m.GenerateAndSaveImageFn != nil {
		return m.GenerateAndSaveImageFn(ctx, lessonID, prompt)
	}
	return nil, m.Err
}

func (m *MockMediaService) DeleteAudioFile(ctx context.Context, id uuid.UUID) error {
	if m.DeleteAudioFileFn != nil {
		return m.DeleteAudioFileFn(ctx, id)
	}
	return m.Err
}

func (m *MockMediaService) DeleteImage(ctx context.Context, id uuid.UUID) error {
	if m.DeleteImageFn != nil {
		return m.DeleteImageFn(ctx, id)
	}
	return m.Err
}
