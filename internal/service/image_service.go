package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"github.com/phrazzld/lumen-api/internal/platform/metrics"
	"github.com/phrazzld/lumen-api/internal/store"
)

// EducationalImagePrompt wraps a topic in the diagram instructions sent to the image generator.
func EducationalImagePrompt(prompt string) string {
	return fmt.Sprintf(
		"Educational diagram illustrating: %s. Simple, clear, and colorful diagram suitable for students learning.",
		prompt,
	)
}

// ImageService generates lesson diagrams and manages the stored image records.
type ImageService struct {
	images  ImageGenerator
	records store.ImageStore
	opts    mediaOptions
	logger  *slog.Logger
}

// NewImageService creates an ImageService. Its default policy is FailLoud.
func NewImageService(
	images ImageGenerator,
	imageStore store.ImageStore,
	logger *slog.Logger,
	opts ...MediaOption,
) (*ImageService, error) {
	if images == nil || imageStore == nil {
		return nil, &ServiceError{Service: "image", Operation: "create_service", Message: "image generator and image store are required"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageService{
		images:  images,
		records: imageStore,
		opts:    applyMediaOptions(FailLoud, opts),
		logger:  logger.With("component", "image_service"),
	}, nil
}

// GenerateAndSaveImage generates a diagram for prompt and records it against the lesson.
// The stored prompt is the full educational prompt. Errors are returned under FailLoud.
func (s *ImageService) GenerateAndSaveImage(ctx context.Context, lessonID uuid.UUID, prompt string) (*domain.GeneratedImage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("lesson_id", lessonID.String()))

	img, err := s.generate(ctx, lessonID, EducationalImagePrompt(prompt))
	if err != nil {
		s.opts.recorder.MediaOutcome(MediaKindImage, metrics.OutcomeFailed)
		if s.opts.policy == FailSoft {
			log.WarnContext(ctx, "image generation failed, continuing without image",
				slog.String("error", err.Error()))
			return nil, nil
		}
		log.ErrorContext(ctx, "image generation failed", slog.String("error", err.Error()))
		return nil, NewServiceError("image", "generate_image", "failed to generate and save image", err)
	}

	s.opts.recorder.MediaOutcome(MediaKindImage, metrics.OutcomeGenerated)
	invalidate(ctx, s.opts.cache, log, lessonID)
	return img, nil
}

func (s *ImageService) generate(ctx context.Context, lessonID uuid.UUID, prompt string) (*domain.GeneratedImage, error) {
	url, err := s.images.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, err
	}
	img, err := domain.NewGeneratedImage(lessonID, url, prompt)
	if err != nil {
		return nil, err
	}
	if err := s.records.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// GetImage returns one generated image.
func (s *ImageService) GetImage(ctx context.Context, id uuid.UUID) (*domain.GeneratedImage, error) {
	img, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("image", "get_image", "failed to get image", err)
	}
	return img, nil
}

// ListImages returns the images of a lesson, newest first.
func (s *ImageService) ListImages(ctx context.Context, lessonID uuid.UUID) ([]*domain.GeneratedImage, error) {
	images, err := s.records.ListByLesson(ctx, lessonID)
	if err != nil {
		return nil, NewServiceError("image", "list_images", "failed to list images", err)
	}
	return images, nil
}

// DeleteImage removes a generated image record.
func (s *ImageService) DeleteImage(ctx context.Context, id uuid.UUID) error {
	img, err := s.records.GetByID(ctx, id)
	if err != nil {
		return NewServiceError("image", "delete_image", "failed to get image", err)
	}
	if err := s.records.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return NewServiceError("image", "delete_image", "failed to delete image", err)
	}
	invalidate(ctx, s.opts.cache, logger.FromContextOrDefault(ctx, s.logger), img.LessonID)
	return nil
}
