package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"github.com/phrazzld/lumen-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// AudioGenerator is the audio side path used by MediaService.
type AudioGenerator interface {
	GenerateAndSaveAudio(ctx context.Context, lessonID uuid.UUID, text string) (*domain.AudioFile, error)
}

// DiagramGenerator is the image side path used by MediaService.
type DiagramGenerator interface {
	GenerateAndSaveImage(ctx context.Context, lessonID uuid.UUID, prompt string) (*domain.GeneratedImage, error)
}

// MediaRequest overrides the narration text and diagram prompt.
// Empty fields default to the lesson content and title.
type MediaRequest struct {
	Text        string
	ImagePrompt string
}

// MediaResult holds both side path results. A nil Audio means audio is unavailable.
type MediaResult struct {
	Audio    *domain.AudioFile
	Image    *domain.GeneratedImage
	ImageErr error
}

// MediaService runs the audio and image side paths for a lesson concurrently.
type MediaService struct {
	lessons store.LessonStore
	audio   AudioGenerator
	images  DiagramGenerator
	logger  *slog.Logger
}

// NewMediaService creates a MediaService.
func NewMediaService(
	lessons store.LessonStore,
	audio AudioGenerator,
	images DiagramGenerator,
	logger *slog.Logger,
) (*MediaService, error) {
	if lessons == nil || audio == nil || images == nil {
		return nil, &ServiceError{Service: "media", Operation: "create_service", Message: "lesson store, audio and image generators are required"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaService{
		lessons: lessons,
		audio:   audio,
		images:  images,
		logger:  logger.With("component", "media_service"),
	}, nil
}

// GenerateMedia narrates the lesson and draws its diagram at the same time.
// Neither side path cancels the other; both are awaited before returning.
// Only the lesson lookup fails the call, the image error is reported in the result.
func (s *MediaService) GenerateMedia(ctx context.Context, lessonID uuid.UUID, req MediaRequest) (*MediaResult, error) {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, NewServiceError("media", "generate_media", "failed to get lesson", err)
	}

	text := req.Text
	if text == "" {
		text = lesson.Content
	}
	prompt := req.ImagePrompt
	if prompt == "" {
		prompt = lesson.Title
	}

	var (
		g      errgroup.Group
		result MediaResult
	)
	g.Go(func() error {
		// Audio failures are absorbed by the audio side path.
		audio, err := s.audio.GenerateAndSaveAudio(ctx, lessonID, text)
		if err != nil {
			logger.FromContextOrDefault(ctx, s.logger).WarnContext(ctx, "audio side path failed",
				slog.String("lesson_id", lessonID.String()),
				slog.String("error", err.Error()))
			return nil
		}
		result.Audio = audio
		return nil
	})
	g.Go(func() error {
		result.Image, result.ImageErr = s.images.GenerateAndSaveImage(ctx, lessonID, prompt)
		return nil
	})
	_ = g.Wait()

	return &result, nil
}

// GenerateMediaForLesson generates media with the lesson's own content and title.
// It lets the background media task drive the same fan-out.
func (s *MediaService) GenerateMediaForLesson(ctx context.Context, lessonID uuid.UUID) error {
	result, err := s.GenerateMedia(ctx, lessonID, MediaRequest{})
	if err != nil {
		return err
	}
	if result.Audio == nil {
		logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "audio unavailable for lesson",
			slog.String("lesson_id", lessonID.String()))
	}
	return result.ImageErr
}
