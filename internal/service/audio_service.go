package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"github.com/phrazzld/lumen-api/internal/platform/media"
	"github.com/phrazzld/lumen-api/internal/platform/metrics"
	"github.com/phrazzld/lumen-api/internal/store"
)

// Media kinds used in metrics.
const (
	MediaKindAudio = "audio"
	MediaKindImage = "image"
)

const audioContentType = "audio/mpeg"

// MediaOption configures the optional collaborators of AudioService and ImageService.
type MediaOption func(*mediaOptions)

type mediaOptions struct {
	policy   FailurePolicy
	recorder Recorder
	cache    MaterialsCache
}

// WithMediaPolicy overrides the failure policy of the media side path.
func WithMediaPolicy(p FailurePolicy) MediaOption {
	return func(o *mediaOptions) { o.policy = p }
}

// WithMediaRecorder sets the metrics recorder of the media side path.
func WithMediaRecorder(r Recorder) MediaOption {
	return func(o *mediaOptions) { o.recorder = r }
}

// WithMediaCache sets the cache invalidated when media is written.
func WithMediaCache(c MaterialsCache) MediaOption {
	return func(o *mediaOptions) { o.cache = c }
}

func applyMediaOptions(policy FailurePolicy, opts []MediaOption) mediaOptions {
	o := mediaOptions{policy: policy, recorder: nopRecorder{}, cache: nopCache{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// AudioService narrates lesson text and manages the stored audio files.
type AudioService struct {
	synth  SpeechSynthesizer
	media  MediaStore
	audio  store.AudioFileStore
	opts   mediaOptions
	logger *slog.Logger
}

// NewAudioService creates an AudioService. Its default policy is FailSoft.
func NewAudioService(
	synth SpeechSynthesizer,
	mediaStore MediaStore,
	audioStore store.AudioFileStore,
	logger *slog.Logger,
	opts ...MediaOption,
) (*AudioService, error) {
	if synth == nil || mediaStore == nil || audioStore == nil {
		return nil, &ServiceError{Service: "audio", Operation: "create_service", Message: "synthesizer, media store and audio store are required"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AudioService{
		synth:  synth,
		media:  mediaStore,
		audio:  audioStore,
		opts:   applyMediaOptions(FailSoft, opts),
		logger: logger.With("component", "audio_service"),
	}, nil
}

// GenerateAndSaveAudio narrates text for a lesson and records the audio file.
//
// Under FailSoft every failure (missing credentials, a speech API error, an empty
// payload, an upload or a store error) is logged and reported as (nil, nil): audio
// is simply unavailable for the lesson.
func (s *AudioService) GenerateAndSaveAudio(ctx context.Context, lessonID uuid.UUID, text string) (*domain.AudioFile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("lesson_id", lessonID.String()))
	log.DebugContext(ctx, "generating audio", slog.Int("text_length", len(text)))

	audio, err := s.generate(ctx, lessonID, text)
	if err != nil {
		s.opts.recorder.MediaOutcome(MediaKindAudio, metrics.OutcomeFailed)
		if s.opts.policy == FailLoud {
			log.ErrorContext(ctx, "audio generation failed", slog.String("error", err.Error()))
			return nil, NewServiceError("audio", "generate_audio", "failed to generate audio", err)
		}
		log.WarnContext(ctx, "audio generation failed, continuing without audio",
			slog.String("error", err.Error()))
		return nil, nil
	}

	s.opts.recorder.MediaOutcome(MediaKindAudio, metrics.OutcomeGenerated)
	invalidate(ctx, s.opts.cache, log, lessonID)
	return audio, nil
}

func (s *AudioService) generate(ctx context.Context, lessonID uuid.UUID, text string) (*domain.AudioFile, error) {
	data, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}

	key := media.AudioKey(lessonID)
	url, err := s.media.Put(ctx, key, audioContentType, data)
	if err != nil {
		return nil, err
	}

	audio, err := domain.NewAudioFile(lessonID, url, text)
	if err == nil {
		err = s.audio.Create(ctx, audio)
	}
	if err != nil {
		// The upload has no record pointing at it.
		if delErr := s.media.Delete(ctx, key); delErr != nil {
			logger.FromContextOrDefault(ctx, s.logger).WarnContext(ctx, "failed to delete orphaned audio",
				slog.String("key", key),
				slog.String("error", delErr.Error()))
		}
		return nil, err
	}
	return audio, nil
}

// GetAudioFile returns one audio file.
func (s *AudioService) GetAudioFile(ctx context.Context, id uuid.UUID) (*domain.AudioFile, error) {
	audio, err := s.audio.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("audio", "get_audio_file", "failed to get audio file", err)
	}
	return audio, nil
}

// ListAudioFiles returns the audio files of a lesson, newest first.
func (s *AudioService) ListAudioFiles(ctx context.Context, lessonID uuid.UUID) ([]*domain.AudioFile, error) {
	files, err := s.audio.ListByLesson(ctx, lessonID)
	if err != nil {
		return nil, NewServiceError("audio", "list_audio_files", "failed to list audio files", err)
	}
	return files, nil
}

// DeleteAudioFile removes an audio file record. The stored object is kept.
func (s *AudioService) DeleteAudioFile(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	audio, err := s.audio.GetByID(ctx, id)
	if err != nil {
		return NewServiceError("audio", "delete_audio_file", "failed to get audio file", err)
	}
	if err := s.audio.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return NewServiceError("audio", "delete_audio_file", "failed to delete audio file", err)
	}
	invalidate(ctx, s.opts.cache, log, audio.LessonID)
	return nil
}
