package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/elevenlabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type synthFunc func(ctx context.Context, text string) ([]byte, error)

func (f synthFunc) Synthesize(ctx context.Context, text string) ([]byte, error) { return f(ctx, text) }

type imageFunc func(ctx context.Context, prompt string) (string, error)

func (f imageFunc) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// fakeMediaStore keeps uploaded objects in memory.
type fakeMediaStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	putErr  error
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{objects: map[string][]byte{}}
}

func (s *fakeMediaStore) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return "", s.putErr
	}
	s.objects[key] = data
	return "https://cdn.example.com/" + key, nil
}

func (s *fakeMediaStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func mp3Synth() synthFunc {
	return func(context.Context, string) ([]byte, error) { return []byte("ID3-audio"), nil }
}

func TestGenerateAndSaveAudio(t *testing.T) {
	ctx := context.Background()
	lessonID := uuid.New()

	t.Run("stores audio and truncated text", func(t *testing.T) {
		m := newMemStores()
		mediaStore := newFakeMediaStore()
		cache := &fakeCache{}
		rec := &fakeRecorder{}
		var synthesized string
		synth := synthFunc(func(_ context.Context, text string) ([]byte, error) {
			synthesized = text
			return []byte("ID3-audio"), nil
		})
		svc, err := NewAudioService(synth, mediaStore, m.audio, discardLogger(),
			WithMediaCache(cache), WithMediaRecorder(rec))
		require.NoError(t, err)
		text := strings.Repeat("é", 1500)

		audio, err := svc.GenerateAndSaveAudio(ctx, lessonID, text)

		require.NoError(t, err)
		require.NotNil(t, audio)
		assert.Equal(t, text, synthesized)
		assert.Equal(t, []rune(text)[:1000], []rune(audio.TextContent))
		assert.True(t, strings.HasPrefix(audio.AudioURL, "https://cdn.example.com/audio/"+lessonID.String()+"/"))
		assert.True(t, strings.HasSuffix(audio.AudioURL, ".mp3"))
		assert.Len(t, mediaStore.objects, 1)
		assert.Equal(t, 1, m.audio.Len())
		assert.Equal(t, []uuid.UUID{lessonID}, cache.invalidated)
		assert.Equal(t, []string{"audio:generated"}, rec.media)
	})

	synthErrors := []error{
		elevenlabs.ErrNotConfigured,
		elevenlabs.ErrUnauthorized,
		elevenlabs.ErrVoiceNotFound,
		elevenlabs.ErrBadRequest,
		elevenlabs.ErrRateLimited,
		elevenlabs.ErrServer,
		elevenlabs.ErrEmptyAudio,
	}
	for _, synthErr := range synthErrors {
		t.Run("unavailable on "+synthErr.Error(), func(t *testing.T) {
			m := newMemStores()
			rec := &fakeRecorder{}
			synth := synthFunc(func(context.Context, string) ([]byte, error) { return nil, synthErr })
			svc, err := NewAudioService(synth, newFakeMediaStore(), m.audio, discardLogger(), WithMediaRecorder(rec))
			require.NoError(t, err)

			audio, err := svc.GenerateAndSaveAudio(ctx, lessonID, "narrate me")

			assert.NoError(t, err)
			assert.Nil(t, audio)
			assert.Equal(t, 0, m.audio.Len())
			assert.Equal(t, []string{"audio:failed"}, rec.media)
		})
	}

	t.Run("unavailable on upload error", func(t *testing.T) {
		m := newMemStores()
		mediaStore := newFakeMediaStore()
		mediaStore.putErr = errBoom
		svc, err := NewAudioService(mp3Synth(), mediaStore, m.audio, discardLogger())
		require.NoError(t, err)

		audio, err := svc.GenerateAndSaveAudio(ctx, lessonID, "narrate me")

		assert.NoError(t, err)
		assert.Nil(t, audio)
	})

	t.Run("store error removes the upload", func(t *testing.T) {
		mediaStore := newFakeMediaStore()
		svc, err := NewAudioService(mp3Synth(), mediaStore, failingAudio{AudioFileStore: newMemStores().audio}, discardLogger())
		require.NoError(t, err)

		audio, err := svc.GenerateAndSaveAudio(ctx, lessonID, "narrate me")

		assert.NoError(t, err)
		assert.Nil(t, audio)
		assert.Empty(t, mediaStore.objects)
		assert.Len(t, mediaStore.deleted, 1)
	})

	t.Run("fail loud returns the error", func(t *testing.T) {
		synth := synthFunc(func(context.Context, string) ([]byte, error) { return nil, elevenlabs.ErrRateLimited })
		svc, err := NewAudioService(synth, newFakeMediaStore(), newMemStores().audio, discardLogger(),
			WithMediaPolicy(FailLoud))
		require.NoError(t, err)

		_, err = svc.GenerateAndSaveAudio(ctx, lessonID, "narrate me")

		assert.ErrorIs(t, err, elevenlabs.ErrRateLimited)
	})
}

func TestGenerateAndSaveImage(t *testing.T) {
	ctx := context.Background()
	lessonID := uuid.New()
	wantPrompt := "Educational diagram illustrating: The water cycle. Simple, clear, and colorful diagram suitable for students learning."

	t.Run("stores the educational prompt", func(t *testing.T) {
		m := newMemStores()
		var generatedFor string
		gen := imageFunc(func(_ context.Context, prompt string) (string, error) {
			generatedFor = prompt
			return "https://placehold.co/800x600", nil
		})
		svc, err := NewImageService(gen, m.images, discardLogger())
		require.NoError(t, err)

		img, err := svc.GenerateAndSaveImage(ctx, lessonID, "The water cycle")

		require.NoError(t, err)
		assert.Equal(t, wantPrompt, generatedFor)
		assert.Equal(t, wantPrompt, img.Prompt)
		assert.Equal(t, "https://placehold.co/800x600", img.ImageURL)

		stored, err := svc.ListImages(ctx, lessonID)
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		rec := &fakeRecorder{}
		gen := imageFunc(func(context.Context, string) (string, error) { return "https://placehold.co/x", nil })
		svc, err := NewImageService(gen, failingImages{ImageStore: newMemStores().images}, discardLogger(), WithMediaRecorder(rec))
		require.NoError(t, err)

		img, err := svc.GenerateAndSaveImage(ctx, lessonID, "The water cycle")

		assert.Nil(t, img)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, []string{"image:failed"}, rec.media)
	})

	t.Run("fail soft returns nothing", func(t *testing.T) {
		gen := imageFunc(func(context.Context, string) (string, error) { return "", errBoom })
		svc, err := NewImageService(gen, newMemStores().images, discardLogger(), WithMediaPolicy(FailSoft))
		require.NoError(t, err)

		img, err := svc.GenerateAndSaveImage(ctx, lessonID, "The water cycle")

		assert.NoError(t, err)
		assert.Nil(t, img)
	})
}

type audioFunc func(ctx context.Context, lessonID uuid.UUID, text string) (*domain.AudioFile, error)

func (f audioFunc) GenerateAndSaveAudio(ctx context.Context, lessonID uuid.UUID, text string) (*domain.AudioFile, error) {
	return f(ctx, lessonID, text)
}

type diagramFunc func(ctx context.Context, lessonID uuid.UUID, prompt string) (*domain.GeneratedImage, error)

func (f diagramFunc) GenerateAndSaveImage(ctx context.Context, lessonID uuid.UUID, prompt string) (*domain.GeneratedImage, error) {
	return f(ctx, lessonID, prompt)
}

func seedLesson(t *testing.T, m *memStores) *domain.Lesson {
	t.Helper()
	lesson, err := domain.NewLesson("Gravity", "Physics", "Gravity pulls masses together.", []string{"mass"})
	require.NoError(t, err)
	require.NoError(t, m.lessons.Create(context.Background(), lesson))
	return lesson
}

func TestGenerateMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("runs both side paths concurrently with lesson defaults", func(t *testing.T) {
		m := newMemStores()
		lesson := seedLesson(t, m)
		imageStarted := make(chan struct{})
		var narrated, drawn string

		audio := audioFunc(func(_ context.Context, id uuid.UUID, text string) (*domain.AudioFile, error) {
			select {
			case <-imageStarted:
			case <-time.After(2 * time.Second):
				return nil, errors.New("image side path did not run concurrently")
			}
			narrated = text
			return domain.NewAudioFile(id, "https://cdn.example.com/a.mp3", text)
		})
		images := diagramFunc(func(_ context.Context, id uuid.UUID, prompt string) (*domain.GeneratedImage, error) {
			close(imageStarted)
			drawn = prompt
			return domain.NewGeneratedImage(id, "https://placehold.co/x", prompt)
		})
		svc, err := NewMediaService(m.lessons, audio, images, discardLogger())
		require.NoError(t, err)

		result, err := svc.GenerateMedia(ctx, lesson.ID, MediaRequest{})

		require.NoError(t, err)
		require.NotNil(t, result.Audio)
		require.NotNil(t, result.Image)
		assert.NoError(t, result.ImageErr)
		assert.Equal(t, lesson.Content, narrated)
		assert.Equal(t, lesson.Title, drawn)
	})

	t.Run("explicit text and prompt, image error reported", func(t *testing.T) {
		m := newMemStores()
		lesson := seedLesson(t, m)
		var narrated, drawn string
		audio := audioFunc(func(_ context.Context, _ uuid.UUID, text string) (*domain.AudioFile, error) {
			narrated = text
			return nil, nil
		})
		images := diagramFunc(func(_ context.Context, _ uuid.UUID, prompt string) (*domain.GeneratedImage, error) {
			drawn = prompt
			return nil, errBoom
		})
		svc, err := NewMediaService(m.lessons, audio, images, discardLogger())
		require.NoError(t, err)

		result, err := svc.GenerateMedia(ctx, lesson.ID, MediaRequest{Text: "custom text", ImagePrompt: "orbits"})

		require.NoError(t, err)
		assert.Nil(t, result.Audio)
		assert.ErrorIs(t, result.ImageErr, errBoom)
		assert.Equal(t, "custom text", narrated)
		assert.Equal(t, "orbits", drawn)

		assert.ErrorIs(t, svc.GenerateMediaForLesson(ctx, lesson.ID), errBoom)
	})

	t.Run("unknown lesson", func(t *testing.T) {
		called := false
		audio := audioFunc(func(context.Context, uuid.UUID, string) (*domain.AudioFile, error) {
			called = true
			return nil, nil
		})
		images := diagramFunc(func(context.Context, uuid.UUID, string) (*domain.GeneratedImage, error) {
			called = true
			return nil, nil
		})
		svc, err := NewMediaService(newMemStores().lessons, audio, images, discardLogger())
		require.NoError(t, err)

		_, err = svc.GenerateMedia(ctx, uuid.New(), MediaRequest{})

		assert.ErrorIs(t, err, ErrLessonNotFound)
		assert.False(t, called)
	})
}
