package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/generation"
	"github.com/phrazzld/lumen-api/internal/mocks"
	"github.com/phrazzld/lumen-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMediaEndpoint(t *testing.T) {
	lessonID := uuid.New()

	t.Run("empty body uses lesson defaults", func(t *testing.T) {
		var got service.MediaRequest
		media := &mocks.MockMediaService{
			GenerateMediaFn: func(_ context.Context, id uuid.UUID, req service.MediaRequest) (*service.MediaResult, error) {
				got = req
				audio, _ := domain.NewAudioFile(id, "/media/audio/a.mp3", "text")
				return &service.MediaResult{Audio: audio, ImageErr: generation.ErrGenerationFailed}, nil
			},
		}
		router := newTestRouter(Services{Media: media})

		rr := do(t, router, http.MethodPost, "/lessons/"+lessonID.String()+"/media", "")

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, service.MediaRequest{}, got)
		resp := decodeBody[MediaResponse](t, rr)
		require.NotNil(t, resp.Audio)
		assert.Nil(t, resp.Image)
		assert.Equal(t, "Content generation failed", resp.ImageError)
	})

	t.Run("explicit overrides", func(t *testing.T) {
		var got service.MediaRequest
		media := &mocks.MockMediaService{
			GenerateMediaFn: func(_ context.Context, _ uuid.UUID, req service.MediaRequest) (*service.MediaResult, error) {
				got = req
				return &service.MediaResult{}, nil
			},
		}
		router := newTestRouter(Services{Media: media})

		rr := do(t, router, http.MethodPost, "/lessons/"+lessonID.String()+"/media", `{"text":"Narrate","image_prompt":"Orbits"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, service.MediaRequest{Text: "Narrate", ImagePrompt: "Orbits"}, got)
		assert.JSONEq(t, `{"audio":null,"image":null}`, rr.Body.String())
	})

	t.Run("unknown lesson", func(t *testing.T) {
		router := newTestRouter(Services{Media: &mocks.MockMediaService{Err: service.ErrLessonNotFound}})
		rr := do(t, router, http.MethodPost, "/lessons/"+lessonID.String()+"/media", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGenerateAudioEndpoint(t *testing.T) {
	lessonID := uuid.New()
	path := "/lessons/" + lessonID.String() + "/audio"

	t.Run("created", func(t *testing.T) {
		media := &mocks.MockMediaService{
			GenerateAndSaveAudioFn: func(_ context.Context, id uuid.UUID, text string) (*domain.AudioFile, error) {
				return domain.NewAudioFile(id, "/media/audio/a.mp3", text)
			},
		}
		rr := do(t, newTestRouter(Services{Media: media}), http.MethodPost, path, `{"text":"Hello"}`)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		resp := decodeBody[AudioResponse](t, rr)
		require.NotNil(t, resp.Audio)
		assert.Equal(t, "Hello", resp.Audio.TextContent)
	})

	t.Run("unavailable is a null audio", func(t *testing.T) {
		rr := do(t, newTestRouter(Services{}), http.MethodPost, path, `{"text":"Hello"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"audio":null}`, rr.Body.String())
	})

	t.Run("text required", func(t *testing.T) {
		rr := do(t, newTestRouter(Services{}), http.MethodPost, path, `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid text: required field", errorMessage(t, rr))
	})
}

func TestGenerateImageEndpoint(t *testing.T) {
	lessonID := uuid.New()
	path := "/lessons/" + lessonID.String() + "/images"

	media := &mocks.MockMediaService{
		GenerateAndSaveImageFn: func(_ context.Context, id uuid.UUID, prompt string) (*domain.GeneratedImage, error) {
			return domain.NewGeneratedImage(id, "https://placehold.co/800x600", prompt)
		},
	}
	rr := do(t, newTestRouter(Services{Media: media}), http.MethodPost, path, `{"prompt":"Cells"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "Cells", decodeBody[domain.GeneratedImage](t, rr).Prompt)

	failing := &mocks.MockMediaService{Err: &service.ServiceError{Service: "image", Operation: "generate_image", Message: "failed to save image", Err: assert.AnError}}
	rr = do(t, newTestRouter(Services{Media: failing}), http.MethodPost, path, `{"prompt":"Cells"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to generate image", errorMessage(t, rr))

	rr = do(t, newTestRouter(Services{}), http.MethodPost, path, `{"prompt":"Cells"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestDeleteMediaRecords(t *testing.T) {
	var deletedAudio, deletedImage uuid.UUID
	media := &mocks.MockMediaService{
		DeleteAudioFileFn: func(_ context.Context, id uuid.UUID) error { deletedAudio = id; return nil },
		DeleteImageFn: func(_ context.Context, id uuid.UUID) error {
			deletedImage = id
			return service.ErrImageNotFound
		},
	}
	router := newTestRouter(Services{Media: media})
	audioID, imageID := uuid.New(), uuid.New()

	rr := do(t, router, http.MethodDelete, "/audio/"+audioID.String(), "", asTeacher()...)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, audioID, deletedAudio)

	rr = do(t, router, http.MethodDelete, "/images/"+imageID.String(), "", asTeacher()...)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, imageID, deletedImage)

	rr = do(t, router, http.MethodDelete, "/audio/"+audioID.String(), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
