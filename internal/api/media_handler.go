package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lumen-api/internal/api/shared"
	"github.com/phrazzld/lumen-api/internal/service"
)

// MediaHandler serves narration audio and diagram generation for lessons.
type MediaHandler struct {
	media  MediaService
	logger *slog.Logger
}

// NewMediaHandler creates a MediaHandler.
func NewMediaHandler(media MediaService, logger *slog.Logger) *MediaHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for MediaHandler")
	}
	return &MediaHandler{
		media:  media,
		logger: logger.With(slog.String("component", "media_handler")),
	}
}

// GenerateMedia handles POST /api/lessons/{id}/media. An empty body is allowed.
// A failed diagram is reported in the body rather than failing the request,
// since the audio side path may already have produced a file.
func (h *MediaHandler) GenerateMedia(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	lessonID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req GenerateMediaRequest
	if r.ContentLength != 0 && !decodeAndValidate(w, r, &req, log) {
		return
	}

	result, err := h.media.GenerateMedia(r.Context(), lessonID, service.MediaRequest{
		Text:        req.Text,
		ImagePrompt: req.ImagePrompt,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate media")
		return
	}

	resp := MediaResponse{Audio: result.Audio, Image: result.Image}
	if result.ImageErr != nil {
		log.Warn("image side path failed",
			slog.String("lesson_id", lessonID.String()),
			slog.String("error", result.ImageErr.Error()))
		resp.ImageError = GetSafeErrorMessage(result.ImageErr)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GenerateAudio handles POST /api/lessons/{id}/audio. Unavailable speech
// synthesis yields 200 with {"audio": null}.
func (h *MediaHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	lessonID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req GenerateAudioRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	audio, err := h.media.GenerateAndSaveAudio(r.Context(), lessonID, req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate audio")
		return
	}
	status := http.StatusCreated
	if audio == nil {
		status = http.StatusOK
	}
	shared.RespondWithJSON(w, r, status, AudioResponse{Audio: audio})
}

// GenerateImage handles POST /api/lessons/{id}/images.
func (h *MediaHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	lessonID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req GenerateImageRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	img, err := h.media.GenerateAndSaveImage(r.Context(), lessonID, req.Prompt)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate image")
		return
	}
	if img == nil {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Image generation is unavailable")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, img)
}

// DeleteAudioFile handles DELETE /api/audio/{id}.
func (h *MediaHandler) DeleteAudioFile(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}
	if err := h.media.DeleteAudioFile(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete audio file")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteImage handles DELETE /api/images/{id}.
func (h *MediaHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}
	if err := h.media.DeleteImage(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
