package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lumen-api/internal/api/shared"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/service"
)

// LessonHandler serves lesson generation, reads and edits.
type LessonHandler struct {
	generator LessonGenerator
	lessons   LessonService
	logger    *slog.Logger
}

// NewLessonHandler creates a LessonHandler.
func NewLessonHandler(generator LessonGenerator, lessons LessonService, logger *slog.Logger) *LessonHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for LessonHandler")
	}
	return &LessonHandler{
		generator: generator,
		lessons:   lessons,
		logger:    logger.With(slog.String("component", "lesson_handler")),
	}
}

// GenerateLesson handles POST /api/lessons/generate. Generation failures
// normally degrade to a canned lesson, which is still a 201 with degraded=true.
func (h *LessonHandler) GenerateLesson(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req GenerateLessonRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	result, err := h.generator.GenerateLessonContent(r.Context(), service.LessonRequest{
		Question: req.Question,
		Language: req.Language,
		Subject:  req.Subject,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate lesson")
		return
	}

	log.Debug("lesson generated",
		slog.String("lesson_id", result.Lesson.ID.String()),
		slog.Bool("degraded", result.Degraded))
	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// ListLessons handles GET /api/lessons.
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.lessons.ListLessons(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list lessons")
		return
	}
	if lessons == nil {
		lessons = []*domain.Lesson{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lessons)
}

// GetLesson handles GET /api/lessons/{id}.
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}
	lesson, err := h.lessons.GetLesson(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get lesson")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// GetLessonMaterials handles GET /api/lessons/{id}/materials.
func (h *LessonHandler) GetLessonMaterials(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}
	materials, err := h.lessons.GetLessonWithMaterials(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get lesson materials")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, materials)
}

// UpdateLesson handles PATCH /api/lessons/{id}.
func (h *LessonHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateLessonRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	lesson, err := h.lessons.UpdateLesson(r.Context(), id, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update lesson")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// DeleteLesson handles DELETE /api/lessons/{id}. Materials are not cascaded.
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}
	if err := h.lessons.DeleteLesson(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete lesson")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
