package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lumen-api/internal/api/shared"
)

// TeacherHandler serves teacher-only material generation.
type TeacherHandler struct {
	generator LessonGenerator
	logger    *slog.Logger
}

// NewTeacherHandler creates a TeacherHandler.
func NewTeacherHandler(generator LessonGenerator, logger *slog.Logger) *TeacherHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for TeacherHandler")
	}
	return &TeacherHandler{
		generator: generator,
		logger:    logger.With(slog.String("component", "teacher_handler")),
	}
}

// GenerateMaterials handles POST /api/teacher/materials. The lesson title is
// the uploaded file's name without its extension.
func (h *TeacherHandler) GenerateMaterials(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req TeacherMaterialsRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	lesson, err := h.generator.GenerateTeacherMaterials(r.Context(), req.FileName)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate teacher materials")
		return
	}

	if claims, ok := shared.ClaimsFromContext(r.Context()); ok {
		log.Info("teacher materials generated",
			slog.String("lesson_id", lesson.ID.String()),
			slog.String("teacher", claims.Subject))
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, lesson)
}
