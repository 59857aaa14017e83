package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/api/shared"
	"github.com/phrazzld/lumen-api/internal/domain"
)

// WorksheetHandler serves worksheet generation and management.
type WorksheetHandler struct {
	generator  LessonGenerator
	worksheets WorksheetService
	logger     *slog.Logger
}

// NewWorksheetHandler creates a WorksheetHandler.
func NewWorksheetHandler(generator LessonGenerator, worksheets WorksheetService, logger *slog.Logger) *WorksheetHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for WorksheetHandler")
	}
	return &WorksheetHandler{
		generator:  generator,
		worksheets: worksheets,
		logger:     logger.With(slog.String("component", "worksheet_handler")),
	}
}

// GenerateWorksheet handles POST /api/worksheets/generate. The draft is
// returned unsaved; clients persist it with CreateWorksheet.
func (h *WorksheetHandler) GenerateWorksheet(w http.ResponseWriter, r *http.Request) {
	var req GenerateWorksheetRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}

	draft, err := h.generator.GenerateWorksheetContent(r.Context(), req.Topic, req.Subject)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate worksheet")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, draft)
}

// CreateWorksheet handles POST /api/worksheets.
func (h *WorksheetHandler) CreateWorksheet(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req CreateWorksheetRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}
	lessonID, err := uuid.Parse(req.LessonID)
	if err != nil {
		HandleAPIError(w, r, domain.ErrInvalidID, "")
		return
	}

	ws, err := h.worksheets.CreateWorksheet(r.Context(), lessonID, req.Title, toDomainQuestions(req.Questions))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create worksheet")
		return
	}

	log.Debug("worksheet created",
		slog.String("worksheet_id", ws.ID.String()),
		slog.String("lesson_id", lessonID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, ws)
}

// ListWorksheets handles GET /api/worksheets.
func (h *WorksheetHandler) ListWorksheets(w http.ResponseWriter, r *http.Request) {
	worksheets, err := h.worksheets.ListWorksheets(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list worksheets")
		return
	}
	if worksheets == nil {
		worksheets = []*domain.Worksheet{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, worksheets)
}

// GetWorksheet handles GET /api/worksheets/{id}.
func (h *WorksheetHandler) GetWorksheet(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}
	ws, err := h.worksheets.GetWorksheet(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get worksheet")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ws)
}

// UpdateWorksheet handles PATCH /api/worksheets/{id}.
func (h *WorksheetHandler) UpdateWorksheet(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateWorksheetRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	ws, err := h.worksheets.UpdateWorksheet(r.Context(), id, domain.WorksheetUpdate{
		Title:     req.Title,
		Questions: toDomainQuestions(req.Questions),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update worksheet")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ws)
}

// DeleteWorksheet handles DELETE /api/worksheets/{id}.
func (h *WorksheetHandler) DeleteWorksheet(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}
	if err := h.worksheets.DeleteWorksheet(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete worksheet")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
