package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lumen-api/internal/api/shared"
	"github.com/phrazzld/lumen-api/internal/domain"
)

// FlashcardHandler serves flashcard generation and management.
type FlashcardHandler struct {
	generator  LessonGenerator
	flashcards FlashcardService
	logger     *slog.Logger
}

// NewFlashcardHandler creates a FlashcardHandler.
func NewFlashcardHandler(generator LessonGenerator, flashcards FlashcardService, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for FlashcardHandler")
	}
	return &FlashcardHandler{
		generator:  generator,
		flashcards: flashcards,
		logger:     logger.With(slog.String("component", "flashcard_handler")),
	}
}

// GenerateFlashcards handles POST /api/flashcards/generate. Cards are not persisted.
func (h *FlashcardHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req GenerateFlashcardsRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}

	faces, err := h.generator.GenerateFlashcardsForTopic(r.Context(), req.Topic)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate flashcards")
		return
	}
	if faces == nil {
		faces = []domain.CardFace{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, FlashcardsResponse{Flashcards: faces})
}

// ListLessonFlashcards handles GET /api/lessons/{id}/flashcards.
func (h *FlashcardHandler) ListLessonFlashcards(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}
	cards, err := h.flashcards.ListFlashcardsByLesson(r.Context(), lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list flashcards")
		return
	}
	if cards == nil {
		cards = []*domain.Flashcard{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// UpdateFlashcard handles PATCH /api/flashcards/{id}.
func (h *FlashcardHandler) UpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateFlashcardRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	card, err := h.flashcards.UpdateFlashcard(r.Context(), id, domain.FlashcardUpdate{Front: req.Front, Back: req.Back})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update flashcard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteFlashcard handles DELETE /api/flashcards/{id}.
func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}
	if err := h.flashcards.DeleteFlashcard(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete flashcard")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
