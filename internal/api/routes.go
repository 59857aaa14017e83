package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/lumen-api/internal/api/middleware"
)

// Services are the application services behind the /api routes.
type Services struct {
	Generator  LessonGenerator
	Lessons    LessonService
	Worksheets WorksheetService
	Flashcards FlashcardService
	Media      MediaService
}

// Routes builds the /api subrouter. Reads and generation are public; edits,
// deletes and teacher materials require a teacher token.
func Routes(svc Services, auth *middleware.AuthMiddleware, logger *slog.Logger) http.Handler {
	lessons := NewLessonHandler(svc.Generator, svc.Lessons, logger)
	worksheets := NewWorksheetHandler(svc.Generator, svc.Worksheets, logger)
	flashcards := NewFlashcardHandler(svc.Generator, svc.Flashcards, logger)
	media := NewMediaHandler(svc.Media, logger)
	teacher := NewTeacherHandler(svc.Generator, logger)

	r := chi.NewRouter()

	r.Route("/lessons", func(r chi.Router) {
		r.Post("/generate", lessons.GenerateLesson)
		r.Get("/", lessons.ListLessons)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", lessons.GetLesson)
			r.Get("/materials", lessons.GetLessonMaterials)
			r.Get("/flashcards", flashcards.ListLessonFlashcards)
			r.Post("/media", media.GenerateMedia)
			r.Post("/audio", media.GenerateAudio)
			r.Post("/images", media.GenerateImage)

			r.With(auth.RequireTeacher).Patch("/", lessons.UpdateLesson)
			r.With(auth.RequireTeacher).Delete("/", lessons.DeleteLesson)
		})
	})

	r.Route("/worksheets", func(r chi.Router) {
		r.Post("/generate", worksheets.GenerateWorksheet)
		r.Get("/", worksheets.ListWorksheets)
		r.Get("/{id}", worksheets.GetWorksheet)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireTeacher)
			r.Post("/", worksheets.CreateWorksheet)
			r.Patch("/{id}", worksheets.UpdateWorksheet)
			r.Delete("/{id}", worksheets.DeleteWorksheet)
		})
	})

	r.Post("/flashcards/generate", flashcards.GenerateFlashcards)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireTeacher)
		r.Patch("/flashcards/{id}", flashcards.UpdateFlashcard)
		r.Delete("/flashcards/{id}", flashcards.DeleteFlashcard)
		r.Delete("/audio/{id}", media.DeleteAudioFile)
		r.Delete("/images/{id}", media.DeleteImage)
		r.Post("/teacher/materials", teacher.GenerateMaterials)
	})

	return r
}
