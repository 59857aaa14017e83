package service

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/events"
	"github.com/phrazzld/lumen-api/internal/generation"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"github.com/phrazzld/lumen-api/internal/platform/metrics"
	"github.com/phrazzld/lumen-api/internal/store"
)

// Sizes and defaults of the generated material.
const (
	DefaultSubject        = "General"
	TeacherUploadSubject  = "Teacher Upload"
	LessonQuizSize        = 5
	LessonFlashcardCount  = 8
	TopicFlashcardCount   = 10
	TeacherQuizSize       = 5
	lessonWorksheetSuffix = " - Quiz"
)

// Operation names used in logs and metrics.
const (
	OpGenerateLesson           = "generate_lesson"
	OpGenerateWorksheet        = "generate_worksheet"
	OpGenerateTeacherMaterials = "generate_teacher_materials"
	OpGenerateFlashcards       = "generate_flashcards"
)

// LessonRequest asks for a lesson about a student's question.
// Language defaults to English and Subject to General.
type LessonRequest struct {
	Question string
	Language string
	Subject  string
}

// LessonResult is the persisted lesson plus the material generated with it.
// Degraded is set when the canned fallback was used instead of generated content.
type LessonResult struct {
	Lesson      *domain.Lesson    `json:"lesson"`
	Explanation string            `json:"explanation"`
	Quiz        []domain.Question `json:"quiz"`
	Flashcards  []domain.CardFace `json:"flashcards"`
	Degraded    bool              `json:"degraded"`
}

// OrchestratorOption configures optional LessonOrchestrator collaborators.
type OrchestratorOption func(*LessonOrchestrator)

// WithLessonPolicy sets the failure policy of GenerateLessonContent. The default is FailSoft.
func WithLessonPolicy(p FailurePolicy) OrchestratorOption {
	return func(o *LessonOrchestrator) { o.lessonPolicy = p }
}

// WithEventEmitter makes the orchestrator emit lesson.created after each persisted lesson.
func WithEventEmitter(e events.EventEmitter) OrchestratorOption {
	return func(o *LessonOrchestrator) { o.emitter = e }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) OrchestratorOption {
	return func(o *LessonOrchestrator) { o.recorder = r }
}

// LessonOrchestrator runs the lesson generation pipeline: content generation
// followed by lesson, worksheet and flashcard writes, strictly in sequence.
type LessonOrchestrator struct {
	content      ContentGenerator
	lessons      store.LessonStore
	worksheets   store.WorksheetStore
	flashcards   store.FlashcardStore
	emitter      events.EventEmitter
	recorder     Recorder
	lessonPolicy FailurePolicy
	logger       *slog.Logger
}

// NewLessonOrchestrator creates a LessonOrchestrator.
// It returns an error if the content generator or a required store is nil.
func NewLessonOrchestrator(
	content ContentGenerator,
	stores store.Stores,
	logger *slog.Logger,
	opts ...OrchestratorOption,
) (*LessonOrchestrator, error) {
	if content == nil {
		return nil, &ServiceError{Service: "lesson", Operation: "create_service", Message: "content generator cannot be nil"}
	}
	if stores.Lessons == nil || stores.Worksheets == nil || stores.Flashcards == nil {
		return nil, &ServiceError{Service: "lesson", Operation: "create_service", Message: "lesson, worksheet and flashcard stores are required"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	o := &LessonOrchestrator{
		content:      content,
		lessons:      stores.Lessons,
		worksheets:   stores.Worksheets,
		flashcards:   stores.Flashcards,
		recorder:     nopRecorder{},
		lessonPolicy: FailSoft,
		logger:       logger.With("component", "lesson_orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// GenerateLessonContent generates and persists a lesson for req.Question.
//
// Under FailSoft any generation or persistence failure is replaced by the
// deterministic fallback lesson, persisted the same way and marked Degraded.
// Only a failure to persist the fallback itself is returned.
func (o *LessonOrchestrator) GenerateLessonContent(ctx context.Context, req LessonRequest) (*LessonResult, error) {
	log := logger.FromContextOrDefault(ctx, o.logger)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	language := req.Language
	if language == "" {
		language = generation.DefaultLanguage
	}
	subject := req.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	draft, err := o.generateDraft(ctx, question, language)
	if err == nil {
		var lesson *domain.Lesson
		lesson, err = o.persistLesson(ctx, question, subject, draft)
		if err == nil {
			o.recorder.LessonGeneration(OpGenerateLesson, metrics.OutcomeGenerated)
			o.emitLessonCreated(ctx, lesson.ID, false)
			return newLessonResult(lesson, draft, false), nil
		}
	}

	if o.lessonPolicy == FailLoud {
		log.ErrorContext(ctx, "lesson generation failed",
			slog.String("error", err.Error()))
		o.recorder.LessonGeneration(OpGenerateLesson, metrics.OutcomeFailed)
		return nil, NewServiceError("lesson", OpGenerateLesson, "failed to generate lesson", err)
	}

	log.WarnContext(ctx, "lesson generation failed, using fallback content",
		slog.String("error", err.Error()))

	draft = fallbackDraft(question)
	lesson, err := o.persistLesson(ctx, question, subject, draft)
	if err != nil {
		log.ErrorContext(ctx, "failed to persist fallback lesson",
			slog.String("error", err.Error()))
		o.recorder.LessonGeneration(OpGenerateLesson, metrics.OutcomeFailed)
		return nil, NewServiceError("lesson", OpGenerateLesson, "failed to persist fallback lesson", err)
	}

	o.recorder.LessonGeneration(OpGenerateLesson, metrics.OutcomeFallback)
	o.emitLessonCreated(ctx, lesson.ID, true)
	return newLessonResult(lesson, draft, true), nil
}

// generateDraft requests the lesson body, quiz and flashcards in that order.
func (o *LessonOrchestrator) generateDraft(ctx context.Context, question, language string) (lessonDraft, error) {
	body, err := o.content.GenerateLesson(ctx, question, language)
	if err != nil {
		return lessonDraft{}, err
	}
	quiz, err := o.content.GenerateQuiz(ctx, question, LessonQuizSize)
	if err != nil {
		return lessonDraft{}, err
	}
	cards, err := o.content.GenerateFlashcards(ctx, question, LessonFlashcardCount)
	if err != nil {
		return lessonDraft{}, err
	}

	return lessonDraft{
		Explanation: body.Explanation,
		Summary:     body.SummaryPoints(),
		Quiz:        quizQuestions(quiz),
		Flashcards:  cardFaces(cards),
	}, nil
}

// persistLesson writes the lesson, its quiz worksheet and its flashcards.
// If a later write fails, the rows written before it are deleted again.
func (o *LessonOrchestrator) persistLesson(
	ctx context.Context,
	question, subject string,
	draft lessonDraft,
) (*domain.Lesson, error) {
	lesson, err := domain.NewLesson(question, subject, draft.Explanation, draft.Summary)
	if err != nil {
		return nil, err
	}
	if err := o.lessons.Create(ctx, lesson); err != nil {
		return nil, err
	}

	ws, err := domain.NewWorksheet(lesson.ID, question+lessonWorksheetSuffix, draft.Quiz)
	if err == nil {
		err = o.worksheets.Create(ctx, ws)
	}
	if err != nil {
		o.compensate(ctx, lesson.ID, uuid.Nil)
		return nil, err
	}

	cards, err := domain.NewFlashcards(lesson.ID, draft.Flashcards)
	if err == nil {
		err = o.flashcards.CreateBatch(ctx, cards)
	}
	if err != nil {
		o.compensate(ctx, lesson.ID, ws.ID)
		return nil, err
	}

	return lesson, nil
}

// compensate removes a partially persisted lesson. Failures are logged and ignored.
func (o *LessonOrchestrator) compensate(ctx context.Context, lessonID, worksheetID uuid.UUID) {
	log := logger.FromContextOrDefault(ctx, o.logger).With(slog.String("lesson_id", lessonID.String()))

	if worksheetID != uuid.Nil {
		if err := o.worksheets.Delete(ctx, worksheetID); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.WarnContext(ctx, "failed to delete worksheet of incomplete lesson",
				slog.String("worksheet_id", worksheetID.String()),
				slog.String("error", err.Error()))
		}
	}
	if err := o.lessons.Delete(ctx, lessonID); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.WarnContext(ctx, "failed to delete incomplete lesson",
			slog.String("error", err.Error()))
	}
}

func newLessonResult(lesson *domain.Lesson, draft lessonDraft, degraded bool) *LessonResult {
	return &LessonResult{
		Lesson:      lesson,
		Explanation: draft.Explanation,
		Quiz:        draft.Quiz,
		Flashcards:  draft.Flashcards,
		Degraded:    degraded,
	}
}

// GenerateWorksheetContent generates a practice worksheet about topic without persisting it.
// Errors are returned to the caller.
func (o *LessonOrchestrator) GenerateWorksheetContent(ctx context.Context, topic, subject string) (*domain.WorksheetDraft, error) {
	log := logger.FromContextOrDefault(ctx, o.logger)

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	generated, err := o.content.GenerateWorksheetQuestions(ctx, topic)
	if err != nil {
		log.ErrorContext(ctx, "worksheet generation failed",
			slog.String("subject", subject),
			slog.String("error", err.Error()))
		o.recorder.LessonGeneration(OpGenerateWorksheet, metrics.OutcomeFailed)
		return nil, NewServiceError("worksheet", OpGenerateWorksheet, "failed to generate worksheet", err)
	}

	o.recorder.LessonGeneration(OpGenerateWorksheet, metrics.OutcomeGenerated)
	return &domain.WorksheetDraft{
		Title:     topic + " - Practice Worksheet",
		Questions: worksheetQuestions(generated),
	}, nil
}

// GenerateFlashcardsForTopic generates study cards about topic without persisting them.
func (o *LessonOrchestrator) GenerateFlashcardsForTopic(ctx context.Context, topic string) ([]domain.CardFace, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	cards, err := o.content.GenerateFlashcards(ctx, topic, TopicFlashcardCount)
	if err != nil {
		logger.FromContextOrDefault(ctx, o.logger).ErrorContext(ctx, "flashcard generation failed",
			slog.String("error", err.Error()))
		o.recorder.LessonGeneration(OpGenerateFlashcards, metrics.OutcomeFailed)
		return nil, NewServiceError("flashcard", OpGenerateFlashcards, "failed to generate flashcards", err)
	}

	o.recorder.LessonGeneration(OpGenerateFlashcards, metrics.OutcomeGenerated)
	return cardFaces(cards), nil
}

// LessonTitleFromFileName strips the last extension: "ch1.pdf" becomes "ch1".
func LessonTitleFromFileName(fileName string) string {
	return strings.TrimSuffix(fileName, path.Ext(fileName))
}

// GenerateTeacherMaterials builds a lesson and an assessment quiz from an uploaded file name.
// Errors are returned to the caller; a lesson written before the failure is removed.
func (o *LessonOrchestrator) GenerateTeacherMaterials(ctx context.Context, fileName string) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, o.logger)

	title := strings.TrimSpace(LessonTitleFromFileName(strings.TrimSpace(fileName)))
	if title == "" {
		return nil, ErrEmptyFileName
	}

	lesson, err := o.generateTeacherMaterials(ctx, title)
	if err != nil {
		log.ErrorContext(ctx, "teacher materials generation failed",
			slog.String("title", title),
			slog.String("error", err.Error()))
		o.recorder.LessonGeneration(OpGenerateTeacherMaterials, metrics.OutcomeFailed)
		return nil, NewServiceError("lesson", OpGenerateTeacherMaterials, "failed to generate teacher materials", err)
	}

	o.recorder.LessonGeneration(OpGenerateTeacherMaterials, metrics.OutcomeGenerated)
	o.emitLessonCreated(ctx, lesson.ID, false)
	return lesson, nil
}

func (o *LessonOrchestrator) generateTeacherMaterials(ctx context.Context, title string) (*domain.Lesson, error) {
	body, err := o.content.GenerateLesson(ctx, title, generation.DefaultLanguage)
	if err != nil {
		return nil, err
	}

	lesson, err := domain.NewLesson(title, TeacherUploadSubject, body.Explanation, body.SummaryPoints())
	if err != nil {
		return nil, err
	}
	if err := o.lessons.Create(ctx, lesson); err != nil {
		return nil, err
	}

	quiz, err := o.content.GenerateQuiz(ctx, title, TeacherQuizSize)
	if err != nil {
		o.compensate(ctx, lesson.ID, uuid.Nil)
		return nil, err
	}

	ws, err := domain.NewWorksheet(lesson.ID, title+" - Assessment Quiz", quizQuestions(quiz))
	if err == nil {
		err = o.worksheets.Create(ctx, ws)
	}
	if err != nil {
		o.compensate(ctx, lesson.ID, uuid.Nil)
		return nil, err
	}

	return lesson, nil
}

// emitLessonCreated publishes lesson.created when an emitter is configured.
// The lesson is already persisted, so failures are only logged.
func (o *LessonOrchestrator) emitLessonCreated(ctx context.Context, lessonID uuid.UUID, degraded bool) {
	if o.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, o.logger)

	event, err := events.NewLessonCreatedEvent(lessonID, degraded)
	if err != nil {
		log.ErrorContext(ctx, "failed to build lesson created event",
			slog.String("lesson_id", lessonID.String()),
			slog.String("error", err.Error()))
		return
	}
	if err := o.emitter.EmitEvent(ctx, event); err != nil {
		log.ErrorContext(ctx, "failed to emit lesson created event",
			slog.String("lesson_id", lessonID.String()),
			slog.String("error", err.Error()))
	}
}
