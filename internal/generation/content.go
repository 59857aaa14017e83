package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/lumen-api/internal/platform/logger"
)

// LessonContent is the structured lesson body returned by the model.
type LessonContent struct {
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	Summary     []string `json:"summary"`
	KeyPoints   []string `json:"keyPoints"`
}

// SummaryPoints returns Summary when it has entries, otherwise KeyPoints.
func (l LessonContent) SummaryPoints() []string {
	if len(l.Summary) > 0 {
		return l.Summary
	}
	if l.KeyPoints == nil {
		return []string{}
	}
	return l.KeyPoints
}

// QuizItem is one generated multiple choice question.
type QuizItem struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Explanation string   `json:"explanation,omitempty"`
}

// FlashcardContent is one generated flashcard.
type FlashcardContent struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// WorksheetMCQ is a worksheet multiple choice question.
type WorksheetMCQ struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// WorksheetShort is a worksheet short answer question.
type WorksheetShort struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// WorksheetQuestions groups the generated worksheet questions by kind.
// The prompt also asks for fill in the blank items; the worksheet draft has
// no section for them, so they are not decoded.
type WorksheetQuestions struct {
	MCQ   []WorksheetMCQ   `json:"mcq"`
	Short []WorksheetShort `json:"short"`
}

// Defaults used by Service operations.
const (
	DefaultLanguage = "English"
	DefaultQuizSize = 5
)

// Service turns a ContentGenerator into typed educational content.
// It makes exactly one generator call per operation.
type Service struct {
	gen    ContentGenerator
	logger *slog.Logger
}

// NewService creates a Service backed by gen.
func NewService(gen ContentGenerator, logger *slog.Logger) *Service {
	if gen == nil {
		panic("content generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gen:    gen,
		logger: logger.With(slog.String("component", "content_service")),
	}
}

// GenerateLesson requests a lesson body about topic in the given language.
func (s *Service) GenerateLesson(ctx context.Context, topic, language string) (*LessonContent, error) {
	if language == "" {
		language = DefaultLanguage
	}
	prompt, err := renderPrompt("lesson", promptData{Topic: topic, Language: language})
	if err != nil {
		return nil, err
	}

	parsed, err := GenerateJSON(ctx, s.gen, Request{
		Prompt:            prompt,
		SystemInstruction: lessonSystem,
		Temperature:       lessonTemperature,
	})
	if err != nil {
		return nil, s.fail(ctx, "lesson", err)
	}

	var lesson LessonContent
	if err := decode(schemaLesson, parsed, &lesson); err != nil {
		return nil, s.fail(ctx, "lesson", err)
	}
	return &lesson, nil
}

// GenerateQuiz requests count multiple choice questions about topic.
func (s *Service) GenerateQuiz(ctx context.Context, topic string, count int) ([]QuizItem, error) {
	if count <= 0 {
		count = DefaultQuizSize
	}
	prompt, err := renderPrompt("quiz", promptData{Topic: topic, Count: count})
	if err != nil {
		return nil, err
	}

	parsed, err := GenerateJSON(ctx, s.gen, Request{
		Prompt:            prompt,
		SystemInstruction: quizSystem,
		Temperature:       quizTemperature,
	})
	if err != nil {
		return nil, s.fail(ctx, "quiz", err)
	}

	var quiz []QuizItem
	if err := decode(schemaQuiz, unwrapList(parsed, "questions"), &quiz); err != nil {
		return nil, s.fail(ctx, "quiz", err)
	}
	return quiz, nil
}

// GenerateFlashcards requests count flashcards about topic.
func (s *Service) GenerateFlashcards(ctx context.Context, topic string, count int) ([]FlashcardContent, error) {
	if count <= 0 {
		count = 10
	}
	prompt, err := renderPrompt("flashcards", promptData{Topic: topic, Count: count})
	if err != nil {
		return nil, err
	}

	parsed, err := GenerateJSON(ctx, s.gen, Request{
		Prompt:            prompt,
		SystemInstruction: flashcardSystem,
		Temperature:       flashcardTemperature,
	})
	if err != nil {
		return nil, s.fail(ctx, "flashcards", err)
	}

	var cards []FlashcardContent
	if err := decode(schemaFlashcards, unwrapList(parsed, "flashcards"), &cards); err != nil {
		return nil, s.fail(ctx, "flashcards", err)
	}
	return cards, nil
}

// GenerateWorksheetQuestions requests a mixed practice worksheet about topic.
func (s *Service) GenerateWorksheetQuestions(ctx context.Context, topic string) (*WorksheetQuestions, error) {
	prompt, err := renderPrompt("worksheet", promptData{Topic: topic})
	if err != nil {
		return nil, err
	}

	parsed, err := GenerateJSON(ctx, s.gen, Request{
		Prompt:            prompt,
		SystemInstruction: worksheetSystem,
		Temperature:       worksheetTemperature,
	})
	if err != nil {
		return nil, s.fail(ctx, "worksheet", err)
	}

	var questions WorksheetQuestions
	if err := decode(schemaWorksheet, parsed, &questions); err != nil {
		return nil, s.fail(ctx, "worksheet", err)
	}
	return &questions, nil
}

// GenerateImagePrompt asks for a diagram description about topic.
// The reply is free text and is returned trimmed.
func (s *Service) GenerateImagePrompt(ctx context.Context, topic string) (string, error) {
	prompt, err := renderPrompt("image", promptData{Topic: topic})
	if err != nil {
		return "", err
	}

	resp, err := s.gen.Generate(ctx, Request{
		Prompt:            prompt,
		SystemInstruction: imagePromptSystem,
		Temperature:       imageTemperature,
	})
	if err != nil {
		return "", s.fail(ctx, "image_prompt", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", s.fail(ctx, "image_prompt", fmt.Errorf("%w: empty image prompt", ErrInvalidResponse))
	}
	return text, nil
}

func (s *Service) fail(ctx context.Context, kind string, err error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.WarnContext(ctx, "content generation failed",
		slog.String("kind", kind),
		slog.String("error", err.Error()))
	return err
}
