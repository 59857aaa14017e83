package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuestionType tags the variant of a Question.
type QuestionType string

// Supported question variants
const (
	QuestionTypeMCQ   QuestionType = "mcq"
	QuestionTypeShort QuestionType = "short"
)

// Worksheet validation errors
var (
	ErrWorksheetIDEmpty       = errors.New("worksheet ID cannot be empty")
	ErrWorksheetLessonIDEmpty = errors.New("worksheet lesson ID cannot be empty")
	ErrWorksheetTitleEmpty    = errors.New("worksheet title cannot be empty")
	ErrQuestionTextEmpty      = errors.New("question text cannot be empty")
	ErrInvalidQuestionType    = errors.New("invalid question type")
)

// Question is a worksheet item. Multiple choice questions carry Options and
// Correct; short answer questions carry Answer and an empty Options list.
// ID is the 1-based position of the question within its worksheet.
type Question struct {
	ID       int          `json:"id"`
	Type     QuestionType `json:"type"`
	Question string       `json:"question"`
	Options  []string     `json:"options"`
	Correct  string       `json:"correct,omitempty"`
	Answer   string       `json:"answer,omitempty"`
}

// Validate checks the question text and variant tag.
func (q Question) Validate() error {
	if q.Question == "" {
		return ErrQuestionTextEmpty
	}
	switch q.Type {
	case QuestionTypeMCQ, QuestionTypeShort:
		return nil
	default:
		return ErrInvalidQuestionType
	}
}

// NumberQuestions assigns sequential IDs starting at 1 in slice order.
// Short answer questions get a non-nil empty Options slice.
func NumberQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.ID = i + 1
		if q.Type == QuestionTypeShort || q.Options == nil {
			q.Options = []string{}
		}
		out[i] = q
	}
	return out
}

// Worksheet is a titled list of questions attached to a lesson.
type Worksheet struct {
	ID        uuid.UUID  `json:"id"`
	LessonID  uuid.UUID  `json:"lesson_id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// WorksheetDraft is a generated worksheet that has not been persisted.
type WorksheetDraft struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// NewWorksheet creates a new Worksheet for the given lesson.
// Returns an error if validation fails.
func NewWorksheet(lessonID uuid.UUID, title string, questions []Question) (*Worksheet, error) {
	if questions == nil {
		questions = []Question{}
	}
	ws := &Worksheet{
		ID:        uuid.New(),
		LessonID:  lessonID,
		Title:     title,
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}

	if err := ws.Validate(); err != nil {
		return nil, err
	}

	return ws, nil
}

// Validate checks if the Worksheet and each of its questions are valid.
func (w *Worksheet) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWorksheetIDEmpty
	}
	if w.LessonID == uuid.Nil {
		return ErrWorksheetLessonIDEmpty
	}
	if w.Title == "" {
		return ErrWorksheetTitleEmpty
	}
	for i, q := range w.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// WorksheetUpdate is a partial update. Nil fields are left unchanged.
type WorksheetUpdate struct {
	Title     *string
	Questions []Question
}

// Apply applies u to the worksheet, leaving it untouched if the result is invalid.
func (w *Worksheet) Apply(u WorksheetUpdate) error {
	updated := *w
	if u.Title != nil {
		updated.Title = *u.Title
	}
	if u.Questions != nil {
		updated.Questions = u.Questions
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*w = updated
	return nil
}
