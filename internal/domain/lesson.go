package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lesson validation errors
var (
	ErrLessonIDEmpty    = errors.New("lesson ID cannot be empty")
	ErrLessonTitleEmpty = errors.New("lesson title cannot be empty")
)

// Lesson is a generated explanation for a student's question or a teacher's
// uploaded chapter. Worksheets, flashcards, audio and images refer to it by ID.
type Lesson struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Summary   []string  `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLesson creates a new Lesson with a fresh ID and creation/update timestamps.
// Returns an error if validation fails.
func NewLesson(title, subject, content string, summary []string) (*Lesson, error) {
	now := time.Now().UTC()
	if summary == nil {
		summary = []string{}
	}
	lesson := &Lesson{
		ID:        uuid.New(),
		Title:     title,
		Subject:   subject,
		Content:   content,
		Summary:   summary,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	return lesson, nil
}

// Validate checks if the Lesson has valid data.
func (l *Lesson) Validate() error {
	if l.ID == uuid.Nil {
		return ErrLessonIDEmpty
	}
	if l.Title == "" {
		return ErrLessonTitleEmpty
	}
	return nil
}

// LessonUpdate is a partial update. Nil fields are left unchanged.
type LessonUpdate struct {
	Title   *string
	Subject *string
	Content *string
	Summary []string
}

// Apply applies u to the lesson and bumps UpdatedAt.
// The lesson is left untouched if the result would be invalid.
func (l *Lesson) Apply(u LessonUpdate) error {
	updated := *l
	if u.Title != nil {
		updated.Title = *u.Title
	}
	if u.Subject != nil {
		updated.Subject = *u.Subject
	}
	if u.Content != nil {
		updated.Content = *u.Content
	}
	if u.Summary != nil {
		updated.Summary = u.Summary
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*l = updated
	return nil
}

// LessonWithMaterials is a lesson together with everything generated for it.
type LessonWithMaterials struct {
	Lesson
	Worksheets      []Worksheet      `json:"worksheets"`
	Flashcards      []Flashcard      `json:"flashcards"`
	AudioFiles      []AudioFile      `json:"audio_files"`
	GeneratedImages []GeneratedImage `json:"generated_images"`
}
