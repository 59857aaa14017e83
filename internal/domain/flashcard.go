package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Flashcard validation errors
var (
	ErrFlashcardIDEmpty       = errors.New("flashcard ID cannot be empty")
	ErrFlashcardLessonIDEmpty = errors.New("flashcard lesson ID cannot be empty")
	ErrFlashcardFrontEmpty    = errors.New("flashcard front cannot be empty")
	ErrFlashcardBackEmpty     = errors.New("flashcard back cannot be empty")
)

// CardFace is the front/back text of a flashcard before it belongs to a lesson.
type CardFace struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Flashcard is a front/back study card. Flashcards for a lesson are created in one batch.
type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	LessonID  uuid.UUID `json:"lesson_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFlashcard creates a new Flashcard for the given lesson.
func NewFlashcard(lessonID uuid.UUID, face CardFace) (*Flashcard, error) {
	card := &Flashcard{
		ID:        uuid.New(),
		LessonID:  lessonID,
		Front:     face.Front,
		Back:      face.Back,
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// NewFlashcards builds one card per face, all sharing the same creation time.
func NewFlashcards(lessonID uuid.UUID, faces []CardFace) ([]*Flashcard, error) {
	now := time.Now().UTC()
	cards := make([]*Flashcard, 0, len(faces))
	for _, face := range faces {
		card := &Flashcard{
			ID:        uuid.New(),
			LessonID:  lessonID,
			Front:     face.Front,
			Back:      face.Back,
			CreatedAt: now,
		}
		if err := card.Validate(); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Validate checks if the Flashcard has valid data.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}
	if f.LessonID == uuid.Nil {
		return ErrFlashcardLessonIDEmpty
	}
	if f.Front == "" {
		return ErrFlashcardFrontEmpty
	}
	if f.Back == "" {
		return ErrFlashcardBackEmpty
	}
	return nil
}

// Face returns the card's front and back.
func (f *Flashcard) Face() CardFace {
	return CardFace{Front: f.Front, Back: f.Back}
}

// FlashcardUpdate is a partial update. Nil fields are left unchanged.
type FlashcardUpdate struct {
	Front *string
	Back  *string
}

// Apply applies u to the flashcard, leaving it untouched if the result is invalid.
func (f *Flashcard) Apply(u FlashcardUpdate) error {
	updated := *f
	if u.Front != nil {
		updated.Front = *u.Front
	}
	if u.Back != nil {
		updated.Back = *u.Back
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*f = updated
	return nil
}
