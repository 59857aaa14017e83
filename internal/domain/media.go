package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Media validation errors
var (
	ErrMediaIDEmpty       = errors.New("media ID cannot be empty")
	ErrMediaLessonIDEmpty = errors.New("media lesson ID cannot be empty")
	ErrMediaURLEmpty      = errors.New("media URL cannot be empty")
)

// AudioFile is a narration of lesson text.
type AudioFile struct {
	ID          uuid.UUID `json:"id"`
	LessonID    uuid.UUID `json:"lesson_id"`
	AudioURL    string    `json:"audio_url"`
	TextContent string    `json:"text_content"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAudioFile creates a new AudioFile. textContent is cut to MaxAudioTextChars.
func NewAudioFile(lessonID uuid.UUID, audioURL, textContent string) (*AudioFile, error) {
	audio := &AudioFile{
		ID:          uuid.New(),
		LessonID:    lessonID,
		AudioURL:    audioURL,
		TextContent: TruncateRunes(textContent, MaxAudioTextChars),
		CreatedAt:   time.Now().UTC(),
	}

	if err := audio.Validate(); err != nil {
		return nil, err
	}

	return audio, nil
}

// Validate checks if the AudioFile has valid data.
func (a *AudioFile) Validate() error {
	if a.ID == uuid.Nil {
		return ErrMediaIDEmpty
	}
	if a.LessonID == uuid.Nil {
		return ErrMediaLessonIDEmpty
	}
	if a.AudioURL == "" {
		return ErrMediaURLEmpty
	}
	return nil
}

// GeneratedImage is a diagram produced for a lesson.
type GeneratedImage struct {
	ID        uuid.UUID `json:"id"`
	LessonID  uuid.UUID `json:"lesson_id"`
	ImageURL  string    `json:"image_url"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGeneratedImage creates a new GeneratedImage.
func NewGeneratedImage(lessonID uuid.UUID, imageURL, prompt string) (*GeneratedImage, error) {
	img := &GeneratedImage{
		ID:        uuid.New(),
		LessonID:  lessonID,
		ImageURL:  imageURL,
		Prompt:    prompt,
		CreatedAt: time.Now().UTC(),
	}

	if err := img.Validate(); err != nil {
		return nil, err
	}

	return img, nil
}

// Validate checks if the GeneratedImage has valid data.
func (g *GeneratedImage) Validate() error {
	if g.ID == uuid.Nil {
		return ErrMediaIDEmpty
	}
	if g.LessonID == uuid.Nil {
		return ErrMediaLessonIDEmpty
	}
	if g.ImageURL == "" {
		return ErrMediaURLEmpty
	}
	return nil
}
