package api

import "github.com/phrazzld/lumen-api/internal/domain"

// GenerateLessonRequest is the body of POST /api/lessons/generate.
type GenerateLessonRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
	Language string `json:"language" validate:"omitempty,max=50"`
	Subject  string `json:"subject"  validate:"omitempty,max=100"`
}

// UpdateLessonRequest is the body of PATCH /api/lessons/{id}. Omitted fields are unchanged.
type UpdateLessonRequest struct {
	Title   *string  `json:"title"   validate:"omitempty,min=1,max=200"`
	Subject *string  `json:"subject" validate:"omitempty,max=100"`
	Content *string  `json:"content"`
	Summary []string `json:"summary" validate:"omitempty,dive,min=1"`
}

func (u UpdateLessonRequest) toDomain() domain.LessonUpdate {
	return domain.LessonUpdate{Title: u.Title, Subject: u.Subject, Content: u.Content, Summary: u.Summary}
}

// GenerateMediaRequest is the body of POST /api/lessons/{id}/media.
// Empty fields default to the lesson's content and title.
type GenerateMediaRequest struct {
	Text        string `json:"text"         validate:"omitempty,max=20000"`
	ImagePrompt string `json:"image_prompt" validate:"omitempty,max=1000"`
}

// GenerateAudioRequest is the body of POST /api/lessons/{id}/audio.
type GenerateAudioRequest struct {
	Text string `json:"text" validate:"required,max=20000"`
}

// GenerateImageRequest is the body of POST /api/lessons/{id}/images.
type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required,max=1000"`
}

// MediaResponse is the result of the media fan-out. A null audio means
// speech synthesis was unavailable; ImageError carries a safe message when the
// diagram failed.
type MediaResponse struct {
	Audio      *domain.AudioFile      `json:"audio"`
	Image      *domain.GeneratedImage `json:"image"`
	ImageError string                 `json:"image_error,omitempty"`
}

// AudioResponse wraps the audio side path result; Audio is null when unavailable.
type AudioResponse struct {
	Audio *domain.AudioFile `json:"audio"`
}

// GenerateWorksheetRequest is the body of POST /api/worksheets/generate.
type GenerateWorksheetRequest struct {
	Topic   string `json:"topic"   validate:"required,max=500"`
	Subject string `json:"subject" validate:"omitempty,max=100"`
}

// QuestionRequest is one worksheet question in a create or update body.
type QuestionRequest struct {
	Type     string   `json:"type"     validate:"required,oneof=mcq short"`
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options"  validate:"omitempty,min=2,dive,required"`
	Correct  string   `json:"correct"`
	Answer   string   `json:"answer"`
}

func toDomainQuestions(in []QuestionRequest) []domain.Question {
	if in == nil {
		return nil
	}
	out := make([]domain.Question, len(in))
	for i, q := range in {
		out[i] = domain.Question{
			Type:     domain.QuestionType(q.Type),
			Question: q.Question,
			Options:  q.Options,
			Correct:  q.Correct,
			Answer:   q.Answer,
		}
	}
	return out
}

// CreateWorksheetRequest is the body of POST /api/worksheets.
type CreateWorksheetRequest struct {
	LessonID  string            `json:"lesson_id" validate:"required,uuid"`
	Title     string            `json:"title"     validate:"required,max=200"`
	Questions []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// UpdateWorksheetRequest is the body of PATCH /api/worksheets/{id}.
type UpdateWorksheetRequest struct {
	Title     *string           `json:"title"     validate:"omitempty,min=1,max=200"`
	Questions []QuestionRequest `json:"questions" validate:"omitempty,min=1,dive"`
}

// GenerateFlashcardsRequest is the body of POST /api/flashcards/generate.
type GenerateFlashcardsRequest struct {
	Topic string `json:"topic" validate:"required,max=500"`
}

// FlashcardsResponse lists generated card faces.
type FlashcardsResponse struct {
	Flashcards []domain.CardFace `json:"flashcards"`
}

// UpdateFlashcardRequest is the body of PATCH /api/flashcards/{id}.
type UpdateFlashcardRequest struct {
	Front *string `json:"front" validate:"omitempty,min=1"`
	Back  *string `json:"back"  validate:"omitempty,min=1"`
}

// TeacherMaterialsRequest is the body of POST /api/teacher/materials.
type TeacherMaterialsRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
}
