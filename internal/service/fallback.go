package service

import (
	"fmt"

	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/generation"
)

// lessonDraft is generated or canned lesson material that has not been persisted yet.
type lessonDraft struct {
	Explanation string
	Summary     []string
	Quiz        []domain.Question
	Flashcards  []domain.CardFace
}

// fallbackDraft is the deterministic lesson used when generation fails.
func fallbackDraft(question string) lessonDraft {
	return lessonDraft{
		Explanation: fmt.Sprintf(
			"This is a comprehensive explanation about %s. The concept involves understanding "+
				"the fundamental principles, key components, and practical applications.",
			question,
		),
		Summary: []string{
			fmt.Sprintf("Overview of %s and its fundamental importance", question),
			"Key concepts and definitions",
			"Main components and applications",
		},
		Quiz: domain.NumberQuestions([]domain.Question{{
			Type:     domain.QuestionTypeMCQ,
			Question: fmt.Sprintf("What is the main concept of %s?", question),
			Options:  []string{"Option A", "Option B", "Option C", "Option D"},
			Correct:  "Option B",
		}}),
		Flashcards: []domain.CardFace{{
			Front: fmt.Sprintf("What is %s?", question),
			Back:  "A fundamental concept with important applications",
		}},
	}
}

// quizQuestions converts generated quiz items into numbered multiple choice questions.
func quizQuestions(items []generation.QuizItem) []domain.Question {
	questions := make([]domain.Question, 0, len(items))
	for _, item := range items {
		questions = append(questions, domain.Question{
			Type:     domain.QuestionTypeMCQ,
			Question: item.Question,
			Options:  item.Options,
			Correct:  item.Correct,
		})
	}
	return domain.NumberQuestions(questions)
}

// worksheetQuestions puts multiple choice questions first, then short answers,
// numbered across both lists.
func worksheetQuestions(ws *generation.WorksheetQuestions) []domain.Question {
	questions := make([]domain.Question, 0, len(ws.MCQ)+len(ws.Short))
	for _, q := range ws.MCQ {
		questions = append(questions, domain.Question{
			Type:     domain.QuestionTypeMCQ,
			Question: q.Question,
			Options:  q.Options,
			Correct:  q.Answer,
		})
	}
	for _, q := range ws.Short {
		questions = append(questions, domain.Question{
			Type:     domain.QuestionTypeShort,
			Question: q.Question,
			Answer:   q.Answer,
		})
	}
	return domain.NumberQuestions(questions)
}

func cardFaces(cards []generation.FlashcardContent) []domain.CardFace {
	faces := make([]domain.CardFace, 0, len(cards))
	for _, c := range cards {
		faces = append(faces, domain.CardFace{Front: c.Front, Back: c.Back})
	}
	return faces
}
